package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/drugbank/pkg/domain/interfaces"
	"github.com/m-mizutani/drugbank/pkg/domain/model"
	"github.com/m-mizutani/drugbank/pkg/domain/types"
	"github.com/m-mizutani/drugbank/pkg/infra/config"
	"github.com/m-mizutani/drugbank/pkg/infra/store"
)

const (
	// DefaultBaseURL is the DrugBank release site
	DefaultBaseURL = "https://go.drugbank.com"

	// ArchiveName is the file name one release is cached under
	ArchiveName = "full database.xml.zip"

	// MemberName is the single archive member holding the database XML
	MemberName = "full database.xml"

	// DefaultMinArchiveSize separates a real archive (well over 200 MiB) from
	// the small HTML page the server returns for unapproved accounts
	DefaultMinArchiveSize = 5 * 1024 * 1024

	datasetName = "drugbank"
)

// UseCase runs the DrugBank acquisition pipeline: resolve version and
// credentials, fetch the release archive through the cache, validate it, and
// open or parse the contained XML.
type UseCase struct {
	store    *store.Store
	resolver interfaces.VersionResolver
	baseURL  string
	minSize  int64
}

// Option is a functional option for UseCase configuration
type Option func(*UseCase)

// WithStore sets the download cache
func WithStore(s *store.Store) Option {
	return func(uc *UseCase) {
		uc.store = s
	}
}

// WithVersionResolver sets the resolver used when no explicit version is
// requested. Without one, requests without a version fail.
func WithVersionResolver(r interfaces.VersionResolver) Option {
	return func(uc *UseCase) {
		uc.resolver = r
	}
}

// WithBaseURL replaces the DrugBank release site URL
func WithBaseURL(baseURL string) Option {
	return func(uc *UseCase) {
		uc.baseURL = baseURL
	}
}

// WithMinArchiveSize replaces the validity threshold in bytes
func WithMinArchiveSize(size int64) Option {
	return func(uc *UseCase) {
		uc.minSize = size
	}
}

// New creates a UseCase. A default cache store is created unless WithStore is
// given.
func New(opts ...Option) (*UseCase, error) {
	uc := &UseCase{
		baseURL: DefaultBaseURL,
		minSize: DefaultMinArchiveSize,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.store == nil {
		s, err := store.New()
		if err != nil {
			return nil, err
		}
		uc.store = s
	}

	return uc, nil
}

// Download resolves the version and credentials, fetches the release archive
// into the cache unless already present, and validates its size. An archive
// below the threshold is deleted before the error returns, so a retry
// re-attempts the full download instead of reusing a known-bad file.
func (uc *UseCase) Download(ctx context.Context, req *model.DownloadRequest) (*model.Artifact, error) {
	logger := ctxlog.From(ctx)

	version, err := uc.resolveVersion(ctx, req.Version)
	if err != nil {
		return nil, err
	}

	username, err := config.Lookup(datasetName, "username", req.Username, true)
	if err != nil {
		return nil, err
	}
	password, err := config.Lookup(datasetName, "password", req.Password, true)
	if err != nil {
		return nil, err
	}

	segments := append([]string{}, req.Prefix...)
	if len(segments) == 0 {
		segments = []string{datasetName}
	}
	segments = append(segments, version)

	// The release site uses dashes in the version path segment; the cache
	// keeps the dotted form.
	url := fmt.Sprintf("%s/releases/%s/downloads/all-full-database",
		uc.baseURL, strings.ReplaceAll(version, ".", "-"))

	logger.Info("ensuring DrugBank archive",
		"version", version,
		"url", url,
		"force", req.Force,
	)

	path, err := uc.store.Ensure(ctx, url, ArchiveName, segments,
		store.WithBasicAuth(username, password),
		store.WithForce(req.Force),
	)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat downloaded archive", goerr.V("path", path))
	}

	if info.Size() < uc.minSize {
		if rmErr := os.Remove(path); rmErr != nil {
			return nil, goerr.Wrap(rmErr, "failed to remove invalid archive", goerr.V("path", path))
		}
		return nil, goerr.New(unapprovedMessage(version),
			goerr.T(types.ErrTagInvalidCredentials),
			goerr.V("path", path),
			goerr.V("size", info.Size()),
			goerr.V("min_size", uc.minSize),
		)
	}

	logger.Info("DrugBank archive ready", "path", path, "size", info.Size())

	return &model.Artifact{
		Path:    path,
		Version: version,
		Size:    info.Size(),
	}, nil
}

func (uc *UseCase) resolveVersion(ctx context.Context, version string) (string, error) {
	if version != "" {
		return version, nil
	}

	if uc.resolver == nil {
		return "", goerr.New("no version given and no version resolver configured: pass an explicit version or configure a resolver such as bioversions.New()",
			goerr.T(types.ErrTagNoVersionSource),
		)
	}

	v, err := uc.resolver.LatestVersion(ctx, datasetName)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve latest DrugBank version")
	}

	return v, nil
}

func unapprovedMessage(version string) string {
	return fmt.Sprintf(`DrugBank credentials were either invalid, or the account has not been approved for downloads.

Even with a valid username/password combination, DrugBank has to manually
approve an account before it may download the data for academic use.

Check https://go.drugbank.com/releases/%s#full: if the download button says
"Ineligible for download", contact DrugBank via https://go.drugbank.com/contact.`, version)
}
