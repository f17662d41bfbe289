package usecase

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"

	"github.com/beevik/etree"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/drugbank/pkg/domain/model"
)

// Open downloads (or reuses) the release archive and returns a reader of the
// database XML member. Closing the returned reader closes both the member
// stream and the archive handle.
func (uc *UseCase) Open(ctx context.Context, req *model.DownloadRequest) (io.ReadCloser, error) {
	artifact, err := uc.Download(ctx, req)
	if err != nil {
		return nil, err
	}

	archive, err := zip.OpenReader(artifact.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open archive", goerr.V("path", artifact.Path))
	}

	member, err := archive.Open(MemberName)
	if err != nil {
		_ = archive.Close()
		return nil, goerr.Wrap(err, "failed to open archive member",
			goerr.V("member", MemberName),
			goerr.V("path", artifact.Path),
		)
	}

	return &memberReader{member: member, archive: archive}, nil
}

// Parse materializes the whole database XML as a document tree. No schema
// validation is performed.
func (uc *UseCase) Parse(ctx context.Context, req *model.DownloadRequest) (*etree.Document, error) {
	r, err := uc.Open(ctx, req)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	logger := ctxlog.From(ctx)
	logger.Info("parsing DrugBank XML")

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, goerr.Wrap(err, "failed to parse DrugBank XML")
	}

	logger.Info("parsed DrugBank XML")
	return doc, nil
}

// Root parses the database XML and returns its root element
func (uc *UseCase) Root(ctx context.Context, req *model.DownloadRequest) (*etree.Element, error) {
	doc, err := uc.Parse(ctx, req)
	if err != nil {
		return nil, err
	}

	root := doc.Root()
	if root == nil {
		return nil, goerr.New("database XML has no root element")
	}

	return root, nil
}

// memberReader couples the member stream with its parent archive so a single
// Close releases both, whichever way the caller exits.
type memberReader struct {
	member  fs.File
	archive *zip.ReadCloser
}

func (r *memberReader) Read(p []byte) (int, error) {
	return r.member.Read(p)
}

func (r *memberReader) Close() error {
	memberErr := r.member.Close()
	archiveErr := r.archive.Close()
	if memberErr != nil {
		return memberErr
	}
	return archiveErr
}
