package bioversions

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultEndpoint is the published bioversions dump, regenerated daily
const DefaultEndpoint = "https://biopragmatics.github.io/bioversions/versions.json"

// Client resolves the latest known release of a dataset from the bioversions
// dump. It implements interfaces.VersionResolver.
type Client struct {
	endpoint string
	client   *http.Client
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithEndpoint replaces the version dump URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// New creates a bioversions client
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		client:   http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// dump mirrors the parts of versions.json this client reads. Releases are
// ordered oldest to newest.
type dump struct {
	Database []struct {
		Prefix   string `json:"prefix"`
		Releases []struct {
			Version string `json:"version"`
		} `json:"releases"`
	} `json:"database"`
}

// LatestVersion returns the most recent version string of the dataset
func (c *Client) LatestVersion(ctx context.Context, dataset string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create version lookup request", goerr.V("endpoint", c.endpoint))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch version dump", goerr.V("endpoint", c.endpoint))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status code from version dump",
			goerr.V("status", resp.StatusCode),
			goerr.V("endpoint", c.endpoint),
		)
	}

	var d dump
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return "", goerr.Wrap(err, "failed to decode version dump", goerr.V("endpoint", c.endpoint))
	}

	for _, db := range d.Database {
		if db.Prefix != dataset {
			continue
		}
		if len(db.Releases) == 0 {
			return "", goerr.New("dataset has no releases", goerr.V("dataset", dataset))
		}
		return db.Releases[len(db.Releases)-1].Version, nil
	}

	return "", goerr.New("dataset not found in version dump",
		goerr.V("dataset", dataset),
		goerr.V("endpoint", c.endpoint),
	)
}
