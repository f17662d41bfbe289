package bioversions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/drugbank/pkg/infra/bioversions"
)

const dumpJSON = `{
	"database": [
		{
			"prefix": "chembl",
			"releases": [{"version": "33"}, {"version": "34"}]
		},
		{
			"prefix": "drugbank",
			"releases": [{"version": "5.1.12"}, {"version": "5.1.13"}]
		}
	]
}`

func newDumpServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestVersion(t *testing.T) {
	srv := newDumpServer(t, http.StatusOK, dumpJSON)
	c := bioversions.New(bioversions.WithEndpoint(srv.URL))

	v, err := c.LatestVersion(context.Background(), "drugbank")
	gt.NoError(t, err)
	gt.Value(t, v).Equal("5.1.13")

	v, err = c.LatestVersion(context.Background(), "chembl")
	gt.NoError(t, err)
	gt.Value(t, v).Equal("34")
}

func TestLatestVersion_UnknownDataset(t *testing.T) {
	srv := newDumpServer(t, http.StatusOK, dumpJSON)
	c := bioversions.New(bioversions.WithEndpoint(srv.URL))

	_, err := c.LatestVersion(context.Background(), "nope")
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("dataset not found")
}

func TestLatestVersion_NoReleases(t *testing.T) {
	srv := newDumpServer(t, http.StatusOK, `{"database":[{"prefix":"drugbank","releases":[]}]}`)
	c := bioversions.New(bioversions.WithEndpoint(srv.URL))

	_, err := c.LatestVersion(context.Background(), "drugbank")
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("no releases")
}

func TestLatestVersion_ServerError(t *testing.T) {
	srv := newDumpServer(t, http.StatusInternalServerError, "boom")
	c := bioversions.New(bioversions.WithEndpoint(srv.URL))

	_, err := c.LatestVersion(context.Background(), "drugbank")
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("unexpected status code")
}

func TestLatestVersion_BrokenJSON(t *testing.T) {
	srv := newDumpServer(t, http.StatusOK, "{broken")
	c := bioversions.New(bioversions.WithEndpoint(srv.URL))

	_, err := c.LatestVersion(context.Background(), "drugbank")
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to decode")
}
