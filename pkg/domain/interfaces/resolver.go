package interfaces

import "context"

// VersionResolver reports the latest known release identifier of a named
// dataset. It is consulted only when no explicit version is requested.
type VersionResolver interface {
	// LatestVersion returns the most recent version string for the dataset
	// (e.g. "drugbank")
	LatestVersion(ctx context.Context, dataset string) (string, error)
}
