package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify the terminal failures of the acquisition pipeline.
// Lower-level I/O, HTTP, zip and XML errors are wrapped but not tagged.
var (
	// ErrTagNoVersionSource: no explicit version was given and no version
	// resolver is configured
	ErrTagNoVersionSource = goerr.NewTag("no_version_source")

	// ErrTagMissingConfig: a required value is absent from explicit arguments,
	// the environment and the config file
	ErrTagMissingConfig = goerr.NewTag("missing_config")

	// ErrTagInvalidCredentials: the downloaded archive is smaller than the
	// validity threshold, which means the server returned an error page
	// instead of the database
	ErrTagInvalidCredentials = goerr.NewTag("invalid_credentials")
)
