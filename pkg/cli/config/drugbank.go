package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/drugbank/pkg/domain/model"
	"github.com/m-mizutani/drugbank/pkg/usecase"
)

// DrugBank holds download pipeline configuration
type DrugBank struct {
	Username       string
	Password       string
	Version        string
	Prefix         []string
	Force          bool
	CacheDir       string
	MinArchiveSize int64
}

// Flags returns CLI flags for the download pipeline
func (c *DrugBank) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "username",
			Usage:       "DrugBank account username",
			Destination: &c.Username,
			Sources:     cli.EnvVars("DRUGBANK_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "DrugBank account password",
			Destination: &c.Password,
			Sources:     cli.EnvVars("DRUGBANK_PASSWORD"),
		},
		&cli.StringFlag{
			Name:        "release",
			Aliases:     []string{"r"},
			Usage:       "DrugBank release version (e.g. 5.1.13); latest when omitted",
			Destination: &c.Version,
			Sources:     cli.EnvVars("DRUGBANK_VERSION"),
		},
		&cli.StringSliceFlag{
			Name:        "prefix",
			Usage:       "Cache path segments under the cache root",
			Destination: &c.Prefix,
			Sources:     cli.EnvVars("DRUGBANK_PREFIX"),
		},
		&cli.BoolFlag{
			Name:        "force",
			Aliases:     []string{"f"},
			Usage:       "Re-download even if a cached archive exists",
			Destination: &c.Force,
			Sources:     cli.EnvVars("DRUGBANK_FORCE"),
		},
		&cli.StringFlag{
			Name:        "cache-dir",
			Usage:       "Cache root directory",
			Destination: &c.CacheDir,
			Sources:     cli.EnvVars("DRUGBANK_HOME"),
		},
		&cli.Int64Flag{
			Name:        "min-archive-size",
			Usage:       "Minimum valid archive size in bytes",
			Value:       usecase.DefaultMinArchiveSize,
			Destination: &c.MinArchiveSize,
			Sources:     cli.EnvVars("DRUGBANK_MIN_ARCHIVE_SIZE"),
		},
	}
}

// Request converts the flag values into a download request
func (c *DrugBank) Request() *model.DownloadRequest {
	return &model.DownloadRequest{
		Username: c.Username,
		Password: c.Password,
		Version:  c.Version,
		Prefix:   c.Prefix,
		Force:    c.Force,
	}
}
