package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/drugbank/pkg/cli/config"
	"github.com/m-mizutani/drugbank/pkg/infra/bioversions"
	"github.com/m-mizutani/drugbank/pkg/infra/store"
	"github.com/m-mizutani/drugbank/pkg/usecase"
)

func cmdDownload() *cli.Command {
	var dbCfg config.DrugBank

	return &cli.Command{
		Name:    "download",
		Aliases: []string{"d"},
		Usage:   "Download the DrugBank full database archive into the local cache",
		Flags:   dbCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := newUseCase(&dbCfg)
			if err != nil {
				return err
			}

			artifact, err := uc.Download(ctx, dbCfg.Request())
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Info("download finished",
				"version", artifact.Version,
				"size", artifact.Size,
			)
			fmt.Printf("%s %s\n", color.GreenString("✓"), artifact.Path)
			return nil
		},
	}
}

// newUseCase wires the cache store and the bioversions resolver from flags
func newUseCase(cfg *config.DrugBank) (*usecase.UseCase, error) {
	var storeOpts []store.Option
	if cfg.CacheDir != "" {
		storeOpts = append(storeOpts, store.WithRoot(cfg.CacheDir))
	}

	s, err := store.New(storeOpts...)
	if err != nil {
		return nil, err
	}

	return usecase.New(
		usecase.WithStore(s),
		usecase.WithVersionResolver(bioversions.New()),
		usecase.WithMinArchiveSize(cfg.MinArchiveSize),
	)
}
