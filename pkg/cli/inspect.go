package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/drugbank/pkg/cli/config"
)

func cmdInspect() *cli.Command {
	var dbCfg config.DrugBank

	return &cli.Command{
		Name:  "inspect",
		Usage: "Parse the database XML and print a short summary",
		Flags: dbCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := newUseCase(&dbCfg)
			if err != nil {
				return err
			}

			root, err := uc.Root(ctx, dbCfg.Request())
			if err != nil {
				return err
			}

			fmt.Printf("%s root=%s drugs=%d\n",
				color.CyanString("●"), root.Tag, len(root.SelectElements("drug")))
			return nil
		},
	}
}
