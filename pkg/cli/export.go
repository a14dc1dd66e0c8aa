package cli

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/cli/config"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/secmon-lab/grafana-inviter/pkg/service/directory"
	"github.com/urfave/cli/v3"
)

func cmdExport(appCfg *config.App, stdout io.Writer, readSecret config.SecretReader) *cli.Command {
	var output string

	return &cli.Command{
		Name:  "export",
		Usage: "Write the accounts matched by the directory query as LDIF",
		Flags: joinFlags(
			appCfg.LDAP.Flags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:        "output",
					Aliases:     []string{"o"},
					Usage:       "Output LDIF file (stdout when empty)",
					Destination: &output,
				},
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := appCfg.Resolve(config.PartLDAP, readSecret)
			if err != nil {
				return err
			}

			accounts, err := config.ConfigureSource(cfg.LDAP).Accounts(ctx, cfg.LDAP.Query)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch accounts")
			}

			if err := writeExport(stdout, output, accounts); err != nil {
				return err
			}

			ctxlog.From(ctx).Info("Exported accounts", "count", len(accounts), "output", output)
			return nil
		},
	}
}

// writeExport writes LDIF to the output file, or stdout when output is empty.
// The file is closed before returning so a failed flush is reported.
func writeExport(stdout io.Writer, output string, accounts []*model.Account) error {
	if output == "" {
		return directory.WriteLDIF(stdout, accounts)
	}

	f, err := os.Create(output)
	if err != nil {
		return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
	}

	if err := directory.WriteLDIF(f, accounts); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to write output file", goerr.V("path", output))
	}
	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close output file", goerr.V("path", output))
	}
	return nil
}
