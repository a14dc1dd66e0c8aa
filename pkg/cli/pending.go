package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/cli/config"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdPending(appCfg *config.App, stdout io.Writer, readSecret config.SecretReader) *cli.Command {
	var format string

	return &cli.Command{
		Name:  "pending",
		Usage: "List pending Grafana invitations",
		Flags: joinFlags(
			appCfg.Grafana.Flags(),
			[]cli.Flag{formatFlag(&format)},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			cfg, err := appCfg.Resolve(config.PartGrafana, readSecret)
			if err != nil {
				return err
			}

			invites, err := appCfg.Grafana.Configure(cfg.Grafana).ListInvites(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list pending invitations")
			}

			rep := newReporter(stdout, format, model.InviteConfig{})
			return rep.pending(invites)
		},
	}
}
