package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/cli/config"
	"github.com/secmon-lab/grafana-inviter/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdInvite(appCfg *config.App, stdout io.Writer, readSecret config.SecretReader) *cli.Command {
	var format string

	return &cli.Command{
		Name:  "invite",
		Usage: "Invite directory accounts to Grafana and print their invite links",
		Flags: joinFlags(
			appCfg.LDAP.Flags(),
			appCfg.Grafana.Flags(),
			[]cli.Flag{formatFlag(&format)},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := validateFormat(format); err != nil {
				return err
			}

			cfg, err := appCfg.Resolve(config.PartAll, readSecret)
			if err != nil {
				return err
			}
			logger.Debug("Configuration resolved", "app", appCfg)

			accounts, err := config.ConfigureSource(cfg.LDAP).Accounts(ctx, cfg.LDAP.Query)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch accounts")
			}

			uc := usecase.NewInvite(appCfg.Grafana.Configure(cfg.Grafana), cfg.InviteConfig())
			result, err := uc.InviteAccounts(ctx, accounts, cfg.Grafana.SendInviteMail)
			if err != nil {
				return err
			}

			rep := newReporter(stdout, format, cfg.InviteConfig())
			return rep.invitation(result)
		},
	}
}

func cmdLinks(appCfg *config.App, stdout io.Writer, readSecret config.SecretReader) *cli.Command {
	var format string

	return &cli.Command{
		Name:  "links",
		Usage: "Print pending invite links of directory accounts without inviting anyone",
		Flags: joinFlags(
			appCfg.LDAP.Flags(),
			appCfg.Grafana.Flags(),
			[]cli.Flag{formatFlag(&format)},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			cfg, err := appCfg.Resolve(config.PartAll, readSecret)
			if err != nil {
				return err
			}

			accounts, err := config.ConfigureSource(cfg.LDAP).Accounts(ctx, cfg.LDAP.Query)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch accounts")
			}

			uc := usecase.NewInvite(appCfg.Grafana.Configure(cfg.Grafana), cfg.InviteConfig())
			if err := uc.PopulateInviteLinks(ctx, accounts); err != nil {
				return err
			}

			rep := newReporter(stdout, format, cfg.InviteConfig())
			return rep.links(accounts)
		},
	}
}
