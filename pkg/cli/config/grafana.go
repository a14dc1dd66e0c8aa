package config

import (
	"log/slog"
	"time"

	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/types"
	"github.com/secmon-lab/grafana-inviter/pkg/service/grafana"
	"github.com/urfave/cli/v3"
)

// Grafana holds Grafana flags. Non-empty values override the config file.
type Grafana struct {
	URL            string
	Token          string
	AskToken       bool
	OrgID          int64
	Role           string
	SendInviteMail bool
	Timeout        time.Duration
}

// Flags returns CLI flags for Grafana configuration
func (g *Grafana) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "grafana-url",
			Usage:       "Grafana URL",
			Category:    "Grafana",
			Sources:     cli.EnvVars(envPrefix + "GRAFANA_URL"),
			Destination: &g.URL,
		},
		&cli.StringFlag{
			Name:        "grafana-token",
			Usage:       "Grafana API token with org admin rights",
			Category:    "Grafana",
			Sources:     cli.EnvVars(envPrefix + "GRAFANA_TOKEN"),
			Destination: &g.Token,
		},
		&cli.BoolFlag{
			Name:        "ask-grafana-token",
			Usage:       "Prompt for the Grafana API token",
			Category:    "Grafana",
			Destination: &g.AskToken,
		},
		&cli.Int64Flag{
			Name:        "grafana-org-id",
			Usage:       "Grafana organization ID to invite into",
			Category:    "Grafana",
			Sources:     cli.EnvVars(envPrefix + "GRAFANA_ORG_ID"),
			Destination: &g.OrgID,
		},
		&cli.StringFlag{
			Name:        "grafana-role",
			Usage:       "Role granted to invited users (Viewer, Editor, Admin)",
			Category:    "Grafana",
			Sources:     cli.EnvVars(envPrefix + "GRAFANA_ROLE"),
			Destination: &g.Role,
		},
		&cli.BoolFlag{
			Name:        "send-invite-mail",
			Usage:       "Let Grafana send the invitation mail",
			Category:    "Grafana",
			Sources:     cli.EnvVars(envPrefix + "SEND_INVITE_MAIL"),
			Destination: &g.SendInviteMail,
		},
		&cli.DurationFlag{
			Name:        "grafana-timeout",
			Usage:       "Timeout of each Grafana API request",
			Category:    "Grafana",
			Value:       grafana.DefaultTimeout,
			Sources:     cli.EnvVars(envPrefix + "GRAFANA_TIMEOUT"),
			Destination: &g.Timeout,
		},
	}
}

// Apply overrides the file configuration with values given on the command line
func (g *Grafana) Apply(cfg *model.GrafanaConfig) {
	if g.URL != "" {
		cfg.URL = g.URL
	}
	if g.Token != "" {
		cfg.Token = g.Token
	}
	if g.OrgID != 0 {
		cfg.OrgID = types.OrgID(g.OrgID)
	}
	if g.Role != "" {
		cfg.Role = types.Role(g.Role)
	}
	if g.SendInviteMail {
		cfg.SendInviteMail = true
	}
}

// Configure creates the Grafana client
func (g *Grafana) Configure(cfg model.GrafanaConfig) *grafana.Client {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = grafana.DefaultTimeout
	}
	return grafana.New(cfg.URL, cfg.Token, grafana.WithTimeout(timeout))
}

// LogValue returns structured log value
func (g Grafana) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", g.URL),
		slog.Bool("has_token", g.Token != ""),
		slog.Bool("ask_token", g.AskToken),
		slog.Int64("org_id", g.OrgID),
		slog.String("role", g.Role),
		slog.Bool("send_invite_mail", g.SendInviteMail),
		slog.Duration("timeout", g.Timeout),
	)
}
