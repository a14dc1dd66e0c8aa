package config

import (
	"log/slog"

	"github.com/secmon-lab/grafana-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/secmon-lab/grafana-inviter/pkg/service/directory"
	"github.com/urfave/cli/v3"
)

// LDAP holds directory flags. Non-empty values override the config file.
type LDAP struct {
	URL         string
	User        string
	Password    string
	AskPassword bool
	LDIFFile    string
}

// Flags returns CLI flags for LDAP configuration
func (l *LDAP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "ldap-url",
			Usage:       "LDAP URL, e.g. ldaps://ldap.example.com",
			Category:    "LDAP",
			Sources:     cli.EnvVars(envPrefix + "LDAP_URL"),
			Destination: &l.URL,
		},
		&cli.StringFlag{
			Name:        "ldap-user",
			Usage:       "LDAP service account bind DN",
			Category:    "LDAP",
			Sources:     cli.EnvVars(envPrefix + "LDAP_USER"),
			Destination: &l.User,
		},
		&cli.StringFlag{
			Name:        "ldap-password",
			Usage:       "LDAP service account password",
			Category:    "LDAP",
			Sources:     cli.EnvVars(envPrefix + "LDAP_PASSWORD"),
			Destination: &l.Password,
		},
		&cli.BoolFlag{
			Name:        "ask-ldap-password",
			Usage:       "Prompt for the LDAP password",
			Category:    "LDAP",
			Destination: &l.AskPassword,
		},
		&cli.StringFlag{
			Name:        "ldif-file",
			Usage:       "Read accounts from an LDIF export instead of the LDAP server",
			Category:    "LDAP",
			Sources:     cli.EnvVars(envPrefix + "LDIF_FILE"),
			Destination: &l.LDIFFile,
		},
	}
}

// Apply overrides the file configuration with values given on the command line
func (l *LDAP) Apply(cfg *model.LDAPConfig) {
	if l.URL != "" {
		cfg.URL = l.URL
	}
	if l.User != "" {
		cfg.User = l.User
	}
	if l.Password != "" {
		cfg.Password = l.Password
	}
	if l.LDIFFile != "" {
		cfg.LDIFFile = l.LDIFFile
	}
}

// ConfigureSource creates the account source: the LDIF file when one is
// configured, the LDAP server otherwise
func ConfigureSource(cfg model.LDAPConfig) interfaces.AccountSource {
	if cfg.LDIFFile != "" {
		return directory.NewLDIF(cfg.LDIFFile)
	}
	return directory.NewLDAP(cfg)
}

// LogValue returns structured log value
func (l LDAP) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", l.URL),
		slog.String("user", l.User),
		slog.Bool("has_password", l.Password != ""),
		slog.Bool("ask_password", l.AskPassword),
		slog.String("ldif_file", l.LDIFFile),
	)
}
