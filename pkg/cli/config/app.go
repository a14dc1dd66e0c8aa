package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// App combines the config file with the LDAP and Grafana flags
type App struct {
	File    string
	LDAP    LDAP
	Grafana Grafana
}

// FileFlags returns the flag selecting the config file
func (a *App) FileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Configuration file (YAML or JSON)",
			Sources:     cli.EnvVars(envPrefix + "CONFIG"),
			Destination: &a.File,
		},
	}
}

// Part selects which side of the configuration must be valid
type Part int

const (
	PartAll Part = iota
	PartLDAP
	PartGrafana
)

// Resolve loads the config file if any, applies flag overrides, asks for the
// secrets the user requested to type in and validates the requested part.
// Nothing touches the network before validation passes.
func (a *App) Resolve(part Part, readSecret SecretReader) (*model.Config, error) {
	cfg := &model.Config{}
	if a.File != "" {
		loaded, err := LoadFile(a.File)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	a.LDAP.Apply(&cfg.LDAP)
	a.Grafana.Apply(&cfg.Grafana)

	if a.LDAP.AskPassword && part != PartGrafana {
		password, err := readSecret("LDAP password: ")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read LDAP password")
		}
		cfg.LDAP.Password = password
	}
	if a.Grafana.AskToken && part != PartLDAP {
		token, err := readSecret("Grafana token: ")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read Grafana token")
		}
		cfg.Grafana.Token = token
	}

	cfg.ApplyDefaults()

	var err error
	switch part {
	case PartLDAP:
		err = cfg.LDAP.Validate()
	case PartGrafana:
		err = cfg.Grafana.Validate()
	default:
		err = cfg.Validate()
	}
	if err != nil {
		return nil, goerr.Wrap(err, "invalid configuration", goerr.V("file", a.File))
	}

	return cfg, nil
}

// LogValue returns structured log value
func (a App) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", a.File),
		slog.Any("ldap", a.LDAP),
		slog.Any("grafana", a.Grafana),
	)
}
