package model

import (
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/types"
)

const (
	DefaultNameAttribute = "name"
	DefaultMailAttribute = "mail"
)

// Config represents the configuration file
type Config struct {
	LDAP    LDAPConfig    `yaml:"ldap" json:"ldap"`
	Grafana GrafanaConfig `yaml:"grafana" json:"grafana"`
}

// LDAPConfig holds directory connection parameters and the account query
type LDAPConfig struct {
	URL                string         `yaml:"url" json:"url"`
	User               string         `yaml:"user" json:"user"`
	Password           string         `yaml:"password" json:"password"`
	InsecureSkipVerify bool           `yaml:"insecure_skip_verify" json:"insecure_skip_verify"`
	PageSize           uint32         `yaml:"page_size" json:"page_size"`
	LDIFFile           string         `yaml:"ldif_file" json:"ldif_file"`
	Query              DirectoryQuery `yaml:"query" json:"query"`
}

// DirectoryQuery selects the accounts to invite
type DirectoryQuery struct {
	GroupBaseDN        string   `yaml:"group_base_dn" json:"group_base_dn"`
	SearchFilter       string   `yaml:"search_filter" json:"search_filter"`
	RetrieveAttributes []string `yaml:"retrieve_attributes" json:"retrieve_attributes"`
	NameAttribute      string   `yaml:"name_attribute" json:"name_attribute"`
	MailAttribute      string   `yaml:"mail_attribute" json:"mail_attribute"`
}

// GrafanaConfig holds Grafana connection parameters and invitation settings
type GrafanaConfig struct {
	URL            string      `yaml:"url" json:"url"`
	Token          string      `yaml:"token" json:"token"`
	OrgID          types.OrgID `yaml:"orgId" json:"orgId"`
	Role           types.Role  `yaml:"role" json:"role"`
	SendInviteMail bool        `yaml:"send_invite_mail" json:"send_invite_mail"`
}

// ApplyDefaults fills optional fields left empty
func (c *Config) ApplyDefaults() {
	if c.LDAP.Query.NameAttribute == "" {
		c.LDAP.Query.NameAttribute = DefaultNameAttribute
	}
	if c.LDAP.Query.MailAttribute == "" {
		c.LDAP.Query.MailAttribute = DefaultMailAttribute
	}
	if c.Grafana.Role == "" {
		c.Grafana.Role = types.DefaultRole
	}
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.LDAP.Validate(); err != nil {
		return err
	}
	if err := c.Grafana.Validate(); err != nil {
		return err
	}
	return nil
}

// InviteConfig returns the invitation parameters derived from the configuration
func (c *Config) InviteConfig() InviteConfig {
	return InviteConfig{
		OrgID:         c.Grafana.OrgID,
		Role:          c.Grafana.Role,
		NameAttribute: c.LDAP.Query.NameAttribute,
		MailAttribute: c.LDAP.Query.MailAttribute,
	}
}

// Validate validates the directory side of the configuration. Connection
// fields are not required when accounts are read from an LDIF file.
func (c *LDAPConfig) Validate() error {
	if c.LDIFFile == "" {
		required := []struct {
			field string
			value string
		}{
			{"ldap.url", c.URL},
			{"ldap.user", c.User},
			{"ldap.password", c.Password},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				return missingField(r.field)
			}
		}
	}

	return c.Query.Validate()
}

// Validate validates the account query
func (q *DirectoryQuery) Validate() error {
	if strings.TrimSpace(q.GroupBaseDN) == "" {
		return missingField("ldap.query.group_base_dn")
	}
	if strings.TrimSpace(q.SearchFilter) == "" {
		return missingField("ldap.query.search_filter")
	}
	if len(q.RetrieveAttributes) == 0 {
		return missingField("ldap.query.retrieve_attributes")
	}

	for _, attr := range []string{q.NameAttribute, q.MailAttribute} {
		if attr == "" {
			continue
		}
		if !slices.ContainsFunc(q.RetrieveAttributes, func(s string) bool { return strings.EqualFold(s, attr) }) {
			return goerr.Wrap(ErrInvalidConfig, "ldap.query.retrieve_attributes must include the name and mail attributes",
				goerr.V("attribute", attr),
				goerr.V("retrieve_attributes", q.RetrieveAttributes))
		}
	}

	return nil
}

// Validate validates the Grafana side of the configuration
func (c *GrafanaConfig) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return missingField("grafana.url")
	}
	if strings.TrimSpace(c.Token) == "" {
		return missingField("grafana.token")
	}
	if c.OrgID <= 0 {
		return goerr.Wrap(ErrInvalidConfig, "grafana.orgId must be a positive integer",
			goerr.V("orgId", c.OrgID))
	}
	if c.Role != "" {
		if err := c.Role.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V("role", c.Role))
		}
	}
	return nil
}

func missingField(field string) error {
	return goerr.Wrap(ErrInvalidConfig, "required field is missing: "+field, goerr.V("field", field))
}
