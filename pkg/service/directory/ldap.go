package directory

import (
	"context"
	"crypto/tls"

	"github.com/go-ldap/ldap/v3"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
)

// Conn is the subset of *ldap.Conn used to fetch accounts
type Conn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	SearchWithPaging(req *ldap.SearchRequest, pagingSize uint32) (*ldap.SearchResult, error)
}

// Dialer opens a connection. The returned func closes it.
type Dialer func(ctx context.Context, url string, tlsConfig *tls.Config) (Conn, func(), error)

// LDAP fetches accounts from an LDAP directory with a simple bind
type LDAP struct {
	url       string
	user      string
	password  string
	pageSize  uint32
	tlsConfig *tls.Config
	dial      Dialer
}

var _ interfaces.AccountSource = (*LDAP)(nil)

// Option configures an LDAP client
type Option func(*LDAP)

// WithDialer replaces how connections are opened
func WithDialer(d Dialer) Option {
	return func(c *LDAP) {
		c.dial = d
	}
}

// NewLDAP creates a directory client from the LDAP configuration
func NewLDAP(cfg model.LDAPConfig, opts ...Option) *LDAP {
	client := &LDAP{
		url:       cfg.URL,
		user:      cfg.User,
		password:  cfg.Password,
		pageSize:  cfg.PageSize,
		tlsConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
		dial:      dialURL,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func dialURL(_ context.Context, url string, tlsConfig *tls.Config) (Conn, func(), error) {
	conn, err := ldap.DialURL(url, ldap.DialWithTLSConfig(tlsConfig))
	if err != nil {
		return nil, nil, err
	}
	return conn, func() { conn.Close() }, nil
}

// Accounts binds, runs a subtree search and converts every entry into an
// Account holding only the requested attributes
func (c *LDAP) Accounts(ctx context.Context, query model.DirectoryQuery) ([]*model.Account, error) {
	logger := ctxlog.From(ctx)

	conn, closeConn, err := c.dial(ctx, c.url, c.tlsConfig)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to LDAP server", goerr.V("url", c.url))
	}
	defer closeConn()

	if err := conn.Bind(c.user, c.password); err != nil {
		return nil, goerr.Wrap(err, "failed to bind to LDAP server",
			goerr.V("url", c.url),
			goerr.V("user", c.user))
	}

	req := ldap.NewSearchRequest(
		query.GroupBaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		query.SearchFilter,
		query.RetrieveAttributes,
		nil,
	)

	var result *ldap.SearchResult
	if c.pageSize > 0 {
		result, err = conn.SearchWithPaging(req, c.pageSize)
	} else {
		result, err = conn.Search(req)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search LDAP",
			goerr.V("base_dn", query.GroupBaseDN),
			goerr.V("filter", query.SearchFilter))
	}

	accounts := FromEntries(result.Entries, query.RetrieveAttributes)
	logger.Info("Fetched accounts from LDAP",
		"url", c.url,
		"base_dn", query.GroupBaseDN,
		"count", len(accounts))

	return accounts, nil
}

// FromEntries converts directory entries into accounts
func FromEntries(entries []*ldap.Entry, attributes []string) []*model.Account {
	accounts := make([]*model.Account, 0, len(entries))
	for _, entry := range entries {
		accounts = append(accounts, FromEntry(entry, attributes))
	}
	return accounts
}

// FromEntry converts one directory entry into an account
func FromEntry(entry *ldap.Entry, attributes []string) *model.Account {
	raw := make(map[string][]string, len(entry.Attributes))
	for _, attr := range entry.Attributes {
		raw[attr.Name] = append(raw[attr.Name], attr.Values...)
	}
	return model.NewAccount(entry.DN, raw, attributes)
}
