package directory

import (
	"context"
	"io"
	"os"

	"github.com/go-ldap/ldap/v3"
	"github.com/go-ldap/ldif"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
)

// LDIF reads accounts from an LDIF export instead of a live directory. The
// query's base DN and filter are evaluated locally.
type LDIF struct {
	path string
}

var _ interfaces.AccountSource = (*LDIF)(nil)

// NewLDIF creates an account source backed by the LDIF file at path
func NewLDIF(path string) *LDIF {
	return &LDIF{path: path}
}

// Accounts returns the content records under the base DN that match the filter
func (s *LDIF) Accounts(ctx context.Context, query model.DirectoryQuery) ([]*model.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read LDIF file", goerr.V("path", s.path))
	}

	parsed, err := ldif.Parse(string(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse LDIF file", goerr.V("path", s.path))
	}

	entries := make([]*ldap.Entry, 0, len(parsed.Entries))
	for _, e := range parsed.Entries {
		if e.Entry != nil {
			entries = append(entries, e.Entry)
		}
	}

	matched, err := SelectEntries(entries, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select LDIF entries", goerr.V("path", s.path))
	}

	accounts := FromEntries(matched, query.RetrieveAttributes)
	ctxlog.From(ctx).Info("Loaded accounts from LDIF",
		"path", s.path,
		"entries", len(entries),
		"count", len(accounts))

	return accounts, nil
}

// SelectEntries keeps the entries within the query's base DN subtree that
// satisfy its filter, preserving order
func SelectEntries(entries []*ldap.Entry, query model.DirectoryQuery) ([]*ldap.Entry, error) {
	base, err := ldap.ParseDN(query.GroupBaseDN)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid base DN", goerr.V("base_dn", query.GroupBaseDN))
	}

	filter, err := CompileFilter(query.SearchFilter)
	if err != nil {
		return nil, err
	}

	var selected []*ldap.Entry
	for _, entry := range entries {
		dn, err := ldap.ParseDN(entry.DN)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid entry DN", goerr.V("dn", entry.DN))
		}
		if !base.EqualFold(dn) && !base.AncestorOfFold(dn) {
			continue
		}

		ok, err := filter.Match(entry)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to evaluate filter", goerr.V("dn", entry.DN))
		}
		if ok {
			selected = append(selected, entry)
		}
	}

	return selected, nil
}

// WriteLDIF serializes the accounts as LDIF content records
func WriteLDIF(w io.Writer, accounts []*model.Account) error {
	entries := make([]*ldap.Entry, 0, len(accounts))
	for _, a := range accounts {
		if a.DN == "" {
			return goerr.New("account has no DN, cannot export as LDIF")
		}
		entries = append(entries, ldap.NewEntry(a.DN, a.RawAttributes()))
	}

	data, err := ldif.ToLDIF(entries)
	if err != nil {
		return goerr.Wrap(err, "failed to build LDIF")
	}

	text, err := ldif.Marshal(data)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal LDIF")
	}

	if _, err := io.WriteString(w, text); err != nil {
		return goerr.Wrap(err, "failed to write LDIF")
	}
	return nil
}
