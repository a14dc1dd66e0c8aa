package directory_test

import (
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grafana-inviter/pkg/service/directory"
)

func TestFilterMatch(t *testing.T) {
	entry := ldap.NewEntry("CN=John Doe,OU=AC,OU=Employees,O=acme,C=global", map[string][]string{
		"objectClass":    {"top", "person", "user"},
		"name":           {"John Doe"},
		"mail":           {"John.Doe@acme.com"},
		"memberOf":       {"CN=grafana,OU=Groups,O=acme", "CN=vpn,OU=Groups,O=acme"},
		"employeeNumber": {"1042"},
	})

	testCases := []struct {
		name     string
		filter   string
		expected bool
	}{
		{"Equality", "(objectClass=person)", true},
		{"Equality ignores case", "(mail=john.doe@ACME.com)", true},
		{"Equality on multi-valued attribute", "(memberOf=CN=vpn,OU=Groups,O=acme)", true},
		{"Equality mismatch", "(objectClass=computer)", false},
		{"Attribute name ignores case", "(MAIL=John.Doe@acme.com)", true},
		{"Presence", "(mail=*)", true},
		{"Presence of absent attribute", "(telephoneNumber=*)", false},
		{"And", "(&(objectClass=person)(memberOf=CN=grafana,OU=Groups,O=acme))", true},
		{"And with one false", "(&(objectClass=person)(memberOf=CN=admins,OU=Groups,O=acme))", false},
		{"Or", "(|(objectClass=computer)(name=John Doe))", true},
		{"Not", "(!(objectClass=computer))", true},
		{"Substring initial", "(mail=john*)", true},
		{"Substring final", "(mail=*@acme.com)", true},
		{"Substring any", "(name=*hn D*)", true},
		{"Substring mismatch", "(mail=jane*)", false},
		{"Greater or equal numeric", "(employeeNumber>=1000)", true},
		{"Less or equal numeric", "(employeeNumber<=999)", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := directory.CompileFilter(tc.filter)
			gt.NoError(t, err).Required()

			ok, err := f.Match(entry)
			gt.NoError(t, err).Required()
			gt.Equal(t, tc.expected, ok)
		})
	}
}

func TestCompileFilterRejectsMalformed(t *testing.T) {
	_, err := directory.CompileFilter("(objectClass=person")
	gt.Error(t, err)
}

func TestFilterExtensibleMatchUnsupported(t *testing.T) {
	f, err := directory.CompileFilter("(memberOf:1.2.840.113556.1.4.1941:=CN=grafana,OU=Groups,O=acme)")
	gt.NoError(t, err).Required()

	_, err = f.Match(ldap.NewEntry("CN=x", map[string][]string{"memberOf": {"CN=grafana,OU=Groups,O=acme"}}))
	gt.Error(t, err)
}
