package types_test

import (
	"testing"

	"github.com/secmon-lab/grafana-inviter/pkg/domain/types"
)

func TestEmailEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     types.Email
		expected bool
	}{
		{"Identical", "john.doe@acme.com", "john.doe@acme.com", true},
		{"Different case", "John.Doe@ACME.com", "john.doe@acme.COM", true},
		{"Surrounding whitespace", " jane@acme.org\t", "jane@acme.org", true},
		{"Different local part", "john@acme.com", "jane@acme.com", false},
		{"Different domain", "john@acme.com", "john@acme.org", false},
		{"Empty vs value", "", "john@acme.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.expected {
				t.Errorf("Email(%q).Equal(%q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
			if got := tt.b.Equal(tt.a); got != tt.expected {
				t.Errorf("Email(%q).Equal(%q) = %v, want %v", tt.b, tt.a, got, tt.expected)
			}
		})
	}
}

func TestEmailNormalize(t *testing.T) {
	if got := types.Email("  John.Doe@Acme.COM ").Normalize(); got != "john.doe@acme.com" {
		t.Errorf("Normalize() = %q", got)
	}
}

func TestRoleValidate(t *testing.T) {
	tests := []struct {
		name    string
		role    types.Role
		wantErr bool
	}{
		{"Viewer", types.RoleViewer, false},
		{"Editor", types.RoleEditor, false},
		{"Admin", types.RoleAdmin, false},
		{"Lowercase viewer", types.Role("viewer"), true},
		{"Unknown", types.Role("Owner"), true},
		{"Empty", types.Role(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.role.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Role(%q).Validate() error = %v, wantErr %v", tt.role, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultRole(t *testing.T) {
	if types.DefaultRole != types.RoleViewer {
		t.Errorf("DefaultRole = %q, want %q", types.DefaultRole, types.RoleViewer)
	}
}

func TestOrgIDString(t *testing.T) {
	if got := types.OrgID(16).String(); got != "16" {
		t.Errorf("OrgID(16).String() = %q", got)
	}
}
