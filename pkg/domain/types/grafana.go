package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// OrgID is a Grafana organization identifier
type OrgID int64

// String returns the string representation
func (id OrgID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Role is a Grafana organization role
type Role string

const (
	RoleViewer Role = "Viewer"
	RoleEditor Role = "Editor"
	RoleAdmin  Role = "Admin"
)

// DefaultRole is granted to invited accounts unless configured otherwise
const DefaultRole = RoleViewer

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// Validate checks that the role is one Grafana accepts for org invites
func (r Role) Validate() error {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return nil
	default:
		return goerr.New("invalid Grafana role", goerr.V("role", r))
	}
}

// InviteStatus is the outcome of a single invitation attempt
type InviteStatus string

const (
	InviteStatusInvited        InviteStatus = "invited"
	InviteStatusAlreadyInvited InviteStatus = "already_invited"
	InviteStatusFailed         InviteStatus = "failed"
)

// String returns the string representation
func (s InviteStatus) String() string {
	return string(s)
}
