package model

import (
	"net/http"
	"time"

	"github.com/secmon-lab/grafana-inviter/pkg/domain/types"
)

// Invitation represents a pending invitation as listed by GET /api/org/invites
type Invitation struct {
	ID             int64       `json:"id"`
	OrgID          types.OrgID `json:"orgId"`
	Name           string      `json:"name"`
	Email          types.Email `json:"email"`
	Role           types.Role  `json:"role"`
	InvitedByLogin string      `json:"invitedByLogin"`
	InvitedByEmail string      `json:"invitedByEmail"`
	InvitedByName  string      `json:"invitedByName"`
	Code           string      `json:"code"`
	Status         string      `json:"status"`
	URL            string      `json:"url"`
	EmailSent      bool        `json:"emailSent"`
	EmailSentOn    *time.Time  `json:"emailSentOn,omitempty"`
	CreatedOn      *time.Time  `json:"createdOn,omitempty"`
}

// InviteRequest is the body of POST /api/org/invites
type InviteRequest struct {
	Name         string      `json:"name"`
	LoginOrEmail string      `json:"loginOrEmail"`
	Role         types.Role  `json:"role"`
	SendEmail    bool        `json:"sendEmail"`
	OrgID        types.OrgID `json:"orgId"`
}

// InviteResponse is the status and message returned by POST /api/org/invites
type InviteResponse struct {
	StatusCode int
	Message    string
}

// OK reports whether Grafana accepted the invitation
func (r *InviteResponse) OK() bool {
	return r.StatusCode == http.StatusOK
}

// InviteConfig holds the fixed parameters of every invitation in a run
type InviteConfig struct {
	OrgID         types.OrgID
	Role          types.Role
	NameAttribute string
	MailAttribute string
}

// InviteResult is the outcome of inviting a single account
type InviteResult struct {
	Status  types.InviteStatus
	Success bool
	Message string
}

// InvitationResult represents the result of a batch invitation run
type InvitationResult struct {
	Details []InviteDetail // One entry per account, in input order
}

// InviteDetail represents the details of a single account invitation
type InviteDetail struct {
	Account *Account
	Status  types.InviteStatus
	Message string
}

// Accounts returns the accounts of the run in input order
func (r *InvitationResult) Accounts() []*Account {
	accounts := make([]*Account, 0, len(r.Details))
	for _, d := range r.Details {
		accounts = append(accounts, d.Account)
	}
	return accounts
}

// Links returns the invite links of accounts that have one, in input order
func (r *InvitationResult) Links() []string {
	return InviteLinks(r.Accounts())
}

// Count returns how many details have the given status
func (r *InvitationResult) Count(status types.InviteStatus) int {
	n := 0
	for _, d := range r.Details {
		if d.Status == status {
			n++
		}
	}
	return n
}

// InviteLinks collects the invite links of accounts that have one
func InviteLinks(accounts []*Account) []string {
	links := []string{}
	for _, a := range accounts {
		if a.HasInviteLink() {
			links = append(links, a.InviteLink)
		}
	}
	return links
}
