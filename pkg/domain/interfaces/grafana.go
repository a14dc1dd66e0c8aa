package interfaces

//go:generate moq -out mocks/grafana_mock.go -pkg mocks . GrafanaClient

import (
	"context"

	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
)

// GrafanaClient defines the Grafana organization invite operations
type GrafanaClient interface {
	// ListInvites returns all pending invitations of the organization
	ListInvites(ctx context.Context) ([]*model.Invitation, error)

	// CreateInvite requests a new invitation. A non-OK status is reported in
	// the response, not as an error.
	CreateInvite(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error)
}
