package interfaces

import (
	"context"

	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
)

// AccountSource fetches accounts from a directory
type AccountSource interface {
	Accounts(ctx context.Context, query model.DirectoryQuery) ([]*model.Account, error)
}
