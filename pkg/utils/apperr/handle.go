package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
)

// Handle logs a terminating error with the context values goerr carries
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	attrs := []any{"error", err}
	if values := goerr.Values(err); len(values) > 0 {
		attrs = append(attrs, "values", values)
	}

	if errors.Is(err, model.ErrInvalidConfig) {
		logger.Error("configuration error", attrs...)
		return
	}
	logger.Error("application error", attrs...)
}
