package apperr_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/secmon-lab/grafana-inviter/pkg/utils/apperr"
)

func TestHandle(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "Configuration error",
			err:     goerr.Wrap(model.ErrInvalidConfig, "missing field", goerr.V("field", "grafana.url")),
			message: "configuration error",
		},
		{
			name:    "Other error",
			err:     goerr.New("connection refused", goerr.V("url", "ldaps://ldap.acme.org")),
			message: "application error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			ctx := ctxlog.With(context.Background(), logger)

			apperr.Handle(ctx, tc.err)
			gt.S(t, buf.String()).Contains(tc.message)
		})
	}

	t.Run("Nil error logs nothing", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := ctxlog.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		apperr.Handle(ctx, nil)
		gt.Equal(t, 0, buf.Len())
	})
}
