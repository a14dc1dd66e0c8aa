package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/types"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return goerr.Wrap(model.ErrInvalidConfig, "invalid report format", goerr.V("format", format))
	}
}

// reporter writes run results to stdout. Logs go to stderr separately.
type reporter struct {
	w      io.Writer
	format string
	cfg    model.InviteConfig
}

func newReporter(w io.Writer, format string, cfg model.InviteConfig) *reporter {
	return &reporter{w: w, format: format, cfg: cfg}
}

type detailJSON struct {
	Account *model.Account     `json:"account"`
	Status  types.InviteStatus `json:"status"`
	Message string             `json:"message"`
}

func (r *reporter) invitation(result *model.InvitationResult) error {
	if r.format == formatJSON {
		details := make([]detailJSON, 0, len(result.Details))
		for _, d := range result.Details {
			details = append(details, detailJSON{Account: d.Account, Status: d.Status, Message: d.Message})
		}
		return r.json(map[string]any{
			"details": details,
			"links":   result.Links(),
		})
	}

	for _, d := range result.Details {
		fmt.Fprintf(r.w, "Sending invite to %s\n", r.label(d.Account))
		fmt.Fprintf(r.w, " > %s\n", d.Message)
	}
	return r.linkLines(result.Accounts())
}

func (r *reporter) links(accounts []*model.Account) error {
	if r.format == formatJSON {
		return r.json(map[string]any{
			"accounts": accounts,
			"links":    model.InviteLinks(accounts),
		})
	}
	return r.linkLines(accounts)
}

func (r *reporter) pending(invites []*model.Invitation) error {
	if r.format == formatJSON {
		return r.json(invites)
	}

	for _, inv := range invites {
		fmt.Fprintf(r.w, "%s (%s) %s %s\n", inv.Name, inv.Email, inv.Role, inv.URL)
	}
	fmt.Fprintf(r.w, "%d pending invitation(s)\n", len(invites))
	return nil
}

func (r *reporter) linkLines(accounts []*model.Account) error {
	fmt.Fprintln(r.w, "Available invite URLs:")
	for _, a := range accounts {
		if a.HasInviteLink() {
			fmt.Fprintf(r.w, " - %s: %s\n", r.label(a), a.InviteLink)
		}
	}
	return nil
}

func (r *reporter) label(a *model.Account) string {
	return fmt.Sprintf("%s (%s)", a.Value(r.cfg.NameAttribute), a.Value(r.cfg.MailAttribute))
}

func (r *reporter) json(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}
	return nil
}
