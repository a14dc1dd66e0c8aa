package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/types"
)

const msgAlreadyInvited = "User already invited"

type Invite struct {
	grafana interfaces.GrafanaClient
	cfg     model.InviteConfig
}

func NewInvite(grafana interfaces.GrafanaClient, cfg model.InviteConfig) *Invite {
	if cfg.Role == "" {
		cfg.Role = types.DefaultRole
	}
	if cfg.NameAttribute == "" {
		cfg.NameAttribute = model.DefaultNameAttribute
	}
	if cfg.MailAttribute == "" {
		cfg.MailAttribute = model.DefaultMailAttribute
	}
	return &Invite{
		grafana: grafana,
		cfg:     cfg,
	}
}

// Invite creates a Grafana invitation for the account unless a pending
// invitation for the same mail address (case-insensitive) already exists.
// The pending list is fetched on every call.
func (u *Invite) Invite(ctx context.Context, account *model.Account, sendMail bool) (*model.InviteResult, error) {
	logger := ctxlog.From(ctx)

	name, mail, err := u.identity(account)
	if err != nil {
		return nil, err
	}

	invites, err := u.grafana.ListInvites(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list pending invitations", goerr.V("mail", mail))
	}

	for _, invite := range invites {
		if invite.Email.Equal(mail) {
			logger.Debug("Pending invitation exists", "mail", mail, "inviteID", invite.ID)
			return &model.InviteResult{
				Status:  types.InviteStatusAlreadyInvited,
				Success: false,
				Message: msgAlreadyInvited,
			}, nil
		}
	}

	req := &model.InviteRequest{
		Name:         name,
		LoginOrEmail: mail.String(),
		Role:         u.cfg.Role,
		SendEmail:    sendMail,
		OrgID:        u.cfg.OrgID,
	}

	resp, err := u.grafana.CreateInvite(ctx, req)
	if err != nil {
		// The batch continues with the next account, so a transport failure is
		// reported as a failed outcome.
		logger.Warn("Failed to create invitation", "mail", mail, "error", err)
		return &model.InviteResult{
			Status:  types.InviteStatusFailed,
			Success: false,
			Message: err.Error(),
		}, nil
	}

	result := &model.InviteResult{
		Status:  types.InviteStatusInvited,
		Success: resp.OK(),
		Message: resp.Message,
	}
	if !result.Success {
		result.Status = types.InviteStatusFailed
	}

	return result, nil
}

// PopulateInviteLinks attaches pending invitation URLs to the accounts. Each
// account is matched at most once, and for each invitation the first
// not-yet-matched account with the same mail address wins. The slice itself
// is left in place: no reordering, no resizing.
func (u *Invite) PopulateInviteLinks(ctx context.Context, accounts []*model.Account) error {
	// index of not-yet-matched accounts by normalized mail, in input order
	waiting := make(map[string][]int, len(accounts))
	for i, account := range accounts {
		mail, err := requireAttribute(account, u.cfg.MailAttribute)
		if err != nil {
			return err
		}
		key := types.Email(mail).Normalize()
		waiting[key] = append(waiting[key], i)
	}

	invites, err := u.grafana.ListInvites(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list pending invitations")
	}

	for _, invite := range invites {
		key := invite.Email.Normalize()
		queue := waiting[key]
		if len(queue) == 0 {
			continue
		}

		accounts[queue[0]].SetInviteLink(invite.URL)
		waiting[key] = queue[1:]
	}

	return nil
}

// InviteAccounts invites every account in order, then populates invite links.
// Missing attributes and listing failures abort the run; a rejected or failed
// creation is recorded and the loop continues.
func (u *Invite) InviteAccounts(ctx context.Context, accounts []*model.Account, sendMail bool) (*model.InvitationResult, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Starting invitation process",
		"accountCount", len(accounts),
		"orgID", u.cfg.OrgID,
		"role", u.cfg.Role,
		"sendMail", sendMail)

	result := &model.InvitationResult{
		Details: make([]model.InviteDetail, 0, len(accounts)),
	}

	for _, account := range accounts {
		logger.Info("Sending invite",
			"name", account.Value(u.cfg.NameAttribute),
			"mail", account.Value(u.cfg.MailAttribute))

		outcome, err := u.Invite(ctx, account, sendMail)
		if err != nil {
			if errors.Is(err, model.ErrMissingAttribute) {
				return nil, goerr.Wrap(err, "malformed account from directory", goerr.V("dn", account.DN))
			}
			return nil, goerr.Wrap(err, "failed to invite account", goerr.V("dn", account.DN))
		}

		logger.Info("Invite processed", "status", outcome.Status, "message", outcome.Message)
		result.Details = append(result.Details, model.InviteDetail{
			Account: account,
			Status:  outcome.Status,
			Message: outcome.Message,
		})
	}

	if err := u.PopulateInviteLinks(ctx, accounts); err != nil {
		return nil, goerr.Wrap(err, "failed to populate invite links")
	}

	logger.Info("Invitation completed",
		"invited", result.Count(types.InviteStatusInvited),
		"alreadyInvited", result.Count(types.InviteStatusAlreadyInvited),
		"failed", result.Count(types.InviteStatusFailed),
		"links", len(result.Links()))

	return result, nil
}

func (u *Invite) identity(account *model.Account) (string, types.Email, error) {
	name, err := requireAttribute(account, u.cfg.NameAttribute)
	if err != nil {
		return "", "", err
	}
	mail, err := requireAttribute(account, u.cfg.MailAttribute)
	if err != nil {
		return "", "", err
	}
	return name, types.Email(mail), nil
}

func requireAttribute(account *model.Account, attr string) (string, error) {
	v, ok := account.Get(attr)
	if !ok {
		return "", goerr.Wrap(model.ErrMissingAttribute, "account has no "+attr+" attribute",
			goerr.V("dn", account.DN),
			goerr.V("attribute", attr))
	}
	return v.String(), nil
}
