package grafana_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/types"
	"github.com/secmon-lab/grafana-inviter/pkg/service/grafana"
)

const invitesJSON = `[
  {
    "id": 123,
    "orgId": 12,
    "name": "",
    "email": "John.Doe@acme.org",
    "role": "Viewer",
    "invitedByLogin": "admin",
    "invitedByEmail": "admin@acme.org",
    "invitedByName": "admin",
    "code": "abc123",
    "status": "InvitePending",
    "url": "https://grafana.acme.org/invite/abc123",
    "emailSent": false,
    "emailSentOn": "2024-09-27T09:11:04Z",
    "createdOn": "2024-09-27T09:11:04Z"
  }
]`

func TestListInvites(t *testing.T) {
	ctx := context.Background()

	t.Run("Decodes pending invitations", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, http.MethodGet, r.Method)
			gt.Equal(t, "/api/org/invites", r.URL.Path)
			gt.Equal(t, "Bearer glsa_token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(invitesJSON))
		}))
		defer srv.Close()

		client := grafana.New(srv.URL+"/", "glsa_token")
		invites, err := client.ListInvites(ctx)
		gt.NoError(t, err).Required()

		gt.A(t, invites).Length(1)
		gt.Equal(t, int64(123), invites[0].ID)
		gt.Equal(t, types.OrgID(12), invites[0].OrgID)
		gt.Equal(t, types.Email("John.Doe@acme.org"), invites[0].Email)
		gt.Equal(t, "https://grafana.acme.org/invite/abc123", invites[0].URL)
		gt.V(t, invites[0].CreatedOn).NotNil()
	})

	t.Run("Empty list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		invites, err := grafana.New(srv.URL, "t").ListInvites(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, invites).Length(0)
	})

	t.Run("Non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid API key"}`))
		}))
		defer srv.Close()

		_, err := grafana.New(srv.URL, "bad").ListInvites(ctx)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrUnexpectedStatus))
	})

	t.Run("Malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"`))
		}))
		defer srv.Close()

		_, err := grafana.New(srv.URL, "t").ListInvites(ctx)
		gt.Error(t, err)
	})

	t.Run("Thousands of pending invitations are decoded", func(t *testing.T) {
		createdOn := time.Date(2024, 9, 27, 9, 11, 4, 0, time.UTC)
		invites := make([]*model.Invitation, 0, 3000)
		for i := 0; i < 3000; i++ {
			invites = append(invites, &model.Invitation{
				ID:             int64(i + 1),
				OrgID:          12,
				Name:           fmt.Sprintf("Employee Number %04d", i),
				Email:          types.Email(fmt.Sprintf("employee.number.%04d@subsidiary.acme-corporation.example.com", i)),
				Role:           types.RoleViewer,
				InvitedByLogin: "grafana-inviter-service-account",
				InvitedByEmail: "grafana-inviter@acme-corporation.example.com",
				InvitedByName:  "Grafana Inviter Service Account",
				Code:           fmt.Sprintf("f3a9c1d27be84e6a9d0c5b1e7a4f%04d", i),
				Status:         "InvitePending",
				URL:            fmt.Sprintf("https://grafana.acme-corporation.example.com/invite/f3a9c1d27be84e6a9d0c5b1e7a4f%04d", i),
				EmailSentOn:    &createdOn,
				CreatedOn:      &createdOn,
			})
		}
		body, err := json.Marshal(invites)
		gt.NoError(t, err).Required()
		gt.True(t, len(body) > 1<<20)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(body)
		}))
		defer srv.Close()

		got, err := grafana.New(srv.URL, "t").ListInvites(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, got).Length(3000)
		gt.Equal(t, invites[2999].URL, got[2999].URL)
		gt.Equal(t, invites[2999].Email, got[2999].Email)
	})

	t.Run("Timeout is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := grafana.New(srv.URL, "t", grafana.WithTimeout(10*time.Millisecond)).ListInvites(ctx)
		gt.Error(t, err)
	})
}

func TestCreateInvite(t *testing.T) {
	ctx := context.Background()

	req := &model.InviteRequest{
		Name:         "John Doe",
		LoginOrEmail: "john.doe@acme.org",
		Role:         types.RoleViewer,
		SendEmail:    true,
		OrgID:        16,
	}

	t.Run("Sends the invite payload", func(t *testing.T) {
		var received map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, http.MethodPost, r.Method)
			gt.Equal(t, "/api/org/invites", r.URL.Path)
			gt.Equal(t, "application/json", r.Header.Get("Content-Type"))
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			_, _ = w.Write([]byte(`{"message":"User John Doe invited"}`))
		}))
		defer srv.Close()

		resp, err := grafana.New(srv.URL, "t").CreateInvite(ctx, req)
		gt.NoError(t, err).Required()

		gt.True(t, resp.OK())
		gt.Equal(t, "User John Doe invited", resp.Message)

		gt.Equal(t, "John Doe", received["name"].(string))
		gt.Equal(t, "john.doe@acme.org", received["loginOrEmail"].(string))
		gt.Equal(t, "Viewer", received["role"].(string))
		gt.Equal(t, true, received["sendEmail"].(bool))
		gt.Equal(t, float64(16), received["orgId"].(float64))
	})

	testCases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"JSON error message", http.StatusPreconditionFailed, `{"message":"User is already member of this organization"}`, "User is already member of this organization"},
		{"Plain text body", http.StatusBadGateway, "upstream unavailable", "upstream unavailable"},
		{"Empty body", http.StatusForbidden, "", http.StatusText(http.StatusForbidden)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			resp, err := grafana.New(srv.URL, "t").CreateInvite(ctx, req)
			gt.NoError(t, err).Required()
			gt.False(t, resp.OK())
			gt.Equal(t, tc.status, resp.StatusCode)
			gt.Equal(t, tc.message, resp.Message)
		})
	}

	t.Run("Unreachable server is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := grafana.New(url, "t").CreateInvite(ctx, req)
		gt.Error(t, err)
	})
}

func TestClientOptions(t *testing.T) {
	ctx := context.Background()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer slow.Close()

	t.Run("Timeout does not modify a shared HTTP client", func(t *testing.T) {
		shared := &http.Client{Timeout: 5 * time.Second}

		_, err := grafana.New(slow.URL, "t",
			grafana.WithHTTPClient(shared),
			grafana.WithTimeout(10*time.Millisecond),
		).ListInvites(ctx)
		gt.Error(t, err)
		gt.Equal(t, 5*time.Second, shared.Timeout)
	})

	t.Run("Timeout applies regardless of option order", func(t *testing.T) {
		_, err := grafana.New(slow.URL, "t",
			grafana.WithTimeout(10*time.Millisecond),
			grafana.WithHTTPClient(&http.Client{}),
		).ListInvites(ctx)
		gt.Error(t, err)
	})

	t.Run("Nil HTTP client falls back to the default", func(t *testing.T) {
		invites, err := grafana.New(slow.URL, "t", grafana.WithHTTPClient(nil)).ListInvites(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, invites).Length(0)
	})
}
