package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rented123/tenant-screener/internal/db"
	"github.com/rented123/tenant-screener/internal/mailer"
	"github.com/rented123/tenant-screener/internal/pipeline"
	"github.com/rented123/tenant-screener/internal/report"
	"github.com/rented123/tenant-screener/internal/types"
)

type fakeStore struct {
	checks  map[uuid.UUID]*db.Check
	reports map[string]*db.Report
	err     error
}

func (f *fakeStore) GetCheck(_ context.Context, id uuid.UUID) (*db.Check, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.checks[id], nil
}

func (f *fakeStore) ListChecks(_ context.Context, _ int) ([]db.Check, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db.Check
	for _, c := range f.checks {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) GetReport(_ context.Context, id string) (*db.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reports[id], nil
}

type fakeInvestigator struct {
	result types.ProviderResult[types.AiFindings]
}

func (f *fakeInvestigator) Investigate(context.Context, types.ProspectInfo) types.ProviderResult[types.AiFindings] {
	return f.result
}

type fakeIdentity struct {
	result types.ProviderResult[types.IdentityMatch]
}

func (f *fakeIdentity) Lookup(context.Context, types.ProspectInfo) types.ProviderResult[types.IdentityMatch] {
	return f.result
}

type fakeNotifier struct {
	sent []mailer.Notification
	err  error
}

func (f *fakeNotifier) Send(n mailer.Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

// newTestServer builds a server over an in-memory store, with both lookup
// providers stubbed as failed. Checks still complete as "not found".
func newTestServer(st *fakeStore) *Server {
	s := &Server{
		store:   st,
		signer:  report.NewLinkSigner([]byte("handler-test-secret")),
		baseURL: "https://screen.example.com",
	}
	s.runOpts = pipeline.RunOptions{
		Investigator: &fakeInvestigator{result: types.Failure[types.AiFindings]("agent offline")},
		Identity:     &fakeIdentity{result: types.Failure[types.IdentityMatch]("no match")},
	}
	return s
}

func testProspect() types.ProspectInfo {
	return types.ProspectInfo{
		FirstName: "Jane",
		LastName:  "Doe",
		City:      "Vancouver",
		State:     "BC",
		DOB:       "1990-04-02",
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestHandleCreateCheck(t *testing.T) {
	s := newTestServer(&fakeStore{})

	body, err := json.Marshal(CheckRequest{Prospect: testProspect()})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/checks", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.handleCreateCheck(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp CheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^BCR-[0-9A-Z]{6}$`, resp.ReportID)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.False(t, resp.Found)
	assert.Equal(t, 1, resp.Risk.Score)
	assert.Equal(t, types.RiskLow, resp.Risk.Level)
	assert.Equal(t, "agent offline", resp.AiError)
	assert.Equal(t, "no match", resp.IdentityErr)
	// no database in play, so no check row was created
	assert.Empty(t, resp.CheckID)
	assert.Empty(t, resp.DownloadURL)
}

func TestHandleCreateCheckBadRequest(t *testing.T) {
	s := newTestServer(&fakeStore{})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/checks", strings.NewReader("not json"))
		w := httptest.NewRecorder()
		s.handleCreateCheck(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "Invalid request body")
	})

	t.Run("invalid prospect", func(t *testing.T) {
		prospect := testProspect()
		prospect.LastName = ""
		body, err := json.Marshal(CheckRequest{Prospect: prospect})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/checks", bytes.NewReader(body))
		w := httptest.NewRecorder()
		s.handleCreateCheck(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "Invalid prospect")
	})

	t.Run("malformed date of birth", func(t *testing.T) {
		prospect := testProspect()
		prospect.DOB = "02/04/1990"
		body, err := json.Marshal(CheckRequest{Prospect: prospect})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/checks", bytes.NewReader(body))
		w := httptest.NewRecorder()
		s.handleCreateCheck(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "Invalid prospect")
	})
}

func TestHandleGetCheck(t *testing.T) {
	checkID := uuid.New()
	st := &fakeStore{checks: map[uuid.UUID]*db.Check{
		checkID: {
			ID:        checkID,
			ReportID:  "BCR-ABC123",
			FullName:  "Jane Doe",
			Status:    db.StatusUploaded,
			RiskLevel: "low",
		},
	}}
	s := newTestServer(st)

	get := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/checks/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		s.handleGetCheck(w, req)
		return w
	}

	t.Run("invalid id", func(t *testing.T) {
		w := get("not-a-uuid")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "Invalid check ID")
	})

	t.Run("unknown id", func(t *testing.T) {
		w := get(uuid.NewString())
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decodeError(t, w), "Check not found")
	})

	t.Run("found", func(t *testing.T) {
		w := get(checkID.String())
		require.Equal(t, http.StatusOK, w.Code)

		var check db.Check
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
		assert.Equal(t, "BCR-ABC123", check.ReportID)
		assert.Equal(t, db.StatusUploaded, check.Status)
	})
}

func TestHandleListChecks(t *testing.T) {
	t.Run("empty list is an array, not null", func(t *testing.T) {
		s := newTestServer(&fakeStore{})

		req := httptest.NewRequest(http.MethodGet, "/checks", nil)
		w := httptest.NewRecorder()
		s.handleListChecks(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"checks":[]`)
	})

	t.Run("returns stored checks", func(t *testing.T) {
		checkID := uuid.New()
		s := newTestServer(&fakeStore{checks: map[uuid.UUID]*db.Check{
			checkID: {ID: checkID, ReportID: "BCR-ABC123", FullName: "Jane Doe"},
		}})

		req := httptest.NewRequest(http.MethodGet, "/checks", nil)
		w := httptest.NewRecorder()
		s.handleListChecks(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string][]db.Check
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp["checks"], 1)
		assert.Equal(t, "BCR-ABC123", resp["checks"][0].ReportID)
	})
}

func TestHandleGetReport(t *testing.T) {
	const reportID = "BCR-XYZ789"
	checkID := uuid.New()
	pdf := []byte("%PDF-1.4 stub document")
	st := &fakeStore{
		reports: map[string]*db.Report{
			reportID: {ReportID: reportID, CheckID: checkID, FullName: "Jane Doe", PDF: pdf},
		},
		checks: map[uuid.UUID]*db.Check{
			checkID: {ID: checkID, ReportID: reportID, RiskLevel: "low"},
		},
	}
	s := newTestServer(st)

	get := func(id, token string) *httptest.ResponseRecorder {
		target := "/reports/" + id
		if token != "" {
			target += "?token=" + token
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		s.handleGetReport(w, req)
		return w
	}

	t.Run("missing token", func(t *testing.T) {
		w := get(reportID, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, decodeError(t, w), "Missing token")
	})

	t.Run("garbage token", func(t *testing.T) {
		w := get(reportID, "not-a-token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, decodeError(t, w), "Invalid or expired token")
	})

	t.Run("token issued for another report", func(t *testing.T) {
		token, err := s.signer.Issue("BCR-OTHER1", time.Now())
		require.NoError(t, err)

		w := get(reportID, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, decodeError(t, w), "Invalid or expired token")
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := s.signer.Issue(reportID, time.Now().Add(-report.LinkTTL-time.Hour))
		require.NoError(t, err)

		w := get(reportID, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown report with valid token", func(t *testing.T) {
		token, err := s.signer.Issue("BCR-MISS00", time.Now())
		require.NoError(t, err)

		w := get("BCR-MISS00", token)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decodeError(t, w), "Report not found")
	})

	t.Run("serves the pdf", func(t *testing.T) {
		token, err := s.signer.Issue(reportID, time.Now())
		require.NoError(t, err)

		w := get(reportID, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), reportID+".pdf")
		assert.Equal(t, pdf, w.Body.Bytes())
	})
}

func TestHandleEmailReport(t *testing.T) {
	const reportID = "BCR-XYZ789"
	checkID := uuid.New()
	newStore := func() *fakeStore {
		return &fakeStore{
			reports: map[string]*db.Report{
				reportID: {ReportID: reportID, CheckID: checkID, FullName: "Jane Doe"},
			},
			checks: map[uuid.UUID]*db.Check{
				checkID: {ID: checkID, ReportID: reportID, RiskLevel: "low"},
			},
		}
	}

	post := func(s *Server, id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/reports/"+id+"/email", strings.NewReader(body))
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		s.handleEmailReport(w, req)
		return w
	}

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(newStore())
		s.notifier = &fakeNotifier{}

		w := post(s, reportID, "not json")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "Invalid request body")
	})

	t.Run("no recipients", func(t *testing.T) {
		s := newTestServer(newStore())
		s.notifier = &fakeNotifier{}

		w := post(s, reportID, `{"recipients":[]}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "recipients is required")
	})

	t.Run("email not configured", func(t *testing.T) {
		s := newTestServer(newStore())

		w := post(s, reportID, `{"recipients":["leasing@rented123.com"]}`)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("unknown report", func(t *testing.T) {
		s := newTestServer(newStore())
		s.notifier = &fakeNotifier{}

		w := post(s, "BCR-MISS00", `{"recipients":["leasing@rented123.com"]}`)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decodeError(t, w), "Report not found")
	})

	t.Run("sends a fresh link", func(t *testing.T) {
		s := newTestServer(newStore())
		notifier := &fakeNotifier{}
		s.notifier = notifier

		w := post(s, reportID, `{"recipients":["leasing@rented123.com","jane@example.com"]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["sent"])
		assert.Equal(t, float64(report.LinkTTL.Seconds()), resp["expires_in"])

		require.Len(t, notifier.sent, 1)
		n := notifier.sent[0]
		assert.Equal(t, []string{"leasing@rented123.com", "jane@example.com"}, n.Recipients)
		assert.Equal(t, "Jane Doe", n.FullName)
		assert.Equal(t, "low", n.RiskLevel)

		prefix := "https://screen.example.com/reports/" + reportID + "?token="
		require.True(t, strings.HasPrefix(n.DownloadURL, prefix), n.DownloadURL)
		token := strings.TrimPrefix(n.DownloadURL, prefix)
		assert.NoError(t, s.signer.Verify(token, reportID))
	})

	t.Run("notifier failure", func(t *testing.T) {
		s := newTestServer(newStore())
		s.notifier = &fakeNotifier{err: errors.New("smtp down")}

		w := post(s, reportID, `{"recipients":["leasing@rented123.com"]}`)
		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, decodeError(t, w), "Email delivery failed")
	})
}
