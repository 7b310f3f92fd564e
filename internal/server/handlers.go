package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rented123/tenant-screener/internal/db"
	"github.com/rented123/tenant-screener/internal/mailer"
	"github.com/rented123/tenant-screener/internal/pipeline"
	"github.com/rented123/tenant-screener/internal/report"
	"github.com/rented123/tenant-screener/internal/types"
)

// CheckRequest represents the request body for POST /checks
type CheckRequest struct {
	Prospect   types.ProspectInfo `json:"prospect"`
	Recipients []string           `json:"recipients,omitempty"`
}

// CheckResponse represents the response for POST /checks
type CheckResponse struct {
	CheckID     string               `json:"check_id,omitempty"`
	ReportID    string               `json:"report_id"`
	FullName    string               `json:"full_name"`
	Found       bool                 `json:"found"`
	Risk        types.RiskAssessment `json:"risk"`
	Summary     string               `json:"summary,omitempty"`
	DownloadURL string               `json:"download_url,omitempty"`
	AiError     string               `json:"ai_error,omitempty"`
	IdentityErr string               `json:"identity_error,omitempty"`
}

// handleCreateCheck runs a screening check end to end and returns the
// outcome. The call is synchronous; the rate limiter keeps the expensive
// path from being hammered.
func (s *Server) handleCreateCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Prospect.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid prospect: "+err.Error())
		return
	}

	opts := s.runOpts
	opts.Recipients = req.Recipients

	result, err := pipeline.Run(r.Context(), req.Prospect, opts)
	if err != nil {
		log.Printf("Check failed for %s: %v", req.Prospect.FullName(), err)
		s.errorResponse(w, http.StatusInternalServerError, "Check failed: "+err.Error())
		return
	}

	resp := CheckResponse{
		ReportID:    result.ReportID,
		FullName:    result.FullName,
		Found:       result.Found,
		Risk:        result.Risk,
		Summary:     result.Person.ShortSummary,
		DownloadURL: result.DownloadURL,
		AiError:     result.AiError,
		IdentityErr: result.IdentityErr,
	}
	if result.CheckID != uuid.Nil {
		resp.CheckID = result.CheckID.String()
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGetCheck returns the stored status of one check
func (s *Server) handleGetCheck(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid check ID")
		return
	}

	check, err := s.store.GetCheck(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if check == nil {
		s.errorResponse(w, http.StatusNotFound, "Check not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, check)
}

// handleListChecks returns recent checks
func (s *Server) handleListChecks(w http.ResponseWriter, r *http.Request) {
	checks, err := s.store.ListChecks(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if checks == nil {
		checks = []db.Check{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"checks": checks})
}

// handleGetReport serves a stored report PDF. Access requires the signed
// token from the notification email.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("id")
	token := r.URL.Query().Get("token")
	if token == "" {
		s.errorResponse(w, http.StatusUnauthorized, "Missing token")
		return
	}
	if err := s.signer.Verify(token, reportID); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	stored, err := s.store.GetReport(r.Context(), reportID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "Report not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportID+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(stored.PDF); err != nil {
		log.Printf("Error writing report PDF: %v", err)
	}
}

// EmailRequest represents the request body for POST /reports/{id}/email
type EmailRequest struct {
	Recipients []string `json:"recipients"`
}

// handleEmailReport re-sends the notification email for an existing report
// with a freshly signed download link.
func (s *Server) handleEmailReport(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("id")

	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Recipients) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "recipients is required")
		return
	}
	if s.notifier == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Email delivery is not configured")
		return
	}

	stored, err := s.store.GetReport(r.Context(), reportID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "Report not found")
		return
	}

	check, err := s.store.GetCheck(r.Context(), stored.CheckID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	riskLevel := ""
	if check != nil {
		riskLevel = check.RiskLevel
	}

	token, err := s.signer.Issue(reportID, time.Now())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	err = s.notifier.Send(mailer.Notification{
		Recipients:  req.Recipients,
		FullName:    stored.FullName,
		ReportID:    reportID,
		RiskLevel:   riskLevel,
		DownloadURL: fmt.Sprintf("%s/reports/%s?token=%s", s.baseURL, reportID, token),
	})
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Email delivery failed: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sent":       true,
		"recipients": req.Recipients,
		"expires_in": int(report.LinkTTL.Seconds()),
	})
}
