package server

import (
	"crypto/subtle"
	"log"
	"net/http"

	"nadebook/internal/db"
)

const statusDeleted = "deleted"

type reviewRequest struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

// handleReview applies a moderation decision. Approve and reject move a
// pending submission to its terminal status in one atomic update; deleted is
// not a stored status — it purges any staged media and then removes the row.
// The purge runs before the row delete so a crash in between leaves a
// recoverable orphan row rather than a row pointing at missing media.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeAdmin(w, r) {
		return
	}
	var req reviewRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	switch req.Status {
	case db.StatusApproved, db.StatusRejected:
		result := s.db.Model(&db.Submission{}).
			Where("id = ? AND status = ?", req.ID, db.StatusPending).
			Updates(map[string]any{
				"status":      req.Status,
				"reviewed_at": timeNowUTC(),
			})
		if result.Error != nil {
			log.Printf("review update failed submission=%d err=%v", req.ID, result.Error)
			writeError(w, http.StatusInternalServerError, "review failed")
			return
		}
		if result.RowsAffected == 0 {
			writeError(w, http.StatusBadRequest, "submission not found or already reviewed")
			return
		}
		if req.Status == db.StatusRejected && s.cfg.PurgeRejected {
			if err := s.purgeStaging(req.ID); err != nil {
				log.Printf("staging purge failed submission=%d err=%v", req.ID, err)
			}
		}
		log.Printf("submission reviewed id=%d status=%s", req.ID, req.Status)
		writeOK(w, map[string]any{"id": req.ID, "status": req.Status})
	case statusDeleted:
		if err := s.purgeStaging(req.ID); err != nil {
			log.Printf("staging purge failed submission=%d err=%v", req.ID, err)
			writeError(w, http.StatusInternalServerError, "delete failed")
			return
		}
		if err := s.db.Delete(&db.Submission{}, req.ID).Error; err != nil {
			log.Printf("submission delete failed submission=%d err=%v", req.ID, err)
			writeError(w, http.StatusInternalServerError, "delete failed")
			return
		}
		log.Printf("submission deleted id=%d", req.ID)
		writeOK(w, map[string]any{"id": req.ID, "status": statusDeleted})
	default:
		writeError(w, http.StatusBadRequest, "unsupported status")
	}
}

type queuedSubmission struct {
	ID          uint    `json:"id"`
	Status      string  `json:"status"`
	CsnadesURL  string  `json:"csnades_url,omitempty"`
	MapName     string  `json:"map,omitempty"`
	Side        string  `json:"side,omitempty"`
	Data        any     `json:"data,omitempty"`
	SubmittedAt string  `json:"submitted_at"`
	ReviewedAt  *string `json:"reviewed_at,omitempty"`
}

// handleAdminQueue lists submissions for the review panel, pending first,
// newest within each status.
func (s *Server) handleAdminQueue(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeAdmin(w, r) {
		return
	}
	var rows []db.Submission
	err := s.db.
		Order("CASE status WHEN 'pending' THEN 0 ELSE 1 END, submitted_at DESC").
		Find(&rows).Error
	if err != nil {
		log.Printf("queue listing failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	queue := make([]queuedSubmission, 0, len(rows))
	for _, row := range rows {
		item := queuedSubmission{
			ID:          row.ID,
			Status:      row.Status,
			CsnadesURL:  row.CsnadesURL,
			MapName:     row.MapName,
			Side:        row.Side,
			SubmittedAt: row.SubmittedAt.Format(timeFormat),
		}
		if row.ReviewedAt != nil {
			reviewed := row.ReviewedAt.Format(timeFormat)
			item.ReviewedAt = &reviewed
		}
		if len(row.Data) > 0 {
			var payload submissionPayload
			if err := payload.unmarshalFrom(row.Data); err == nil {
				item.Data = payload
			}
		}
		queue = append(queue, item)
	}
	writeOK(w, map[string]any{"submissions": queue})
}

// authorizeAdmin checks the admin bearer token with a constant-time compare.
// An empty configured token disables the admin surface entirely.
func (s *Server) authorizeAdmin(w http.ResponseWriter, r *http.Request) bool {
	if s.cfg.AdminToken == "" {
		writeError(w, http.StatusUnauthorized, "admin access disabled")
		return false
	}
	provided := r.Header.Get("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(s.cfg.AdminToken)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid admin token")
		return false
	}
	return true
}
