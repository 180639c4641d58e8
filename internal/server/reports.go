package server

import (
	"log"
	"net/http"

	"nadebook/internal/db"
)

type frameReportRequest struct {
	Slug      string `json:"slug"`
	FrameType string `json:"frame_type"`
	Direction string `json:"direction"`
}

type lineupReportRequest struct {
	Slug   string `json:"slug"`
	Reason string `json:"reason"`
}

// handleFrameReport records a "this frame is offset" flag. Append-only; the
// caller gets a bare acknowledgement.
func (s *Server) handleFrameReport(w http.ResponseWriter, r *http.Request) {
	var req frameReportRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	slug, err := validateSlug(req.Slug)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !isScreenshotSlot(req.FrameType) {
		writeError(w, http.StatusBadRequest, "frame_type must be position, aim or result")
		return
	}
	if !isFrameDirection(req.Direction) {
		writeError(w, http.StatusBadRequest, "direction must be earlier or later")
		return
	}

	report := db.FrameReport{
		Slug:      slug,
		FrameType: req.FrameType,
		Direction: req.Direction,
		CreatedAt: timeNowUTC(),
	}
	if err := s.db.Create(&report).Error; err != nil {
		log.Printf("frame report insert failed slug=%s err=%v", slug, err)
		writeError(w, http.StatusInternalServerError, "report failed")
		return
	}
	log.Printf("frame report slug=%s frame=%s direction=%s", slug, req.FrameType, req.Direction)
	writeOK(w, nil)
}

// handleLineupReport records a "this lineup is broken" flag.
func (s *Server) handleLineupReport(w http.ResponseWriter, r *http.Request) {
	var req lineupReportRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	slug, err := validateSlug(req.Slug)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !isLineupReportReason(req.Reason) {
		writeError(w, http.StatusBadRequest, "reason must be outdated, doesnt_work, wrong_map or other")
		return
	}

	report := db.LineupReport{
		Slug:      slug,
		Reason:    req.Reason,
		CreatedAt: timeNowUTC(),
	}
	if err := s.db.Create(&report).Error; err != nil {
		log.Printf("lineup report insert failed slug=%s err=%v", slug, err)
		writeError(w, http.StatusInternalServerError, "report failed")
		return
	}
	log.Printf("lineup report slug=%s reason=%s", slug, req.Reason)
	writeOK(w, nil)
}
