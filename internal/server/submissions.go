package server

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"nadebook/internal/db"

	"gorm.io/datatypes"
)

// maxSubmissionBytes bounds the whole multipart request: three screenshots
// at the per-item cap plus headroom for the text fields.
const maxSubmissionBytes = 3*maxScreenshotBytes + 1<<20

// submissionPayload is the validated optional metadata stored in the
// submission row's data column.
type submissionPayload struct {
	LineupName     string `json:"lineup_name,omitempty"`
	StandDesc      string `json:"stand_desc,omitempty"`
	AimDesc        string `json:"aim_desc,omitempty"`
	ThrowType      string `json:"throw_type,omitempty"`
	Side           string `json:"side,omitempty"`
	HasScreenshots bool   `json:"has_screenshots"`
}

// handleSubmit accepts a candidate lineup: either a csnades.gg link or a full
// screenshot triple plus descriptive metadata. Validation runs front to back
// and nothing is written until every check passes; the row insert happens
// before any staged file so the staging directory is always keyed by a real
// row id.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	sourceURL := strings.TrimSpace(r.FormValue("csnades_url"))
	screenshots := collectScreenshots(r)

	if sourceURL == "" && len(screenshots) == 0 {
		writeError(w, http.StatusBadRequest, "provide csnades_url or all three screenshots")
		return
	}

	if sourceURL != "" {
		validated, err := validateSourceURL(sourceURL)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		sourceURL = validated
	}

	payload := submissionPayload{HasScreenshots: len(screenshots) > 0}
	mapName := strings.ToLower(strings.TrimSpace(r.FormValue("map")))

	if len(screenshots) > 0 {
		if mapName == "" {
			writeError(w, http.StatusBadRequest, "map is required for screenshot submissions")
			return
		}
		if !isSupportedMap(mapName) {
			writeError(w, http.StatusBadRequest, "unsupported map")
			return
		}
		lineupName, err := validateText("lineup_name", r.FormValue("lineup_name"), maxLineupNameLength)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		standDesc, err := validateText("stand_desc", r.FormValue("stand_desc"), maxDescLength)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		aimDesc, err := validateText("aim_desc", r.FormValue("aim_desc"), maxDescLength)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		throwType := strings.TrimSpace(r.FormValue("throw_type"))
		if !isThrowTechnique(throwType) {
			writeError(w, http.StatusBadRequest, "unsupported throw_type")
			return
		}
		payload.LineupName = lineupName
		payload.StandDesc = standDesc
		payload.AimDesc = aimDesc
		payload.ThrowType = throwType
	}

	side := strings.ToLower(strings.TrimSpace(r.FormValue("side")))
	if side != "" && !isTeamSide(side) {
		writeError(w, http.StatusBadRequest, "side must be t or ct")
		return
	}
	payload.Side = side

	if len(screenshots) > 0 {
		for _, slot := range screenshotSlots {
			header, ok := screenshots[slot]
			if !ok {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("%s screenshot is required", slot))
				return
			}
			if header.Size == 0 {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("%s screenshot is empty", slot))
				return
			}
			if header.Size > maxScreenshotBytes {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("%s screenshot exceeds 10 MiB", slot))
				return
			}
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "submission failed")
		return
	}
	submission := db.Submission{
		Status:      db.StatusPending,
		CsnadesURL:  sourceURL,
		MapName:     mapName,
		Side:        side,
		Data:        datatypes.JSON(data),
		SubmittedAt: timeNowUTC(),
	}
	if err := s.db.Create(&submission).Error; err != nil {
		log.Printf("submission insert failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "submission failed")
		return
	}

	if len(screenshots) > 0 {
		if err := s.writeStagedScreenshots(submission.ID, screenshots); err != nil {
			// The pending row stays; an operator reconciles orphans.
			log.Printf("staging write failed submission=%d err=%v", submission.ID, err)
			writeError(w, http.StatusInternalServerError, "screenshot upload failed")
			return
		}
	}

	log.Printf("submission created id=%d screenshots=%t url=%t", submission.ID, len(screenshots) > 0, sourceURL != "")
	writeOK(w, map[string]any{"id": submission.ID})
}

// collectScreenshots returns the uploaded file headers keyed by slot name.
// Only the three fixed slots are considered; any other file field is ignored.
func collectScreenshots(r *http.Request) map[string]*multipart.FileHeader {
	screenshots := make(map[string]*multipart.FileHeader)
	if r.MultipartForm == nil {
		return screenshots
	}
	for _, slot := range screenshotSlots {
		headers := r.MultipartForm.File[slot]
		if len(headers) > 0 {
			screenshots[slot] = headers[0]
		}
	}
	return screenshots
}

func (p *submissionPayload) unmarshalFrom(data []byte) error {
	return json.Unmarshal(data, p)
}
