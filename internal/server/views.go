package server

import (
	"log"
	"net/http"

	"nadebook/internal/web"

	"github.com/a-h/templ"
)

// handleIndex renders the lineup index. Display order is the seeded shuffle;
// bookmark state comes from the visitor's account cookie when present.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	lineups, err := s.catalog.Lineups()
	if err != nil {
		log.Printf("catalog load failed err=%v", err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}

	bookmarked := make(map[string]bool)
	loggedIn := false
	if hash, ok := accountFromRequest(r); ok {
		loggedIn = true
		slugs, err := s.bookmarkSlugs(hash)
		if err != nil {
			log.Printf("bookmark lookup failed account=%s err=%v", hash[:8], err)
		}
		for _, slug := range slugs {
			bookmarked[slug] = true
		}
	}

	cards := make([]web.LineupCard, 0, len(lineups))
	for _, lineup := range shuffleLineups(lineups) {
		cards = append(cards, lineupCard(lineup, bookmarked[lineup.Slug]))
	}
	templ.Handler(web.Index(cards, loggedIn)).ServeHTTP(w, r)
}

func (s *Server) handleAdminView(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Admin()).ServeHTTP(w, r)
}

func lineupCard(lineup Lineup, bookmarked bool) web.LineupCard {
	title := lineup.TitleTo + " from " + lineup.TitleFrom
	sideLabel := "CT"
	if lineup.Team == "t" {
		sideLabel = "T"
	}
	captionPosition, captionAim := "Position", "Aim"
	if len(lineup.Captions) > 0 {
		captionPosition = lineup.Captions[0]
	}
	if len(lineup.Captions) > 1 {
		captionAim = lineup.Captions[1]
	}
	return web.LineupCard{
		Slug:            lineup.Slug,
		Map:             lineup.Map,
		Side:            lineup.Team,
		SideLabel:       sideLabel,
		Title:           title,
		Technique:       TechniqueLabel(lineup.Technique),
		Movement:        lineup.Movement,
		Console:         lineup.Console,
		SourceURL:       lineup.SourceURL,
		FrameBase:       "/data/" + lineup.Map + "/" + lineup.Slug,
		CaptionPosition: captionPosition,
		CaptionAim:      captionAim,
		Bookmarked:      bookmarked,
	}
}
