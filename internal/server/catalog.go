package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// Lineup is one record of the scraped dataset (nades.json).
type Lineup struct {
	Slug      string   `json:"slug"`
	Map       string   `json:"map"`
	Team      string   `json:"team"`
	Type      string   `json:"type"`
	TitleFrom string   `json:"titleFrom"`
	TitleTo   string   `json:"titleTo"`
	Technique string   `json:"technique"`
	Movement  string   `json:"movement"`
	Console   string   `json:"console"`
	AssetID   string   `json:"asset_id"`
	Captions  []string `json:"captions"`
	VideoURL  string   `json:"video_url"`
	LineupURL string   `json:"lineup_url"`
	SourceURL string   `json:"source_url"`
}

const catalogCacheKey = "lineups"

// Catalog serves the scraped lineup dataset from a process-wide cache with an
// explicit lifecycle: loaded lazily on first access, invalidated only by
// Clear (or a restart, which is how the scraping job publishes new data).
type Catalog struct {
	dataDir string
	cache   *gocache.Cache
	loadMu  sync.Mutex
}

func NewCatalog(dataDir string) *Catalog {
	return &Catalog{
		dataDir: dataDir,
		cache:   gocache.New(gocache.NoExpiration, 0),
	}
}

func (c *Catalog) Lineups() ([]Lineup, error) {
	if cached, ok := c.cache.Get(catalogCacheKey); ok {
		return cached.([]Lineup), nil
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if cached, ok := c.cache.Get(catalogCacheKey); ok {
		return cached.([]Lineup), nil
	}

	lineups, err := loadLineups(filepath.Join(c.dataDir, "nades.json"))
	if err != nil {
		return nil, err
	}
	c.cache.Set(catalogCacheKey, lineups, gocache.NoExpiration)
	return lineups, nil
}

func (c *Catalog) Clear() {
	c.cache.Delete(catalogCacheKey)
}

// loadLineups reads and sorts the dataset: active-duty map order first, then
// destination, then origin. A missing file is an empty catalog, not an error,
// so the site comes up before the first scrape.
func loadLineups(path string) ([]Lineup, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Lineup{}, nil
		}
		return nil, err
	}
	var lineups []Lineup
	if err := json.Unmarshal(raw, &lineups); err != nil {
		return nil, err
	}
	sort.SliceStable(lineups, func(i, j int) bool {
		left, right := mapOrder(lineups[i].Map), mapOrder(lineups[j].Map)
		if left != right {
			return left < right
		}
		if lineups[i].TitleTo != lineups[j].TitleTo {
			return lineups[i].TitleTo < lineups[j].TitleTo
		}
		return lineups[i].TitleFrom < lineups[j].TitleFrom
	})
	return lineups, nil
}

func mapOrder(name string) int {
	for i, candidate := range activeDutyMaps {
		if candidate == name {
			return i
		}
	}
	return len(activeDutyMaps)
}

// handleLineups lists the catalog, optionally filtered by map and side.
func (s *Server) handleLineups(w http.ResponseWriter, r *http.Request) {
	lineups, err := s.catalog.Lineups()
	if err != nil {
		log.Printf("catalog load failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}

	mapFilter := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("map")))
	sideFilter := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("side")))
	filtered := make([]Lineup, 0, len(lineups))
	for _, lineup := range lineups {
		if mapFilter != "" && lineup.Map != mapFilter {
			continue
		}
		if sideFilter != "" && lineup.Team != sideFilter {
			continue
		}
		filtered = append(filtered, lineup)
	}
	writeOK(w, map[string]any{
		"lineups": filtered,
		"total":   len(filtered),
	})
}

// handleCacheClear drops the cached dataset so the next request re-reads
// nades.json. The scraping job calls this after publishing new data.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeAdmin(w, r) {
		return
	}
	s.catalog.Clear()
	log.Printf("catalog cache cleared")
	writeOK(w, nil)
}
