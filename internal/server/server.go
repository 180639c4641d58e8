package server

import (
	"net/http"

	"nadebook/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	db      *gorm.DB
	cfg     config.Config
	catalog *Catalog
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		db:      conn,
		cfg:     cfg,
		catalog: NewCatalog(cfg.DataDir),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /admin", s.handleAdminView)
	mux.HandleFunc("GET /api/lineups", s.handleLineups)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("POST /api/bookmarks/toggle", s.handleToggleBookmark)
	mux.HandleFunc("POST /api/submissions", s.handleSubmit)
	mux.HandleFunc("POST /api/reports/frame", s.handleFrameReport)
	mux.HandleFunc("POST /api/reports/lineup", s.handleLineupReport)
	mux.HandleFunc("GET /api/admin/submissions", s.handleAdminQueue)
	mux.HandleFunc("POST /api/admin/review", s.handleReview)
	mux.HandleFunc("POST /api/admin/cache/clear", s.handleCacheClear)
	mux.Handle("GET /data/", http.StripPrefix("/data/", http.FileServer(http.Dir(s.cfg.DataDir))))
	return mux
}
