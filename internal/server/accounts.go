package server

import (
	"errors"
	"log"
	"net/http"

	"nadebook/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	accountCookieName   = "nb_account"
	accountCookieMaxAge = 365 * 24 * 60 * 60
)

type loginRequest struct {
	Nickname string `json:"nickname"`
}

type toggleBookmarkRequest struct {
	Slug string `json:"slug"`
}

// handleLogin upserts the account derived from the nickname and hands the
// identifier back both in the body and as a long-lived cookie. The cookie is
// a plain bearer token; possession of it is the whole credential.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hash, err := hashNickname(req.Nickname)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account := db.Account{Hash: hash, CreatedAt: timeNowUTC()}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&account).Error; err != nil {
		log.Printf("login upsert failed account=%s err=%v", hash[:8], err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	slugs, err := s.bookmarkSlugs(hash)
	if err != nil {
		log.Printf("bookmark lookup failed account=%s err=%v", hash[:8], err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	setAccountCookie(w, hash)
	log.Printf("login account=%s bookmarks=%d", hash[:8], len(slugs))
	writeOK(w, map[string]any{
		"hash":      hash,
		"bookmarks": slugs,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAccountCookie(w)
	writeOK(w, nil)
}

// handleToggleBookmark flips the (account, slug) pair: present deletes,
// absent inserts. The composite primary key backstops the check-then-act so a
// lost race surfaces as a conflict instead of a duplicate row.
func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	hash, ok := accountFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}
	var req toggleBookmarkRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	slug, err := validateSlug(req.Slug)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var account db.Account
	if err := s.db.Select("hash").First(&account, "hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			clearAccountCookie(w)
			writeError(w, http.StatusUnauthorized, "unknown account")
			return
		}
		log.Printf("account lookup failed account=%s err=%v", hash[:8], err)
		writeError(w, http.StatusInternalServerError, "bookmark update failed")
		return
	}

	var existing db.Bookmark
	lookupErr := s.db.Where("account_hash = ? AND slug = ?", hash, slug).First(&existing).Error
	switch {
	case lookupErr == nil:
		result := s.db.Where("account_hash = ? AND slug = ?", hash, slug).Delete(&db.Bookmark{})
		if result.Error != nil {
			log.Printf("bookmark delete failed account=%s slug=%s err=%v", hash[:8], slug, result.Error)
			writeError(w, http.StatusInternalServerError, "bookmark update failed")
			return
		}
		writeOK(w, map[string]any{"bookmarked": false})
	case errors.Is(lookupErr, gorm.ErrRecordNotFound):
		bookmark := db.Bookmark{AccountHash: hash, Slug: slug, CreatedAt: timeNowUTC()}
		if err := s.db.Create(&bookmark).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				writeError(w, http.StatusConflict, "bookmark changed concurrently, retry")
				return
			}
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				clearAccountCookie(w)
				writeError(w, http.StatusUnauthorized, "unknown account")
				return
			}
			log.Printf("bookmark insert failed account=%s slug=%s err=%v", hash[:8], slug, err)
			writeError(w, http.StatusInternalServerError, "bookmark update failed")
			return
		}
		writeOK(w, map[string]any{"bookmarked": true})
	default:
		log.Printf("bookmark lookup failed account=%s slug=%s err=%v", hash[:8], slug, lookupErr)
		writeError(w, http.StatusInternalServerError, "bookmark update failed")
	}
}

func (s *Server) bookmarkSlugs(hash string) ([]string, error) {
	var slugs []string
	err := s.db.Model(&db.Bookmark{}).
		Where("account_hash = ?", hash).
		Order("created_at").
		Pluck("slug", &slugs).Error
	if err != nil {
		return nil, err
	}
	if slugs == nil {
		slugs = []string{}
	}
	return slugs, nil
}

func accountFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(accountCookieName)
	if err != nil || !isAccountHash(cookie.Value) {
		return "", false
	}
	return cookie.Value, true
}

func setAccountCookie(w http.ResponseWriter, hash string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accountCookieName,
		Value:    hash,
		Path:     "/",
		MaxAge:   accountCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAccountCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accountCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
