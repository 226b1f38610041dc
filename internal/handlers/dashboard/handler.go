package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/papana-farm/metdash/internal/models"
	"github.com/papana-farm/metdash/internal/services/session"
)

const (
	SessionCookie = "metdash_session"

	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

type observationFetcher interface {
	Fetch(ctx context.Context, sessionID string, q models.Query) models.FetchResult
}

type sessionStore interface {
	Get(ctx context.Context, id string) (models.Session, error)
	Set(ctx context.Context, s models.Session) error
}

type fetchLister interface {
	List(ctx context.Context, limit int) ([]models.FetchRecord, error)
}

type Handler struct {
	fetcher  observationFetcher
	sessions sessionStore
	fetches  fetchLister
	logger   zerolog.Logger
	now      func() time.Time
}

func NewHandler(
	fetcher observationFetcher,
	sessions sessionStore,
	fetches fetchLister,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		fetcher:  fetcher,
		sessions: sessions,
		fetches:  fetches,
		logger:   logger.With().Str("component", "DashboardHandler").Logger(),
		now:      time.Now,
	}
}

// QueryForm carries the four user selections. It binds from a POST form or a query string.
type QueryForm struct {
	Place    string `form:"place" binding:"required"`
	Variable string `form:"variable" binding:"required"`
	Start    string `form:"start" binding:"required"`
	End      string `form:"end" binding:"required"`
}

// ToQuery resolves the place, variable and both dates. The order of the dates is not checked.
func (f QueryForm) ToQuery() (models.Query, error) {
	loc, err := models.LookupLocation(f.Place)
	if err != nil {
		return models.Query{}, fmt.Errorf("place %q: %w", f.Place, err)
	}
	v, err := models.ParseVariable(f.Variable)
	if err != nil {
		return models.Query{}, fmt.Errorf("variable %q: %w", f.Variable, err)
	}
	start, err := models.ParseDate(f.Start)
	if err != nil {
		return models.Query{}, err
	}
	end, err := models.ParseDate(f.End)
	if err != nil {
		return models.Query{}, err
	}
	return models.NewQuery(loc, v, start, end), nil
}

// sessionID returns the browser's session id, issuing a new cookie when absent or malformed.
func (h *Handler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil {
		if _, perr := uuid.Parse(id); perr == nil {
			return id
		}
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, sessionCookieMaxAge, "/", "", false, true)
	return id
}

// loadSession falls back to defaults when the session is unknown or the store fails.
func (h *Handler) loadSession(ctx context.Context, id string) models.Session {
	s, err := h.sessions.Get(ctx, id)
	if err == nil {
		s.ID = id
		return s
	}
	if !errors.Is(err, session.ErrSessionNotFound) {
		h.logger.Warn().Ctx(ctx).Err(err).Str("session", id).Msg("failed to load session, using defaults")
	}
	return models.DefaultSession(id, h.now())
}

func (h *Handler) saveSession(ctx context.Context, s models.Session) {
	s.UpdatedAt = h.now()
	if err := h.sessions.Set(ctx, s); err != nil {
		h.logger.Warn().Ctx(ctx).Err(err).Str("session", s.ID).Msg("failed to save session")
	}
}
