package session

import (
	"context"
	"errors"

	"github.com/papana-farm/metdash/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps dashboard selections between requests of one browser.
type Store interface {
	Get(ctx context.Context, id string) (models.Session, error)
	Set(ctx context.Context, s models.Session) error
}
