package session

import (
	"context"
	"delegasi-pay/internal/common/models"
)

// IRepository persists flow sessions. Load never returns a partially written
// session: a missing or expired id yields a fresh one.
type IRepository interface {
	Load(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}
