package applicationRepo

import (
	"context"

	"doctorsmile/models"
)

// ApplicationRepository persists intake applications. The in-memory
// implementation is the default; Mongo is used when DATABASE_URL is set.
type ApplicationRepository interface {
	Create(ctx context.Context, app models.Application) (string, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error
}
