package applicationRepo

import (
	"context"
	"sync"
	"time"

	"doctorsmile/models"

	"github.com/google/uuid"
)

// memoryApplicationRepo is a process-local store. It backs the default
// deployment and doubles as the repository test double.
type memoryApplicationRepo struct {
	mu   sync.RWMutex
	apps map[string]models.Application
}

// NewMemoryApplicationRepo returns an in-memory ApplicationRepository.
func NewMemoryApplicationRepo() ApplicationRepository {
	return &memoryApplicationRepo{apps: make(map[string]models.Application)}
}

func (r *memoryApplicationRepo) Create(ctx context.Context, app models.Application) (string, error) {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = app
	return app.ID, nil
}

func (r *memoryApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &app, nil
}

func (r *memoryApplicationRepo) SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return models.ErrNotFound
	}
	app.Status = status
	r.apps[id] = app
	return nil
}
