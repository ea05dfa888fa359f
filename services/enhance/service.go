package enhance

import (
	"context"

	"doctorsmile/models"

	"go.uber.org/zap"
)

// Service selects between the remote enhancer and the local heuristic. Remote
// failure is never surfaced to the caller; the local path always produces a
// pair.
type Service struct {
	Remote Enhancer // optional
	Local  Enhancer
	Logger *zap.Logger
}

func NewService(remote Enhancer, logger *zap.Logger) *Service {
	return &Service{
		Remote: remote,
		Local:  &LocalEnhancer{Logger: logger},
		Logger: logger,
	}
}

func (s *Service) Enhance(ctx context.Context, photo []byte, mimeType string, opts Options) (*models.ImagePair, error) {
	if len(photo) == 0 {
		return nil, models.NewValidationError("photo")
	}

	if s.Remote != nil {
		pair, err := s.Remote.Enhance(ctx, photo, mimeType, opts)
		if err == nil {
			return pair, nil
		}
		s.Logger.Warn("remote enhancement failed, using local fallback", zap.Error(err))
	}

	return s.Local.Enhance(ctx, photo, mimeType, opts)
}
