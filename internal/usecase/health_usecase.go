package usecase

import (
	"context"

	"humusgarden-backend/internal/domain"
)

type healthUsecase struct{}

func NewHealthUsecase() domain.HealthUsecase {
	return &healthUsecase{}
}

// Check never consults SMTP state; liveness only
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"status": "ok",
	}
}
