package contract

import (
	"context"

	"medicab-be/internal/entity"
	"medicab-be/internal/repository/specification"
)

type TreatmentRepository interface {
	Create(ctx context.Context, treatment *entity.Treatment) error
	Update(ctx context.Context, treatment *entity.Treatment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Treatment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Treatment, error)
}
