package contract

import (
	"context"

	"medicab-be/internal/entity"
	"medicab-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TariffRepository interface {
	Create(ctx context.Context, tariff *entity.Tariff) error
	Update(ctx context.Context, tariff *entity.Tariff) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tariff, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tariff, error)
}
