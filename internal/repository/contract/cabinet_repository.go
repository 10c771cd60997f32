package contract

import (
	"context"

	"medicab-be/internal/entity"
	"medicab-be/internal/repository/specification"
)

type CabinetRepository interface {
	Create(ctx context.Context, cabinet *entity.Cabinet) error
	Update(ctx context.Context, cabinet *entity.Cabinet) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cabinet, error)
	FindByStripeCustomerId(ctx context.Context, customerId string) (*entity.Cabinet, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
}
