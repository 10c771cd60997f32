package implementation

import (
	"context"
	"errors"

	"medicab-be/internal/entity"
	"medicab-be/internal/mapper"
	"medicab-be/internal/model"
	"medicab-be/internal/repository/contract"
	"medicab-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CabinetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CabinetMapper
}

func NewCabinetRepository(db *gorm.DB) contract.CabinetRepository {
	return &CabinetRepositoryImpl{
		db:     db,
		mapper: mapper.NewCabinetMapper(),
	}
}

func (r *CabinetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CabinetRepositoryImpl) Create(ctx context.Context, cabinet *entity.Cabinet) error {
	m := r.mapper.ToModel(cabinet)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*cabinet = *r.mapper.ToEntity(m)
	return nil
}

func (r *CabinetRepositoryImpl) Update(ctx context.Context, cabinet *entity.Cabinet) error {
	m := r.mapper.ToModel(cabinet)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*cabinet = *r.mapper.ToEntity(m)
	return nil
}

func (r *CabinetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cabinet, error) {
	var m model.Cabinet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CabinetRepositoryImpl) FindByStripeCustomerId(ctx context.Context, customerId string) (*entity.Cabinet, error) {
	var m model.Cabinet
	if err := r.db.WithContext(ctx).Where("stripe_customer_id = ?", customerId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var models []*model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.User, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
