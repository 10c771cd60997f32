package implementation

import (
	"context"
	"errors"

	"medicab-be/internal/entity"
	"medicab-be/internal/mapper"
	"medicab-be/internal/model"
	"medicab-be/internal/repository/contract"
	"medicab-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TariffRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TariffMapper
}

func NewTariffRepository(db *gorm.DB) contract.TariffRepository {
	return &TariffRepositoryImpl{
		db:     db,
		mapper: mapper.NewTariffMapper(),
	}
}

func (r *TariffRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TariffRepositoryImpl) Create(ctx context.Context, tariff *entity.Tariff) error {
	m := r.mapper.ToModel(tariff)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tariff = *r.mapper.ToEntity(m)
	return nil
}

func (r *TariffRepositoryImpl) Update(ctx context.Context, tariff *entity.Tariff) error {
	m := r.mapper.ToModel(tariff)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*tariff = *r.mapper.ToEntity(m)
	return nil
}

func (r *TariffRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tariff{}, id).Error
}

func (r *TariffRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tariff, error) {
	var m model.Tariff
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TariffRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tariff, error) {
	var models []*model.Tariff
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Tariff, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
