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

type TreatmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TreatmentMapper
}

func NewTreatmentRepository(db *gorm.DB) contract.TreatmentRepository {
	return &TreatmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewTreatmentMapper(),
	}
}

func (r *TreatmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TreatmentRepositoryImpl) Create(ctx context.Context, treatment *entity.Treatment) error {
	m := r.mapper.ToModel(treatment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*treatment = *r.mapper.ToEntity(m)
	return nil
}

func (r *TreatmentRepositoryImpl) Update(ctx context.Context, treatment *entity.Treatment) error {
	m := r.mapper.ToModel(treatment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*treatment = *r.mapper.ToEntity(m)
	return nil
}

func (r *TreatmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Treatment, error) {
	var m model.Treatment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TreatmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Treatment, error) {
	var models []*model.Treatment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Treatment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
