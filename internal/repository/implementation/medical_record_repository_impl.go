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

type MedicalRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MedicalRecordMapper
}

func NewMedicalRecordRepository(db *gorm.DB) contract.MedicalRecordRepository {
	return &MedicalRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewMedicalRecordMapper(),
	}
}

func (r *MedicalRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MedicalRecordRepositoryImpl) Create(ctx context.Context, record *entity.MedicalRecord) error {
	m, err := r.mapper.ToModel(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *MedicalRecordRepositoryImpl) Update(ctx context.Context, record *entity.MedicalRecord) error {
	m, err := r.mapper.ToModel(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *MedicalRecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MedicalRecord, error) {
	var m model.MedicalRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MedicalRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MedicalRecord, error) {
	var models []*model.MedicalRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.MedicalRecord, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
