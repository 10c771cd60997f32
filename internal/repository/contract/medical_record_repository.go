package contract

import (
	"context"

	"medicab-be/internal/entity"
	"medicab-be/internal/repository/specification"
)

// MedicalRecordRepository has no Delete on purpose: patient files are
// append-mostly and never hard-deleted by services.
type MedicalRecordRepository interface {
	Create(ctx context.Context, record *entity.MedicalRecord) error
	Update(ctx context.Context, record *entity.MedicalRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MedicalRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MedicalRecord, error)
}
