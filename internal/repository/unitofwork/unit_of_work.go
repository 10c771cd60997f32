package unitofwork

import (
	"context"

	"medicab-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CabinetRepository() contract.CabinetRepository
	UserRepository() contract.UserRepository
	SubscriptionRepository() contract.SubscriptionRepository
	PatientRepository() contract.PatientRepository
	AppointmentRepository() contract.AppointmentRepository
	TreatmentRepository() contract.TreatmentRepository
	MedicalRecordRepository() contract.MedicalRecordRepository
	TariffRepository() contract.TariffRepository
}
