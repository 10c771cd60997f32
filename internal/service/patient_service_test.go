package service

import (
	"context"
	"testing"
	"time"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPatientService(maxPatients int) (IPatientService, *fakeUnitOfWork, uuid.UUID) {
	factory, uow := newFakeUowFactory()
	subSvc := NewSubscriptionService(factory, memory.NewPlanCache(), &fakePublisher{}, nil)
	patientSvc := NewPatientService(factory, subSvc)

	plan := &entity.Plan{
		Id:          uuid.New(),
		DisplayName: "Essentiel",
		Slug:        "essentiel",
		MaxPatients: maxPatients,
		IsActive:    true,
	}
	uow.subscriptions.plans = append(uow.subscriptions.plans, plan)

	cabinetId := uuid.New()
	periodStart := time.Now().AddDate(0, 0, -5)
	periodEnd := time.Now().AddDate(0, 0, 25)
	uow.subscriptions.sub = &entity.Subscription{
		Id:                 uuid.New(),
		CabinetId:          cabinetId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusActive,
		CurrentPeriodStart: &periodStart,
		CurrentPeriodEnd:   &periodEnd,
	}

	return patientSvc, uow, cabinetId
}

func TestPatientCreateWithinLimit(t *testing.T) {
	svc, _, cabinetId := newTestPatientService(3)

	res, err := svc.Create(context.Background(), cabinetId, &dto.CreatePatientRequest{
		FirstName: "Marie",
		LastName:  "Durand",
	})
	require.NoError(t, err)
	assert.Equal(t, "Marie", res.FirstName)
	assert.Equal(t, "Durand", res.LastName)
}

func TestPatientCreateHitsPlanCeiling(t *testing.T) {
	svc, uow, cabinetId := newTestPatientService(3)

	for i := 0; i < 3; i++ {
		uow.patients.patients = append(uow.patients.patients, &entity.Patient{
			Id:        uuid.New(),
			CabinetId: cabinetId,
		})
	}

	_, err := svc.Create(context.Background(), cabinetId, &dto.CreatePatientRequest{
		FirstName: "Paul",
		LastName:  "Martin",
	})
	assert.ErrorIs(t, err, ErrPatientLimitReached)
}

func TestPatientCreateUnlimitedPlan(t *testing.T) {
	svc, uow, cabinetId := newTestPatientService(-1)

	for i := 0; i < 50; i++ {
		uow.patients.patients = append(uow.patients.patients, &entity.Patient{
			Id:        uuid.New(),
			CabinetId: cabinetId,
		})
	}

	// MaxPatients of -1 means the ceiling is never enforced.
	_, err := svc.Create(context.Background(), cabinetId, &dto.CreatePatientRequest{
		FirstName: "Paul",
		LastName:  "Martin",
	})
	assert.NoError(t, err)
}

func TestPatientCreateRequiresActiveSubscription(t *testing.T) {
	svc, uow, cabinetId := newTestPatientService(3)

	// Expire the subscription: period already over.
	periodEnd := time.Now().AddDate(0, 0, -1)
	uow.subscriptions.sub.CurrentPeriodEnd = &periodEnd

	_, err := svc.Create(context.Background(), cabinetId, &dto.CreatePatientRequest{
		FirstName: "Paul",
		LastName:  "Martin",
	})
	assert.ErrorIs(t, err, ErrSubscriptionInactive)
}

func TestPatientCreateWithoutSubscription(t *testing.T) {
	svc, uow, _ := newTestPatientService(3)
	uow.subscriptions.sub = nil

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreatePatientRequest{
		FirstName: "Paul",
		LastName:  "Martin",
	})
	assert.ErrorIs(t, err, ErrSubscriptionInactive)
}

func TestPatientShowScopedToCabinet(t *testing.T) {
	svc, uow, cabinetId := newTestPatientService(3)

	patient := &entity.Patient{Id: uuid.New(), CabinetId: cabinetId, FirstName: "Marie", LastName: "Durand"}
	uow.patients.patients = append(uow.patients.patients, patient)

	res, err := svc.Show(context.Background(), cabinetId, patient.Id)
	require.NoError(t, err)
	assert.Equal(t, patient.Id, res.Id)

	// The same id queried from another cabinet resolves to nothing.
	_, err = svc.Show(context.Background(), uuid.New(), patient.Id)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
