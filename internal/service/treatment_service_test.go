package service

import (
	"context"
	"testing"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTreatmentService() (ITreatmentService, *fakeUnitOfWork, uuid.UUID, uuid.UUID) {
	factory, uow := newFakeUowFactory()
	svc := NewTreatmentService(factory)

	cabinetId := uuid.New()
	patient := &entity.Patient{Id: uuid.New(), CabinetId: cabinetId, FirstName: "Marie", LastName: "Durand"}
	uow.patients.patients = append(uow.patients.patients, patient)

	return svc, uow, cabinetId, patient.Id
}

func TestTreatmentCreate(t *testing.T) {
	svc, uow, cabinetId, patientId := newTestTreatmentService()

	res, err := svc.Create(context.Background(), cabinetId, &dto.CreateTreatmentRequest{
		PatientId:       patientId,
		Label:           "Rééducation genou",
		Diagnosis:       "Entorse",
		SessionsPlanned: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.TreatmentStatusOngoing), res.Status)
	assert.Equal(t, 10, res.SessionsPlanned)
	assert.Equal(t, 0, res.SessionsDone)
	require.Len(t, uow.treatments.treatments, 1)
}

func TestTreatmentCreateUnknownPatient(t *testing.T) {
	svc, _, cabinetId, _ := newTestTreatmentService()

	_, err := svc.Create(context.Background(), cabinetId, &dto.CreateTreatmentRequest{
		PatientId:       uuid.New(),
		Label:           "Rééducation genou",
		SessionsPlanned: 10,
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestRecordSessionCompletesAtPlannedCount(t *testing.T) {
	svc, _, cabinetId, patientId := newTestTreatmentService()

	created, err := svc.Create(context.Background(), cabinetId, &dto.CreateTreatmentRequest{
		PatientId:       patientId,
		Label:           "Rééducation genou",
		SessionsPlanned: 2,
	})
	require.NoError(t, err)

	first, err := svc.RecordSession(context.Background(), cabinetId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, first.SessionsDone)
	assert.Equal(t, string(entity.TreatmentStatusOngoing), first.Status)
	assert.Nil(t, first.EndedAt)

	second, err := svc.RecordSession(context.Background(), cabinetId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, second.SessionsDone)
	assert.Equal(t, string(entity.TreatmentStatusCompleted), second.Status)
	assert.NotNil(t, second.EndedAt)

	// A completed treatment accepts no further sessions.
	_, err = svc.RecordSession(context.Background(), cabinetId, created.Id)
	assert.ErrorIs(t, err, ErrTreatmentCompleted)
}

func TestAbortTreatment(t *testing.T) {
	svc, _, cabinetId, patientId := newTestTreatmentService()

	created, err := svc.Create(context.Background(), cabinetId, &dto.CreateTreatmentRequest{
		PatientId:       patientId,
		Label:           "Rééducation genou",
		SessionsPlanned: 10,
	})
	require.NoError(t, err)

	aborted, err := svc.Abort(context.Background(), cabinetId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TreatmentStatusAborted), aborted.Status)
	assert.NotNil(t, aborted.EndedAt)

	_, err = svc.Abort(context.Background(), cabinetId, created.Id)
	assert.ErrorIs(t, err, ErrTreatmentCompleted)
}

func TestTreatmentScopedToCabinet(t *testing.T) {
	svc, _, cabinetId, patientId := newTestTreatmentService()

	created, err := svc.Create(context.Background(), cabinetId, &dto.CreateTreatmentRequest{
		PatientId:       patientId,
		Label:           "Rééducation genou",
		SessionsPlanned: 10,
	})
	require.NoError(t, err)

	_, err = svc.RecordSession(context.Background(), uuid.New(), created.Id)
	assert.ErrorIs(t, err, ErrTreatmentNotFound)
}
