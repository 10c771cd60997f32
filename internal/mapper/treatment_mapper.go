package mapper

import (
	"medicab-be/internal/entity"
	"medicab-be/internal/model"
)

type TreatmentMapper struct{}

func NewTreatmentMapper() *TreatmentMapper {
	return &TreatmentMapper{}
}

func (m *TreatmentMapper) ToEntity(t *model.Treatment) *entity.Treatment {
	if t == nil {
		return nil
	}
	return &entity.Treatment{
		Id:              t.Id,
		CabinetId:       t.CabinetId,
		PatientId:       t.PatientId,
		TariffId:        t.TariffId,
		Label:           t.Label,
		Diagnosis:       t.Diagnosis,
		SessionsPlanned: t.SessionsPlanned,
		SessionsDone:    t.SessionsDone,
		Status:          entity.TreatmentStatus(t.Status),
		StartedAt:       t.StartedAt,
		EndedAt:         t.EndedAt,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func (m *TreatmentMapper) ToModel(t *entity.Treatment) *model.Treatment {
	if t == nil {
		return nil
	}
	return &model.Treatment{
		Id:              t.Id,
		CabinetId:       t.CabinetId,
		PatientId:       t.PatientId,
		TariffId:        t.TariffId,
		Label:           t.Label,
		Diagnosis:       t.Diagnosis,
		SessionsPlanned: t.SessionsPlanned,
		SessionsDone:    t.SessionsDone,
		Status:          string(t.Status),
		StartedAt:       t.StartedAt,
		EndedAt:         t.EndedAt,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
