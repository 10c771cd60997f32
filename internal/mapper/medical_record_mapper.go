package mapper

import (
	"encoding/json"

	"medicab-be/internal/entity"
	"medicab-be/internal/model"

	"gorm.io/datatypes"
)

type MedicalRecordMapper struct{}

func NewMedicalRecordMapper() *MedicalRecordMapper {
	return &MedicalRecordMapper{}
}

func (m *MedicalRecordMapper) ToEntity(r *model.MedicalRecord) *entity.MedicalRecord {
	if r == nil {
		return nil
	}
	var payload map[string]interface{}
	if len(r.Payload) > 0 {
		// Malformed historical payloads degrade to nil rather than failing the read.
		_ = json.Unmarshal(r.Payload, &payload)
	}
	return &entity.MedicalRecord{
		Id:             r.Id,
		CabinetId:      r.CabinetId,
		PatientId:      r.PatientId,
		PractitionerId: r.PractitionerId,
		Type:           entity.MedicalRecordType(r.Type),
		Title:          r.Title,
		Payload:        payload,
		Note:           r.Note,
		RecordedAt:     r.RecordedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (m *MedicalRecordMapper) ToModel(r *entity.MedicalRecord) (*model.MedicalRecord, error) {
	if r == nil {
		return nil, nil
	}
	var payload datatypes.JSON
	if r.Payload != nil {
		raw, err := json.Marshal(r.Payload)
		if err != nil {
			return nil, err
		}
		payload = datatypes.JSON(raw)
	}
	return &model.MedicalRecord{
		Id:             r.Id,
		CabinetId:      r.CabinetId,
		PatientId:      r.PatientId,
		PractitionerId: r.PractitionerId,
		Type:           string(r.Type),
		Title:          r.Title,
		Payload:        payload,
		Note:           r.Note,
		RecordedAt:     r.RecordedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}
