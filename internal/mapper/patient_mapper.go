package mapper

import (
	"medicab-be/internal/entity"
	"medicab-be/internal/model"
)

type PatientMapper struct{}

func NewPatientMapper() *PatientMapper {
	return &PatientMapper{}
}

func (m *PatientMapper) ToEntity(p *model.Patient) *entity.Patient {
	if p == nil {
		return nil
	}
	return &entity.Patient{
		Id:             p.Id,
		CabinetId:      p.CabinetId,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		BirthDate:      p.BirthDate,
		SocialSecurity: p.SocialSecurity,
		Address:        p.Address,
		City:           p.City,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (m *PatientMapper) ToModel(p *entity.Patient) *model.Patient {
	if p == nil {
		return nil
	}
	return &model.Patient{
		Id:             p.Id,
		CabinetId:      p.CabinetId,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		BirthDate:      p.BirthDate,
		SocialSecurity: p.SocialSecurity,
		Address:        p.Address,
		City:           p.City,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
