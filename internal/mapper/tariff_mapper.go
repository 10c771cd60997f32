package mapper

import (
	"medicab-be/internal/entity"
	"medicab-be/internal/model"
)

type TariffMapper struct{}

func NewTariffMapper() *TariffMapper {
	return &TariffMapper{}
}

func (m *TariffMapper) ToEntity(t *model.Tariff) *entity.Tariff {
	if t == nil {
		return nil
	}
	return &entity.Tariff{
		Id:          t.Id,
		CabinetId:   t.CabinetId,
		Code:        t.Code,
		Label:       t.Label,
		AmountCents: t.AmountCents,
		Currency:    t.Currency,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *TariffMapper) ToModel(t *entity.Tariff) *model.Tariff {
	if t == nil {
		return nil
	}
	return &model.Tariff{
		Id:          t.Id,
		CabinetId:   t.CabinetId,
		Code:        t.Code,
		Label:       t.Label,
		AmountCents: t.AmountCents,
		Currency:    t.Currency,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
