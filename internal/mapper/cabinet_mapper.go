package mapper

import (
	"medicab-be/internal/entity"
	"medicab-be/internal/model"
)

type CabinetMapper struct{}

func NewCabinetMapper() *CabinetMapper {
	return &CabinetMapper{}
}

func (m *CabinetMapper) ToEntity(c *model.Cabinet) *entity.Cabinet {
	if c == nil {
		return nil
	}
	return &entity.Cabinet{
		Id:               c.Id,
		Name:             c.Name,
		Speciality:       entity.Speciality(c.Speciality),
		Phone:            c.Phone,
		Address:          c.Address,
		City:             c.City,
		StripeCustomerId: c.StripeCustomerId,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (m *CabinetMapper) ToModel(c *entity.Cabinet) *model.Cabinet {
	if c == nil {
		return nil
	}
	return &model.Cabinet{
		Id:               c.Id,
		Name:             c.Name,
		Speciality:       string(c.Speciality),
		Phone:            c.Phone,
		Address:          c.Address,
		City:             c.City,
		StripeCustomerId: c.StripeCustomerId,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		CabinetId:    u.CabinetId,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         entity.UserRole(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:           u.Id,
		CabinetId:    u.CabinetId,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
