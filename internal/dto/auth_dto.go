package dto

import (
	"github.com/google/uuid"
)

// RegisterCabinetRequest creates a cabinet, its owner account and its trial
// subscription in one flow.
type RegisterCabinetRequest struct {
	CabinetName string `json:"cabinet_name" validate:"required"`
	Speciality  string `json:"speciality" validate:"required,oneof=physiotherapy dental general cardiology"`
	Phone       string `json:"phone,omitempty"`
	City        string `json:"city,omitempty"`
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

type RegisterCabinetResponse struct {
	CabinetId    uuid.UUID             `json:"cabinet_id"`
	UserId       uuid.UUID             `json:"user_id"`
	Subscription *SubscriptionResponse `json:"subscription"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	UserId    uuid.UUID `json:"user_id"`
	CabinetId uuid.UUID `json:"cabinet_id"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
}

type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN PRACTITIONER ASSISTANT"`
}

type UserResponse struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
