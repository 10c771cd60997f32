package service

import (
	"context"
	"errors"
	"time"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/repository/specification"
	"medicab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrTariffNotFound = errors.New("tariff not found")

type ITariffService interface {
	Create(ctx context.Context, cabinetId uuid.UUID, req *dto.CreateTariffRequest) (*dto.TariffResponse, error)
	List(ctx context.Context, cabinetId uuid.UUID) ([]*dto.TariffResponse, error)
	Update(ctx context.Context, cabinetId, id uuid.UUID, req *dto.UpdateTariffRequest) (*dto.TariffResponse, error)
	Delete(ctx context.Context, cabinetId, id uuid.UUID) error
}

type tariffService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTariffService(uowFactory unitofwork.RepositoryFactory) ITariffService {
	return &tariffService{
		uowFactory: uowFactory,
	}
}

func (s *tariffService) Create(ctx context.Context, cabinetId uuid.UUID, req *dto.CreateTariffRequest) (*dto.TariffResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}

	tariff := &entity.Tariff{
		Id:          uuid.New(),
		CabinetId:   cabinetId,
		Code:        req.Code,
		Label:       req.Label,
		AmountCents: req.AmountCents,
		Currency:    currency,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uow.TariffRepository().Create(ctx, tariff); err != nil {
		return nil, err
	}
	return toTariffResponse(tariff), nil
}

func (s *tariffService) List(ctx context.Context, cabinetId uuid.UUID) ([]*dto.TariffResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tariffs, err := uow.TariffRepository().FindAll(ctx,
		specification.CabinetOwnedBy{CabinetID: cabinetId},
		specification.OrderBy{Field: "code"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TariffResponse, 0, len(tariffs))
	for _, t := range tariffs {
		res = append(res, toTariffResponse(t))
	}
	return res, nil
}

func (s *tariffService) Update(ctx context.Context, cabinetId, id uuid.UUID, req *dto.UpdateTariffRequest) (*dto.TariffResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tariff, err := uow.TariffRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if tariff == nil {
		return nil, ErrTariffNotFound
	}

	if req.Label != nil {
		tariff.Label = *req.Label
	}
	if req.AmountCents != nil {
		tariff.AmountCents = *req.AmountCents
	}
	if req.IsActive != nil {
		tariff.IsActive = *req.IsActive
	}
	tariff.UpdatedAt = time.Now()

	if err := uow.TariffRepository().Update(ctx, tariff); err != nil {
		return nil, err
	}
	return toTariffResponse(tariff), nil
}

func (s *tariffService) Delete(ctx context.Context, cabinetId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tariff, err := uow.TariffRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return err
	}
	if tariff == nil {
		return ErrTariffNotFound
	}
	return uow.TariffRepository().Delete(ctx, id)
}

func toTariffResponse(t *entity.Tariff) *dto.TariffResponse {
	return &dto.TariffResponse{
		Id:          t.Id,
		Code:        t.Code,
		Label:       t.Label,
		AmountCents: t.AmountCents,
		Currency:    t.Currency,
		IsActive:    t.IsActive,
	}
}
