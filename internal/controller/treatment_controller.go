package controller

import (
	"errors"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/pkg/serverutils"
	"medicab-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITreatmentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListByPatient(ctx *fiber.Ctx) error
	RecordSession(ctx *fiber.Ctx) error
	Abort(ctx *fiber.Ctx) error
}

type treatmentController struct {
	service service.ITreatmentService
}

func NewTreatmentController(service service.ITreatmentService) ITreatmentController {
	return &treatmentController{service: service}
}

func (c *treatmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/treatments", serverutils.JwtMiddleware)
	h.Get("/patient/:patientId", c.ListByPatient)
	h.Get("/:id", c.Show)

	care := serverutils.RequireRole(string(entity.UserRoleAdmin), string(entity.UserRolePractitioner))
	h.Post("/", care, c.Create)
	h.Post("/:id/sessions", care, c.RecordSession)
	h.Post("/:id/abort", care, c.Abort)
}

func (c *treatmentController) Create(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateTreatmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), cabinetId, &req)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) || errors.Is(err, service.ErrTariffNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Treatment created", res))
}

func (c *treatmentController) Show(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid treatment id")
	}

	res, err := c.service.Show(ctx.Context(), cabinetId, id)
	if err != nil {
		if errors.Is(err, service.ErrTreatmentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Treatment retrieved", res))
}

func (c *treatmentController) ListByPatient(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	patientId, err := uuid.Parse(ctx.Params("patientId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}

	res, err := c.service.ListByPatient(ctx.Context(), cabinetId, patientId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Treatments retrieved", res))
}

func (c *treatmentController) RecordSession(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid treatment id")
	}

	res, err := c.service.RecordSession(ctx.Context(), cabinetId, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTreatmentNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrTreatmentCompleted):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Session recorded", res))
}

func (c *treatmentController) Abort(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid treatment id")
	}

	res, err := c.service.Abort(ctx.Context(), cabinetId, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTreatmentNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrTreatmentCompleted):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Treatment aborted", res))
}
