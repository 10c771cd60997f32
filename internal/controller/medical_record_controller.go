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

type IMedicalRecordController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListByPatient(ctx *fiber.Ctx) error
	AppendNote(ctx *fiber.Ctx) error
}

type medicalRecordController struct {
	service service.IMedicalRecordService
}

func NewMedicalRecordController(service service.IMedicalRecordService) IMedicalRecordController {
	return &medicalRecordController{service: service}
}

func (c *medicalRecordController) RegisterRoutes(r fiber.Router) {
	// Only caregivers touch the medical file; assistants have no access.
	care := serverutils.RequireRole(string(entity.UserRoleAdmin), string(entity.UserRolePractitioner))
	h := r.Group("/medical-records", serverutils.JwtMiddleware, care)
	h.Get("/patient/:patientId", c.ListByPatient)
	h.Get("/:id", c.Show)
	h.Post("/", c.Create)
	h.Post("/:id/notes", c.AppendNote)
}

func (c *medicalRecordController) Create(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}
	practitionerId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateMedicalRecordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), cabinetId, practitionerId, &req)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Record created", res))
}

func (c *medicalRecordController) Show(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid record id")
	}

	res, err := c.service.Show(ctx.Context(), cabinetId, id)
	if err != nil {
		if errors.Is(err, service.ErrMedicalRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Record retrieved", res))
}

func (c *medicalRecordController) ListByPatient(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse("Records retrieved", res))
}

func (c *medicalRecordController) AppendNote(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid record id")
	}

	var req dto.AppendNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.AppendNote(ctx.Context(), cabinetId, id, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrMedicalRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Note appended", res))
}
