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

type IPatientController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type patientController struct {
	service service.IPatientService
}

func NewPatientController(service service.IPatientService) IPatientController {
	return &patientController{service: service}
}

func (c *patientController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/patients", serverutils.JwtMiddleware)
	h.Get("/", c.List)
	h.Get("/:id", c.Show)

	write := serverutils.RequireRole(string(entity.UserRoleAdmin), string(entity.UserRolePractitioner), string(entity.UserRoleAssistant))
	h.Post("/", write, c.Create)
	h.Put("/:id", write, c.Update)
	h.Delete("/:id", serverutils.RequireRole(string(entity.UserRoleAdmin)), c.Delete)
}

func (c *patientController) Create(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreatePatientRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), cabinetId, &req)
	if err != nil {
		// The entitlement ceiling surfaces as 402 so the frontend can open
		// the upgrade dialog.
		switch {
		case errors.Is(err, service.ErrPatientLimitReached), errors.Is(err, service.ErrSubscriptionInactive):
			return ctx.Status(fiber.StatusPaymentRequired).JSON(serverutils.ErrorResponse(402, err.Error()))
		default:
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Patient created", res))
}

func (c *patientController) Show(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}

	res, err := c.service.Show(ctx.Context(), cabinetId, id)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Patient retrieved", res))
}

func (c *patientController) List(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), cabinetId,
		ctx.Query("search"),
		ctx.QueryInt("limit", 25),
		ctx.QueryInt("offset", 0),
	)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Patients retrieved", res))
}

func (c *patientController) Update(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}

	var req dto.UpdatePatientRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), cabinetId, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Patient updated", res))
}

func (c *patientController) Delete(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid patient id")
	}

	if err := c.service.Delete(ctx.Context(), cabinetId, id); err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Patient deleted", nil))
}
