package controller

import (
	"errors"
	"time"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/pkg/serverutils"
	"medicab-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAppointmentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListByPractitioner(ctx *fiber.Ctx) error
	ListByPatient(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type appointmentController struct {
	service service.IAppointmentService
}

func NewAppointmentController(service service.IAppointmentService) IAppointmentController {
	return &appointmentController{service: service}
}

func (c *appointmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/appointments", serverutils.JwtMiddleware)
	h.Get("/practitioner/:practitionerId", c.ListByPractitioner)
	h.Get("/patient/:patientId", c.ListByPatient)
	h.Get("/:id", c.Show)

	write := serverutils.RequireRole(string(entity.UserRoleAdmin), string(entity.UserRolePractitioner), string(entity.UserRoleAssistant))
	h.Post("/", write, c.Create)
	h.Put("/:id", write, c.Update)
	h.Delete("/:id", write, c.Delete)
}

func (c *appointmentController) Create(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateAppointmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), cabinetId, &req)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Appointment booked", res))
}

func (c *appointmentController) Show(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid appointment id")
	}

	res, err := c.service.Show(ctx.Context(), cabinetId, id)
	if err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment retrieved", res))
}

// ListByPractitioner returns the agenda for one practitioner over a day range.
// Defaults to the coming 7 days when no bounds are given.
func (c *appointmentController) ListByPractitioner(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	practitionerId, err := uuid.Parse(ctx.Params("practitionerId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid practitioner id")
	}

	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)
	if raw := ctx.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid 'from' date")
		}
		from = parsed
	}
	if raw := ctx.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid 'to' date")
		}
		to = parsed
	}

	res, err := c.service.ListByPractitioner(ctx.Context(), cabinetId, practitionerId, from, to)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointments retrieved", res))
}

func (c *appointmentController) ListByPatient(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse("Appointments retrieved", res))
}

func (c *appointmentController) Update(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid appointment id")
	}

	var req dto.UpdateAppointmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), cabinetId, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment updated", res))
}

func (c *appointmentController) Delete(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid appointment id")
	}

	if err := c.service.Delete(ctx.Context(), cabinetId, id); err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Appointment deleted", nil))
}
