package controller

import (
	"medicab-be/internal/pkg/serverutils"
	"medicab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	GetCatalog(ctx *fiber.Ctx) error
}

type planController struct {
	service service.IPlanService
}

func NewPlanController(service service.IPlanService) IPlanController {
	return &planController{service: service}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	// Public: the pricing page is shown before login.
	r.Get("/plans", c.GetCatalog)
}

func (c *planController) GetCatalog(ctx *fiber.Ctx) error {
	plans, err := c.service.GetCatalog(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}
