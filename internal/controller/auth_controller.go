package controller

import (
	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/pkg/serverutils"
	"medicab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	CreateUser(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)

	// Staff management is admin-only.
	users := r.Group("/users", serverutils.JwtMiddleware, serverutils.RequireRole(string(entity.UserRoleAdmin)))
	users.Post("/", c.CreateUser)
	users.Get("/", c.ListUsers)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterCabinetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Cabinet registered", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Logged in", res))
}

func (c *authController) CreateUser(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateUser(ctx.Context(), cabinetId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User created", res))
}

func (c *authController) ListUsers(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListUsers(ctx.Context(), cabinetId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Users retrieved", res))
}
