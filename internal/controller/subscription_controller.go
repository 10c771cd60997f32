package controller

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/pkg/serverutils"
	"medicab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	CheckStatus(ctx *fiber.Ctx) error
	GetDisplayInfo(ctx *fiber.Ctx) error
	Upgrade(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	HandleStripeWebhook(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	service service.ISubscriptionService
}

func NewSubscriptionController(service service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{service: service}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscription")

	// Provider callback, authenticated by signature instead of JWT.
	h.Post("/stripe/webhook", c.HandleStripeWebhook)

	auth := h.Group("/", serverutils.JwtMiddleware)
	auth.Get("/status", c.CheckStatus)
	auth.Get("/display", c.GetDisplayInfo)
	auth.Post("/upgrade", serverutils.RequireRole(string(entity.UserRoleAdmin)), c.Upgrade)
	auth.Post("/cancel", serverutils.RequireRole(string(entity.UserRoleAdmin)), c.Cancel)
}

func (c *subscriptionController) CheckStatus(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.CheckStatus(ctx.Context(), cabinetId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription status", res))
}

func (c *subscriptionController) GetDisplayInfo(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetDisplayInfo(ctx.Context(), cabinetId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription display info", res))
}

func (c *subscriptionController) Upgrade(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.UpgradeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Upgrade(ctx.Context(), cabinetId, &req)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, service.ErrSubscriptionNotFound) || errors.Is(err, service.ErrPlanNotFound) {
			status = fiber.StatusNotFound
		}
		return ctx.Status(status).JSON(serverutils.ErrorResponse(status, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription upgraded", res))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	cabinetId, err := cabinetIdFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Cancel(ctx.Context(), cabinetId); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			status = fiber.StatusNotFound
		}
		return ctx.Status(status).JSON(serverutils.ErrorResponse(status, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription will end at period close", nil))
}

// HandleStripeWebhook verifies the HMAC-SHA256 signature over the raw body,
// normalizes the epoch timestamps and hands the update to the service.
// Service-side failures return 500 so the provider retries the delivery.
func (c *subscriptionController) HandleStripeWebhook(ctx *fiber.Ctx) error {
	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "webhook secret not configured"))
	}

	body := ctx.Body()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	received := ctx.Get("X-Webhook-Signature")
	if received == "" || !hmac.Equal([]byte(expected), []byte(received)) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid signature"))
	}

	var req dto.StripeWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed payload"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	update := &dto.ProviderSubscriptionUpdate{
		SubscriptionId:     req.SubscriptionId,
		CustomerId:         req.CustomerId,
		Status:             req.Status,
		CurrentPeriodStart: epochToTime(req.CurrentPeriodStart),
		CurrentPeriodEnd:   epochToTime(req.CurrentPeriodEnd),
		TrialStart:         epochToTime(req.TrialStart),
		TrialEnd:           epochToTime(req.TrialEnd),
	}

	planId, err := c.service.ResolvePlanByStripePriceId(ctx.Context(), req.PriceId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	res, err := c.service.ApplyProviderUpdate(ctx.Context(), update, planId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription reconciled", res))
}

func epochToTime(seconds int64) *time.Time {
	if seconds <= 0 {
		return nil
	}
	t := time.Unix(seconds, 0).UTC()
	return &t
}
