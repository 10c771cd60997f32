package controller

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"
	"time"

	"medicab-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSubscriptionService records the provider update handed to it.
type stubSubscriptionService struct {
	lastUpdate *dto.ProviderSubscriptionUpdate
	lastPlanId *uuid.UUID
	priceMap   map[string]uuid.UUID
}

func (s *stubSubscriptionService) RegisterTrial(_ context.Context, _, _ uuid.UUID) (*dto.SubscriptionResponse, error) {
	return nil, nil
}

func (s *stubSubscriptionService) CheckStatus(_ context.Context, _ uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	return &dto.SubscriptionStatusResponse{}, nil
}

func (s *stubSubscriptionService) Upgrade(_ context.Context, _ uuid.UUID, _ *dto.UpgradeRequest) (*dto.UpgradeResponse, error) {
	return nil, nil
}

func (s *stubSubscriptionService) Cancel(_ context.Context, _ uuid.UUID) error { return nil }

func (s *stubSubscriptionService) ApplyProviderUpdate(_ context.Context, update *dto.ProviderSubscriptionUpdate, planId *uuid.UUID) (*dto.SubscriptionResponse, error) {
	s.lastUpdate = update
	s.lastPlanId = planId
	return &dto.SubscriptionResponse{}, nil
}

func (s *stubSubscriptionService) ResolvePlanByStripePriceId(_ context.Context, priceId string) (*uuid.UUID, error) {
	if id, ok := s.priceMap[priceId]; ok {
		return &id, nil
	}
	return nil, nil
}

func (s *stubSubscriptionService) GetDisplayInfo(_ context.Context, _ uuid.UUID) (*dto.SubscriptionDisplayResponse, error) {
	return &dto.SubscriptionDisplayResponse{}, nil
}

func newWebhookTestApp(stub *stubSubscriptionService) *fiber.App {
	app := fiber.New()
	NewSubscriptionController(stub).RegisterRoutes(app.Group("/api"))
	return app
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookAcceptsSignedPayload(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	planId := uuid.New()
	stub := &stubSubscriptionService{priceMap: map[string]uuid.UUID{"price_essentiel_monthly": planId}}
	app := newWebhookTestApp(stub)

	periodStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	body := []byte(`{
		"subscription_id": "sub_123",
		"customer_id": "cus_456",
		"status": "active",
		"price_id": "price_essentiel_monthly",
		"current_period_start": ` + "1748736000" + `,
		"current_period_end": 1751328000
	}`)

	req := httptest.NewRequest(fiber.MethodPost, "/api/subscription/stripe/webhook", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("X-Webhook-Signature", sign("whsec_test", body))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	require.NotNil(t, stub.lastUpdate)
	assert.Equal(t, "sub_123", stub.lastUpdate.SubscriptionId)
	assert.Equal(t, "cus_456", stub.lastUpdate.CustomerId)
	assert.Equal(t, "active", stub.lastUpdate.Status)
	require.NotNil(t, stub.lastUpdate.CurrentPeriodStart)
	assert.Equal(t, periodStart, *stub.lastUpdate.CurrentPeriodStart)
	// Zero epochs mean "not supplied", never time zero.
	assert.Nil(t, stub.lastUpdate.TrialStart)
	assert.Nil(t, stub.lastUpdate.TrialEnd)
	// The price id was resolved to a catalog plan.
	require.NotNil(t, stub.lastPlanId)
	assert.Equal(t, planId, *stub.lastPlanId)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	stub := &stubSubscriptionService{}
	app := newWebhookTestApp(stub)

	body := []byte(`{"subscription_id":"sub_123","status":"active"}`)

	req := httptest.NewRequest(fiber.MethodPost, "/api/subscription/stripe/webhook", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("X-Webhook-Signature", sign("whsec_other", body))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Nil(t, stub.lastUpdate)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	stub := &stubSubscriptionService{}
	app := newWebhookTestApp(stub)

	body := []byte(`{"subscription_id":"sub_123","status":"active"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/subscription/stripe/webhook", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestWebhookFailsWithoutConfiguredSecret(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	stub := &stubSubscriptionService{}
	app := newWebhookTestApp(stub)

	body := []byte(`{"subscription_id":"sub_123","status":"active"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/subscription/stripe/webhook", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("X-Webhook-Signature", sign("", body))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	stub := &stubSubscriptionService{}
	app := newWebhookTestApp(stub)

	body := []byte(`{not json`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/subscription/stripe/webhook", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("X-Webhook-Signature", sign("whsec_test", body))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}
