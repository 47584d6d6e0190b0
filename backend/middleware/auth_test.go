package middleware

import (
	"net/http/httptest"
	"testing"

	"learnhub/backend/config"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	app := fiber.New()
	app.Get("/protected", AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareSetsUserID(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	userID := uuid.New()

	token, err := utils.GenerateJWTToken(userID, cfg)
	assert.NoError(t, err)

	var got uuid.UUID
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		got = UserID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, got)
}

func TestUserIDDefaultsToNil(t *testing.T) {
	app := fiber.New()

	var got uuid.UUID
	app.Get("/", func(c *fiber.Ctx) error {
		got = UserID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)
}
