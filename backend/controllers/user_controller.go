package controllers

import (
	"errors"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get current user's profile
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var user models.User
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	var profile models.Profile
	uc.DB.Where("user_id = ?", userID).First(&profile)

	var roles []string
	uc.DB.Model(&models.UserRole{}).Where("user_id = ?", userID).Pluck("role", &roles)

	return c.JSON(fiber.Map{
		"id":         user.ID,
		"full_name":  profile.FullName,
		"email":      user.Email,
		"avatar_url": profile.AvatarURL,
		"roles":      roles,
	})
}

// UpdateProfile godoc
// @Summary Update current user's profile
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	type ProfileInput struct {
		FullName  string `json:"full_name" validate:"required"`
		AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	}

	var input ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if details := utils.ValidateStruct(input); details != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "Validation failed", details)
	}

	var profile models.Profile
	err := uc.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
	} else if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not query database")
	}

	profile.FullName = input.FullName
	profile.AvatarURL = input.AvatarURL

	if err := uc.DB.Save(&profile).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not update profile")
	}

	// Keep the denormalized name on users in sync
	uc.DB.Model(&models.User{}).Where("id = ?", userID).Update("full_name", input.FullName)

	return c.JSON(fiber.Map{
		"message": "Profile updated",
	})
}
