package controllers

import (
	"errors"
	"strconv"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InternshipsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewInternshipsController(db *gorm.DB, cfg *config.Config) *InternshipsController {
	return &InternshipsController{DB: db, Cfg: cfg}
}

type InternshipInput struct {
	Title               string    `json:"title" validate:"required"`
	CompanyName         string    `json:"company_name" validate:"required"`
	Description         string    `json:"description" validate:"required"`
	Location            string    `json:"location"`
	DurationMonths      *int      `json:"duration_months" validate:"omitempty,gt=0"`
	Stipend             string    `json:"stipend"`
	ApplicationDeadline time.Time `json:"application_deadline" validate:"required"`
}

// ListInternships godoc
// @Summary List active internships
// @Description Active internships, newest first, with recruiter name
// @Tags internships
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /internships [get]
func (ic *InternshipsController) ListInternships(c *fiber.Ctx) error {
	var internships []models.Internship
	if err := ic.DB.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&internships).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not fetch internships")
	}

	result := make([]fiber.Map, 0, len(internships))
	for _, internship := range internships {
		var recruiter models.Profile
		ic.DB.Where("user_id = ?", internship.RecruiterID).First(&recruiter)

		result = append(result, fiber.Map{
			"id":                   internship.ID,
			"title":                internship.Title,
			"company_name":         internship.CompanyName,
			"description":          internship.Description,
			"location":             internship.Location,
			"duration_months":      internship.DurationMonths,
			"stipend":              internship.Stipend,
			"application_deadline": internship.ApplicationDeadline,
			"recruiter_name":       recruiter.FullName,
			"open":                 internship.ApplicationDeadline.After(time.Now()),
		})
	}

	return c.JSON(fiber.Map{"internships": result})
}

// ListApplications godoc
// @Summary IDs of internships the current user applied to
// @Tags internships
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /internships/applied [get]
func (ic *InternshipsController) ListApplications(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var internshipIDs []uint
	if err := ic.DB.Model(&models.InternshipApplication{}).
		Where("student_id = ?", userID).
		Pluck("internship_id", &internshipIDs).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not fetch applications")
	}

	return c.JSON(fiber.Map{"internship_ids": internshipIDs})
}

// Apply godoc
// @Summary Apply for an internship
// @Tags internships
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /internships/{id}/apply [post]
func (ic *InternshipsController) Apply(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	internshipID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid internship ID")
	}

	var internship models.Internship
	if err := ic.DB.Where("is_active = ?", true).First(&internship, internshipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "Internship not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if internship.ApplicationDeadline.Before(time.Now()) {
		return utils.Error(c, fiber.StatusConflict, "Application deadline has passed")
	}

	application := models.InternshipApplication{
		InternshipID: internship.ID,
		StudentID:    userID,
	}
	if err := ic.DB.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Error(c, fiber.StatusConflict, "Already applied for this internship")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Could not apply for internship")
	}

	return c.JSON(fiber.Map{
		"message":       "Application submitted",
		"internship_id": internship.ID,
	})
}

// ListOwnInternships godoc
// @Summary List the recruiter's own internships
// @Tags manage
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/internships [get]
func (ic *InternshipsController) ListOwnInternships(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var internships []models.Internship
	if err := ic.DB.Where("recruiter_id = ?", userID).
		Order("created_at DESC").
		Find(&internships).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not fetch internships")
	}

	return c.JSON(fiber.Map{"internships": internships})
}

// CreateInternship godoc
// @Summary Post an internship
// @Tags manage
// @Accept json
// @Produce json
// @Param internship body InternshipInput true "Internship data"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/internships [post]
func (ic *InternshipsController) CreateInternship(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input InternshipInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if details := utils.ValidateStruct(input); details != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "Validation failed", details)
	}

	internship := models.Internship{
		Title:               input.Title,
		CompanyName:         input.CompanyName,
		Description:         input.Description,
		Location:            input.Location,
		DurationMonths:      input.DurationMonths,
		Stipend:             input.Stipend,
		ApplicationDeadline: input.ApplicationDeadline,
		RecruiterID:         userID,
		IsActive:            true,
	}

	if err := ic.DB.Create(&internship).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not create internship")
	}

	return c.JSON(fiber.Map{
		"message":    "Internship created",
		"internship": internship,
	})
}

// UpdateInternship godoc
// @Summary Update an owned internship
// @Tags manage
// @Accept json
// @Produce json
// @Param internship body InternshipInput true "Internship data"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/internships/{id} [put]
func (ic *InternshipsController) UpdateInternship(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	internshipID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid internship ID")
	}

	var input InternshipInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if details := utils.ValidateStruct(input); details != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "Validation failed", details)
	}

	var internship models.Internship
	if err := ic.DB.Where("recruiter_id = ?", userID).First(&internship, internshipID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Internship not found")
	}

	internship.Title = input.Title
	internship.CompanyName = input.CompanyName
	internship.Description = input.Description
	internship.Location = input.Location
	internship.DurationMonths = input.DurationMonths
	internship.Stipend = input.Stipend
	internship.ApplicationDeadline = input.ApplicationDeadline

	if err := ic.DB.Save(&internship).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not update internship")
	}

	return c.JSON(fiber.Map{
		"message":    "Internship updated",
		"internship": internship,
	})
}

// DeleteInternship godoc
// @Summary Delete an owned internship
// @Tags manage
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/internships/{id} [delete]
func (ic *InternshipsController) DeleteInternship(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	internshipID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid internship ID")
	}

	result := ic.DB.Where("recruiter_id = ?", userID).Delete(&models.Internship{}, internshipID)
	if result.Error != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not delete internship")
	}
	if result.RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Internship not found")
	}

	return c.JSON(fiber.Map{"message": "Internship deleted"})
}
