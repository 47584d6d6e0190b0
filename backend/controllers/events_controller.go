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

type EventsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewEventsController(db *gorm.DB, cfg *config.Config) *EventsController {
	return &EventsController{DB: db, Cfg: cfg}
}

type EventInput struct {
	Title                string    `json:"title" validate:"required"`
	Description          string    `json:"description" validate:"required"`
	StartDate            time.Time `json:"start_date" validate:"required"`
	EndDate              time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	RegistrationDeadline time.Time `json:"registration_deadline" validate:"required"`
	Location             string    `json:"location"`
	BannerURL            string    `json:"banner_url" validate:"omitempty,url"`
	MaxParticipants      *int      `json:"max_participants" validate:"omitempty,gt=0"`
}

// ListEvents godoc
// @Summary List active events
// @Description Active events by start date, soonest first, with organizer name
// @Tags events
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /events [get]
func (ec *EventsController) ListEvents(c *fiber.Ctx) error {
	var events []models.Event
	if err := ec.DB.Where("is_active = ?", true).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not fetch events")
	}

	result := make([]fiber.Map, 0, len(events))
	for _, event := range events {
		var organizer models.Profile
		ec.DB.Where("user_id = ?", event.OrganizerID).First(&organizer)

		result = append(result, fiber.Map{
			"id":                    event.ID,
			"title":                 event.Title,
			"description":           event.Description,
			"start_date":            event.StartDate,
			"end_date":              event.EndDate,
			"registration_deadline": event.RegistrationDeadline,
			"location":              event.Location,
			"banner_url":            event.BannerURL,
			"max_participants":      event.MaxParticipants,
			"organizer_name":        organizer.FullName,
			"upcoming":              event.StartDate.After(time.Now()),
		})
	}

	return c.JSON(fiber.Map{"events": result})
}

// ListRegistrations godoc
// @Summary IDs of events the current user registered for
// @Tags events
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /events/registered [get]
func (ec *EventsController) ListRegistrations(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var eventIDs []uint
	if err := ec.DB.Model(&models.EventRegistration{}).
		Where("student_id = ?", userID).
		Pluck("event_id", &eventIDs).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not fetch registrations")
	}

	return c.JSON(fiber.Map{"event_ids": eventIDs})
}

// Register godoc
// @Summary Register for an event
// @Tags events
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /events/{id}/register [post]
func (ec *EventsController) Register(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	eventID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var event models.Event
	if err := ec.DB.Where("is_active = ?", true).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "Event not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Could not query database")
	}

	if event.RegistrationDeadline.Before(time.Now()) {
		return utils.Error(c, fiber.StatusConflict, "Registration closed")
	}

	registration := models.EventRegistration{
		EventID:   event.ID,
		StudentID: userID,
	}
	if err := ec.DB.Create(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Error(c, fiber.StatusConflict, "Already registered for this event")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Could not register for event")
	}

	return c.JSON(fiber.Map{
		"message":  "Successfully registered",
		"event_id": event.ID,
	})
}

// ListOwnEvents godoc
// @Summary List the recruiter's own events
// @Tags manage
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/events [get]
func (ec *EventsController) ListOwnEvents(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var events []models.Event
	if err := ec.DB.Where("organizer_id = ?", userID).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not fetch events")
	}

	return c.JSON(fiber.Map{"events": events})
}

// CreateEvent godoc
// @Summary Create an event
// @Tags manage
// @Accept json
// @Produce json
// @Param event body EventInput true "Event data"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/events [post]
func (ec *EventsController) CreateEvent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input EventInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if details := utils.ValidateStruct(input); details != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "Validation failed", details)
	}

	event := models.Event{
		Title:                input.Title,
		Description:          input.Description,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		RegistrationDeadline: input.RegistrationDeadline,
		Location:             input.Location,
		BannerURL:            input.BannerURL,
		MaxParticipants:      input.MaxParticipants,
		OrganizerID:          userID,
		IsActive:             true,
	}

	if err := ec.DB.Create(&event).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not create event")
	}

	return c.JSON(fiber.Map{
		"message": "Event created",
		"event":   event,
	})
}

// UpdateEvent godoc
// @Summary Update an owned event
// @Tags manage
// @Accept json
// @Produce json
// @Param event body EventInput true "Event data"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/events/{id} [put]
func (ec *EventsController) UpdateEvent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	eventID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var input EventInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if details := utils.ValidateStruct(input); details != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "Validation failed", details)
	}

	var event models.Event
	if err := ec.DB.Where("organizer_id = ?", userID).First(&event, eventID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Event not found")
	}

	event.Title = input.Title
	event.Description = input.Description
	event.StartDate = input.StartDate
	event.EndDate = input.EndDate
	event.RegistrationDeadline = input.RegistrationDeadline
	event.Location = input.Location
	event.BannerURL = input.BannerURL
	event.MaxParticipants = input.MaxParticipants

	if err := ec.DB.Save(&event).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not update event")
	}

	return c.JSON(fiber.Map{
		"message": "Event updated",
		"event":   event,
	})
}

// DeleteEvent godoc
// @Summary Delete an owned event
// @Tags manage
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/events/{id} [delete]
func (ec *EventsController) DeleteEvent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	eventID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	result := ec.DB.Where("organizer_id = ?", userID).Delete(&models.Event{}, eventID)
	if result.Error != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not delete event")
	}
	if result.RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Event not found")
	}

	return c.JSON(fiber.Map{"message": "Event deleted"})
}
