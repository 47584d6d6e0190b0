package controllers

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Logger: logger}
}

type CourseInput struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Difficulty    string `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Category      string `json:"category"`
	DurationHours int    `json:"duration_hours" validate:"gte=0"`
	ThumbnailURL  string `json:"thumbnail_url" validate:"omitempty,url"`
	VideoURL      string `json:"video_url" validate:"omitempty,url"`
}

// ListCourses godoc
// @Summary List published courses
// @Description Published courses, newest first, with the educator's name
// @Tags courses
// @Produce json
// @Param search query string false "Title/description substring"
// @Param difficulty query string false "beginner, intermediate or advanced"
// @Success 200 {object} map[string]interface{}
// @Router /courses [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	search := c.Query("search")
	difficulty := c.Query("difficulty")

	query := cc.DB.Model(&models.Course{}).
		Where("is_published = ?", true).
		Order("created_at DESC")

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if difficulty != "" && difficulty != "all" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not fetch courses")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":             course.ID,
			"title":          course.Title,
			"description":    course.Description,
			"difficulty":     course.Difficulty,
			"category":       course.Category,
			"duration_hours": course.DurationHours,
			"thumbnail_url":  course.ThumbnailURL,
			"educator_name":  cc.ownerName(course.EducatorID.String()),
			"created_at":     course.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"courses": result})
}

// GetCourse godoc
// @Summary Course details
// @Description Single course with educator name; with a valid token also the
// enrollment flag and, when enrolled, the embeddable video URL
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Could not query database")
	}

	response := fiber.Map{
		"id":             course.ID,
		"title":          course.Title,
		"description":    course.Description,
		"difficulty":     course.Difficulty,
		"category":       course.Category,
		"duration_hours": course.DurationHours,
		"thumbnail_url":  course.ThumbnailURL,
		"educator_name":  cc.ownerName(course.EducatorID.String()),
		"enrolled":       false,
	}

	// The token is optional here; it only unlocks the enrolled flag and the
	// embedded player URL.
	if userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg); err == nil {
		var count int64
		if err := cc.DB.Model(&models.CourseEnrollment{}).
			Where("course_id = ? AND student_id = ?", course.ID, userID).
			Count(&count).Error; err != nil {
			cc.Logger.Printf("course %d: enrollment check failed for %s: %v", course.ID, userID, err)
		}

		if count > 0 {
			response["enrolled"] = true
			if course.VideoURL != "" {
				response["embed_url"] = utils.VideoEmbedURL(course.VideoURL)
			}
		}
	}

	return c.JSON(fiber.Map{"course": response})
}

// ListEnrollments godoc
// @Summary IDs of the current user's course enrollments
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/enrolled [get]
func (cc *CoursesController) ListEnrollments(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var courseIDs []uint
	if err := cc.DB.Model(&models.CourseEnrollment{}).
		Where("student_id = ?", userID).
		Pluck("course_id", &courseIDs).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not fetch enrollments")
	}

	return c.JSON(fiber.Map{"course_ids": courseIDs})
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Creates the enrollment, then advances the learning streak.
// A streak write failure is logged but never blocks the enrollment.
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/enroll [post]
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Where("is_published = ?", true).First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "Course not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Could not query database")
	}

	enrollment := models.CourseEnrollment{
		CourseID:  course.ID,
		StudentID: userID,
	}
	if err := cc.DB.Create(&enrollment).Error; err != nil {
		// Unique (course_id, student_id) index rejects double enrollment
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Error(c, fiber.StatusConflict, "Already enrolled in this course")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Could not enroll in course")
	}

	cc.advanceStreak(c)

	return c.JSON(fiber.Map{
		"message":   "Successfully enrolled",
		"course_id": course.ID,
	})
}

// advanceStreak performs the read-before-write around the pure streak
// computation. Enrollment success and streak success are independent
// outcomes: any failure here is logged and swallowed.
func (cc *CoursesController) advanceStreak(c *fiber.Ctx) {
	userID := middleware.UserID(c)
	today := time.Now()

	var existing models.UserStreak
	err := cc.DB.Where("user_id = ?", userID).First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		next := models.NextStreak(nil, userID, today)
		if err := cc.DB.Create(&next).Error; err != nil {
			cc.Logger.Printf("streak: insert failed for %s: %v", userID, err)
		}
	case err != nil:
		cc.Logger.Printf("streak: fetch failed for %s: %v", userID, err)
	default:
		next := models.NextStreak(&existing, userID, today)
		if err := cc.DB.Model(&models.UserStreak{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"current_streak":     next.CurrentStreak,
				"longest_streak":     next.LongestStreak,
				"last_activity_date": next.LastActivityDate,
			}).Error; err != nil {
			cc.Logger.Printf("streak: update failed for %s: %v", userID, err)
		}
	}
}

// ListOwnCourses godoc
// @Summary List the educator's own courses
// @Tags manage
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/courses [get]
func (cc *CoursesController) ListOwnCourses(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var courses []models.Course
	if err := cc.DB.Where("educator_id = ?", userID).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not fetch courses")
	}

	return c.JSON(fiber.Map{"courses": courses})
}

// CreateCourse godoc
// @Summary Create a course
// @Tags manage
// @Accept json
// @Produce json
// @Param course body CourseInput true "Course data"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if details := utils.ValidateStruct(input); details != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "Validation failed", details)
	}

	course := models.Course{
		Title:         input.Title,
		Description:   input.Description,
		Difficulty:    input.Difficulty,
		Category:      input.Category,
		DurationHours: input.DurationHours,
		ThumbnailURL:  input.ThumbnailURL,
		VideoURL:      input.VideoURL,
		EducatorID:    userID,
		IsPublished:   true,
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not create course")
	}

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

// UpdateCourse godoc
// @Summary Update an owned course
// @Tags manage
// @Accept json
// @Produce json
// @Param course body CourseInput true "Course data"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/courses/{id} [put]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if details := utils.ValidateStruct(input); details != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "Validation failed", details)
	}

	// Non-owned ids look like missing records on purpose
	var course models.Course
	if err := cc.DB.Where("educator_id = ?", userID).First(&course, courseID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Course not found")
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Difficulty = input.Difficulty
	course.Category = input.Category
	course.DurationHours = input.DurationHours
	course.ThumbnailURL = input.ThumbnailURL
	course.VideoURL = input.VideoURL

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not update course")
	}

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

// DeleteCourse godoc
// @Summary Delete an owned course
// @Tags manage
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manage/courses/{id} [delete]
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	result := cc.DB.Where("educator_id = ?", userID).Delete(&models.Course{}, courseID)
	if result.Error != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Could not delete course")
	}
	if result.RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Course not found")
	}

	return c.JSON(fiber.Map{"message": "Course deleted"})
}

// ownerName resolves a display name from profiles; empty when absent.
func (cc *CoursesController) ownerName(userID string) string {
	var profile models.Profile
	if err := cc.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return ""
	}
	return profile.FullName
}
