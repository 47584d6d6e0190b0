package controllers

import (
	"errors"
	"log"
	"sync"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg, Logger: logger}
}

// GetStats godoc
// @Summary Dashboard stats for the current user
// @Description Returns per-role counters; fields outside the user's roles stay zero
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard/stats [get]
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var roles []string
	if err := dc.DB.Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role", &roles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	stats := dc.fetchStats(userID, roles)

	return c.JSON(fiber.Map{
		"roles": roles,
		"stats": stats,
	})
}

// fetchStats computes the counters for each role the user holds. The per-role
// queries touch disjoint fields of the bundle, so they run concurrently and a
// failing one only leaves its own fields at zero.
func (dc *DashboardController) fetchStats(userID uuid.UUID, roles []string) models.DashboardStats {
	var stats models.DashboardStats
	var wg sync.WaitGroup

	for _, role := range roles {
		switch role {
		case models.RoleStudent:
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := dc.DB.Model(&models.CourseEnrollment{}).
					Where("student_id = ?", userID).
					Count(&stats.Enrollments).Error; err != nil {
					dc.Logger.Printf("dashboard: enrollment count failed for %s: %v", userID, err)
				}

				var streak models.UserStreak
				err := dc.DB.Where("user_id = ?", userID).First(&streak).Error
				if err == nil {
					stats.Streak = streak.CurrentStreak
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					dc.Logger.Printf("dashboard: streak fetch failed for %s: %v", userID, err)
				}
			}()
		case models.RoleEducator:
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := dc.DB.Model(&models.Course{}).
					Where("educator_id = ?", userID).
					Count(&stats.Courses).Error; err != nil {
					dc.Logger.Printf("dashboard: course count failed for %s: %v", userID, err)
				}
			}()
		case models.RoleRecruiter:
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := dc.DB.Model(&models.Event{}).
					Where("organizer_id = ?", userID).
					Count(&stats.Events).Error; err != nil {
					dc.Logger.Printf("dashboard: event count failed for %s: %v", userID, err)
				}

				if err := dc.DB.Model(&models.Internship{}).
					Where("recruiter_id = ?", userID).
					Count(&stats.Internships).Error; err != nil {
					dc.Logger.Printf("dashboard: internship count failed for %s: %v", userID, err)
				}
			}()
		}
	}

	wg.Wait()
	return stats
}
