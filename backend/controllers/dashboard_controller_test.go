package controllers_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestDashboardRequiresAuth(t *testing.T) {
	requireApp(t)

	resp := doRaw(t, "GET", "/api/dashboard/stats", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDashboardStatsForRecruiterOnly(t *testing.T) {
	requireApp(t)

	token, _ := registerUser(t, "recruiter")

	createEvent(t, token, "Spring Hackathon")
	createInternship(t, token, "Backend Intern")
	createInternship(t, token, "Frontend Intern")

	result := doJSON(t, "GET", "/api/dashboard/stats", nil, token)
	stats := result["stats"].(map[string]interface{})

	// Student and educator fields stay at their zero defaults
	assert.Equal(t, float64(0), stats["courses"])
	assert.Equal(t, float64(0), stats["enrollments"])
	assert.Equal(t, float64(0), stats["streak"])
	assert.Equal(t, float64(1), stats["events"])
	assert.Equal(t, float64(2), stats["internships"])

	assert.ElementsMatch(t, []interface{}{"recruiter"}, result["roles"])
}

func TestDashboardStatsForMultiRoleUser(t *testing.T) {
	requireApp(t)

	educatorToken, _ := registerUser(t, "educator")
	courseID := createCourse(t, educatorToken, "Statistics 101")

	token, _ := registerUser(t, "student", "educator")
	createCourse(t, token, "My Own Course")

	enroll := doRaw(t, "POST", courseURL(courseID)+"/enroll", nil, token)
	assert.Equal(t, fiber.StatusOK, enroll.StatusCode)

	result := doJSON(t, "GET", "/api/dashboard/stats", nil, token)
	stats := result["stats"].(map[string]interface{})

	assert.Equal(t, float64(1), stats["courses"])
	assert.Equal(t, float64(1), stats["enrollments"])
	assert.Equal(t, float64(1), stats["streak"])
	assert.Equal(t, float64(0), stats["events"])
	assert.Equal(t, float64(0), stats["internships"])
}

func createEvent(t *testing.T, token, title string) float64 {
	t.Helper()

	now := time.Now()
	result := doJSON(t, "POST", "/api/manage/events", map[string]interface{}{
		"title":                 title,
		"description":           "An event named " + title,
		"start_date":            now.AddDate(0, 1, 0),
		"end_date":              now.AddDate(0, 1, 2),
		"registration_deadline": now.AddDate(0, 0, 20),
		"location":              "Online",
	}, token)

	event, ok := result["event"].(map[string]interface{})
	if !ok {
		t.Fatalf("create event response: %v", result)
	}
	return event["id"].(float64)
}

func createInternship(t *testing.T, token, title string) float64 {
	t.Helper()

	result := doJSON(t, "POST", "/api/manage/internships", map[string]interface{}{
		"title":                title,
		"company_name":         "Acme Corp",
		"description":          "An internship named " + title,
		"location":             "Remote",
		"application_deadline": time.Now().AddDate(0, 2, 0),
	}, token)

	internship, ok := result["internship"].(map[string]interface{})
	if !ok {
		t.Fatalf("create internship response: %v", result)
	}
	return internship["id"].(float64)
}
