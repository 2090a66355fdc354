// Course routes. A course is created with its 18 holes in one request;
// handicap ranks can be filled in later once someone has the scorecard.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
	"github.com/rowdycup/scoreboard/internal/scoring"
)

// HoleRequest is one hole in a course create/update request.
type HoleRequest struct {
	Number       int  `json:"number"` // 1–18
	Par          int  `json:"par"`
	HandicapRank *int `json:"handicapRank"` // 1–18, null until configured
}

// CourseRequest is the JSON body for POST /api/v1/courses.
type CourseRequest struct {
	Name  string        `json:"name"`
	City  string        `json:"city"`
	State string        `json:"state"`
	Holes []HoleRequest `json:"holes"`
}

// HoleResponse is one hole in a course response.
type HoleResponse struct {
	Number       int  `json:"number"`
	Par          int  `json:"par"`
	HandicapRank *int `json:"handicapRank"`
}

// CourseResponse is the JSON shape for a course.
type CourseResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	City  string         `json:"city"`
	State string         `json:"state"`
	Holes []HoleResponse `json:"holes"`
}

// buildCourseResponse loads the course's holes, surfacing any query failure
// instead of rendering an empty hole list.
func buildCourseResponse(db *gorm.DB, course *models.Course) (CourseResponse, error) {
	var holes []models.Hole
	if err := db.Where("course_id = ?", course.ID).
		Order("number").Find(&holes).Error; err != nil {
		return CourseResponse{}, err
	}
	return courseResponse(course, holes), nil
}

func courseResponse(course *models.Course, holes []models.Hole) CourseResponse {
	resp := CourseResponse{
		ID:    course.ID.String(),
		Name:  course.Name,
		City:  course.City,
		State: course.State,
		Holes: make([]HoleResponse, 0, len(holes)),
	}
	for _, h := range holes {
		resp.Holes = append(resp.Holes, HoleResponse{
			Number:       h.Number,
			Par:          h.Par,
			HandicapRank: h.HandicapRank,
		})
	}
	return resp
}

// validateHoles checks a full hole list: exactly 18 holes numbered 1–18,
// sane pars, and handicap ranks that are unique 1–18 where present.
// Partially ranked courses are allowed; a hole without a rank just never
// receives strokes.
func validateHoles(holes []HoleRequest) string {
	if len(holes) != scoring.MatchHoles {
		return "a course needs exactly 18 holes"
	}
	seenNumber := make(map[int]bool, len(holes))
	seenRank := make(map[int]bool, len(holes))
	for _, h := range holes {
		if h.Number < 1 || h.Number > scoring.MatchHoles {
			return "hole numbers must be between 1 and 18"
		}
		if seenNumber[h.Number] {
			return "hole numbers must be unique"
		}
		seenNumber[h.Number] = true

		if h.Par < 3 || h.Par > 6 {
			return "par must be between 3 and 6"
		}

		if h.HandicapRank != nil {
			rank := *h.HandicapRank
			if rank < 1 || rank > scoring.MatchHoles {
				return "handicap ranks must be between 1 and 18"
			}
			if seenRank[rank] {
				return "handicap ranks must be unique"
			}
			seenRank[rank] = true
		}
	}
	return ""
}

// GetCourses returns a handler for GET /api/v1/courses.
func GetCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		if err := db.Order("name").Find(&courses).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch courses",
			})
		}

		response := make([]CourseResponse, 0, len(courses))
		for i := range courses {
			resp, err := buildCourseResponse(db, &courses[i])
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to fetch courses",
				})
			}
			response = append(response, resp)
		}
		return c.JSON(response)
	}
}

// GetCourse returns a handler for GET /api/v1/courses/:id.
func GetCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid course ID",
			})
		}

		var course models.Course
		if err := db.First(&course, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "course not found",
			})
		}

		resp, err := buildCourseResponse(db, &course)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch course",
			})
		}
		return c.JSON(resp)
	}
}

// CreateCourse returns a handler for POST /api/v1/courses. Admin only.
// The course and all 18 holes are created in one transaction.
func CreateCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CourseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}
		if msg := validateHoles(req.Holes); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": msg,
			})
		}

		var created models.Course
		txErr := db.Transaction(func(tx *gorm.DB) error {
			course := models.Course{
				Name:  req.Name,
				City:  req.City,
				State: req.State,
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}

			holes := make([]models.Hole, 0, len(req.Holes))
			for _, h := range req.Holes {
				holes = append(holes, models.Hole{
					CourseID:     course.ID,
					Number:       h.Number,
					Par:          h.Par,
					HandicapRank: h.HandicapRank,
				})
			}
			if err := tx.Create(&holes).Error; err != nil {
				return err
			}

			created = course
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create course",
			})
		}

		resp, err := buildCourseResponse(db, &created)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch created course",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// UpdateCourseHoles returns a handler for PUT /api/v1/courses/:id/holes.
// Admin only. Replaces the full hole configuration — this is how handicap
// ranks get filled in after the course was first entered.
func UpdateCourseHoles(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid course ID",
			})
		}

		var course models.Course
		if err := db.First(&course, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "course not found",
			})
		}

		var req struct {
			Holes []HoleRequest `json:"holes"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if msg := validateHoles(req.Holes); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": msg,
			})
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			for _, h := range req.Holes {
				if err := tx.Model(&models.Hole{}).
					Where("course_id = ? AND number = ?", course.ID, h.Number).
					Updates(map[string]interface{}{
						"par":           h.Par,
						"handicap_rank": h.HandicapRank,
					}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update holes",
			})
		}

		resp, err := buildCourseResponse(db, &course)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch course",
			})
		}
		return c.JSON(resp)
	}
}
