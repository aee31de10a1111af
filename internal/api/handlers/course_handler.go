package handlers

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/internal/api/presenters"
	"Go-Course-Market/pkg/course"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CourseHandler interface {
		CreateCourse(c *fiber.Ctx) error
		GetCourse(c *fiber.Ctx) error
		GetCourses(c *fiber.Ctx) error
		UploadCover(c *fiber.Ctx) error
	}

	courseHandler struct {
		courseService course.CourseService
		validator     *validator.Validate
	}
)

func NewCourseHandler(courseService course.CourseService, validator *validator.Validate) CourseHandler {
	return &courseHandler{
		courseService: courseService,
		validator:     validator,
	}
}

func (h *courseHandler) CreateCourse(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateCourseRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCourse, err)
	}

	res, err := h.courseService.CreateCourse(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCourse, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCourse)
}

func (h *courseHandler) GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("id")

	res, err := h.courseService.GetCourse(c.Context(), courseID)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrCourseNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedGetCourse, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCourse)
}

func (h *courseHandler) GetCourses(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	courses, count, err := h.courseService.GetCourses(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCourses, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetCourses)
}

func (h *courseHandler) UploadCover(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UploadCourseCoverRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	cover, err := c.FormFile("cover")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadCover, err)
	}
	req.Cover = cover

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadCover, err)
	}

	coverURL, err := h.courseService.UploadCover(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadCover, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"cover_url": coverURL}, fiber.StatusOK, domain.MessageSuccessUploadCover)
}
