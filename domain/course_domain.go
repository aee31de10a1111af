package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessCreateCourse = "course created successfully"
	MessageSuccessGetCourses   = "courses retrieved successfully"
	MessageSuccessGetCourse    = "course retrieved successfully"
	MessageSuccessUploadCover  = "course cover uploaded successfully"

	MessageFailedCreateCourse = "failed to create course"
	MessageFailedGetCourses   = "failed to retrieve courses"
	MessageFailedGetCourse    = "failed to retrieve course"
	MessageFailedUploadCover  = "failed to upload course cover"

	ErrCourseNotFound = errors.New("course not found")
	ErrInvalidPrice   = errors.New("course price must not be negative")
)

type (
	CreateCourseRequest struct {
		Title       string          `json:"title" validate:"required,min=3,max=200"`
		Description string          `json:"description" validate:"omitempty,max=5000"`
		PriceUsd    decimal.Decimal `json:"price_usd"`
		IsFree      bool            `json:"is_free"`
		ExternalID  *int64          `json:"external_id" validate:"omitempty,min=0"`
		IsPublished bool            `json:"is_published"`
	}

	UploadCourseCoverRequest struct {
		CourseID string                `json:"course_id" form:"course_id" validate:"required,uuid"`
		Cover    *multipart.FileHeader `json:"cover" form:"cover"`
	}

	CourseResponse struct {
		ID                string          `json:"id"`
		CreatorID         string          `json:"creator_id"`
		Title             string          `json:"title"`
		Description       string          `json:"description,omitempty"`
		PriceUsd          decimal.Decimal `json:"price_usd"`
		IsFree            bool            `json:"is_free"`
		ExternalID        *int64          `json:"external_id,omitempty"`
		CoverURL          string          `json:"cover_url,omitempty"`
		IsPublished       bool            `json:"is_published"`
		OnChainRegistered bool            `json:"on_chain_registered,omitempty"`
		CreatedAt         time.Time       `json:"created_at"`
	}
)
