package course

import (
	"Go-Course-Market/entities"
	"context"
	"gorm.io/gorm"
)

type (
	CourseRepository interface {
		CreateCourse(ctx context.Context, course *entities.Course) error
		GetCourseByID(ctx context.Context, id string) (*entities.Course, error)
		GetPublishedCourses(ctx context.Context, page, limit int) ([]*entities.Course, int64, error)
		UpdateCoverURL(ctx context.Context, id, coverURL string) error
	}

	courseRepository struct {
		db *gorm.DB
	}
)

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{
		db: db,
	}
}

func (r *courseRepository) CreateCourse(ctx context.Context, course *entities.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) GetCourseByID(ctx context.Context, id string) (*entities.Course, error) {
	var course entities.Course
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) GetPublishedCourses(ctx context.Context, page, limit int) ([]*entities.Course, int64, error) {
	var courses []*entities.Course
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).
		Model(&entities.Course{}).
		Where("is_published = ? AND is_hidden = ?", true, false)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, count, nil
}

func (r *courseRepository) UpdateCoverURL(ctx context.Context, id, coverURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Course{}).
		Where("id = ?", id).
		Update("cover_url", coverURL).Error
}
