package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/dto"
	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/repository"

	"github.com/google/uuid"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseStore interface {
	Create(ctx context.Context, course *entity.Course) error
	FindByID(ctx context.Context, id string) (*entity.Course, error)
	List(ctx context.Context, opts repository.ListOptions) ([]*entity.Course, error)
	Count(ctx context.Context) (int64, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Course, error)
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
}

type CourseService struct {
	courses   CourseStore
	bootcamps BootcampStore
}

func NewCourseService(courses CourseStore, bootcamps BootcampStore) *CourseService {
	return &CourseService{courses: courses, bootcamps: bootcamps}
}

func (s *CourseService) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Course, int64, error) {
	courses, err := s.courses.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.courses.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Course, error) {
	bootcamp, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if bootcamp == nil {
		return nil, ErrBootcampNotFound
	}
	return s.courses.ListByBootcamp(ctx, bootcampID)
}

// Get returns the course with its bootcamp summary populated.
func (s *CourseService) Get(ctx context.Context, id string) (*dto.CourseDetail, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	detail := &dto.CourseDetail{Course: course}
	bootcamp, err := s.bootcamps.FindByID(ctx, course.BootcampID)
	if err != nil {
		return nil, err
	}
	if bootcamp != nil {
		detail.Bootcamp = &dto.BootcampSummary{
			ID:          bootcamp.ID,
			Name:        bootcamp.Name,
			Description: bootcamp.Description,
		}
	}
	return detail, nil
}

// Create adds a course under a bootcamp. The caller must own the bootcamp or
// hold the admin role; the course owner is the caller.
func (s *CourseService) Create(ctx context.Context, ident Identity, bootcampID string, in dto.CreateCourseInput) (*entity.Course, error) {
	bootcamp, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if bootcamp == nil {
		return nil, ErrBootcampNotFound
	}

	if err := RequireOwnerOrRole(ident, bootcamp.OwnerID, entity.RoleAdmin); err != nil {
		return nil, err
	}

	if err := validateCourseFields(in.Weeks, in.Tuition, in.MinimumSkill); err != nil {
		return nil, err
	}

	now := time.Now()
	course := &entity.Course{
		ID:                   uuid.New().String(),
		BootcampID:           bootcampID,
		OwnerID:              ident.UserID,
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	if err := s.recomputeAverageCost(ctx, bootcampID); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, ident Identity, id string, in dto.UpdateCourseInput) (*entity.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	if err := RequireOwnerOrRole(ident, course.OwnerID, entity.RoleAdmin); err != nil {
		return nil, err
	}

	if in.Title != nil {
		course.Title = *in.Title
	}
	if in.Description != nil {
		course.Description = *in.Description
	}
	if in.Weeks != nil {
		course.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		course.Tuition = *in.Tuition
	}
	if in.MinimumSkill != nil {
		course.MinimumSkill = *in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		course.ScholarshipAvailable = *in.ScholarshipAvailable
	}

	if err := validateCourseFields(course.Weeks, course.Tuition, course.MinimumSkill); err != nil {
		return nil, err
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	if err := s.recomputeAverageCost(ctx, course.BootcampID); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, ident Identity, id string) error {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}

	if err := RequireOwnerOrRole(ident, course.OwnerID, entity.RoleAdmin); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	return s.recomputeAverageCost(ctx, course.BootcampID)
}

// recomputeAverageCost keeps the bootcamp's average tuition in sync with its
// courses after any course mutation.
func (s *CourseService) recomputeAverageCost(ctx context.Context, bootcampID string) error {
	courses, err := s.courses.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		return err
	}

	average := 0
	if len(courses) > 0 {
		total := 0
		for _, c := range courses {
			total += c.Tuition
		}
		average = total / len(courses)
	}
	return s.bootcamps.UpdateAverageCost(ctx, bootcampID, average)
}

func validateCourseFields(weeks, tuition int, skill entity.SkillLevel) error {
	if weeks <= 0 {
		return fmt.Errorf("%w: weeks must be greater than 0", ErrValidation)
	}
	if tuition < 0 {
		return fmt.Errorf("%w: tuition cannot be negative", ErrValidation)
	}
	if !entity.ValidSkillLevel(skill) {
		return fmt.Errorf("%w: minimum skill must be beginner, intermediate or advanced", ErrValidation)
	}
	return nil
}
