package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/dto"
	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/repository"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user has already reviewed this bootcamp")
)

type ReviewStore interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id string) (*entity.Review, error)
	FindByBootcampAndOwner(ctx context.Context, bootcampID, ownerID string) (*entity.Review, error)
	List(ctx context.Context, opts repository.ListOptions) ([]*entity.Review, error)
	Count(ctx context.Context) (int64, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
}

type ReviewService struct {
	reviews   ReviewStore
	bootcamps BootcampStore
}

func NewReviewService(reviews ReviewStore, bootcamps BootcampStore) *ReviewService {
	return &ReviewService{reviews: reviews, bootcamps: bootcamps}
}

func (s *ReviewService) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Review, int64, error) {
	reviews, err := s.reviews.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (s *ReviewService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Review, error) {
	bootcamp, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if bootcamp == nil {
		return nil, ErrBootcampNotFound
	}
	return s.reviews.ListByBootcamp(ctx, bootcampID)
}

func (s *ReviewService) Get(ctx context.Context, id string) (*entity.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// Create adds a review for a bootcamp; a user may review a bootcamp once.
func (s *ReviewService) Create(ctx context.Context, ident Identity, bootcampID string, in dto.CreateReviewInput) (*entity.Review, error) {
	bootcamp, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if bootcamp == nil {
		return nil, ErrBootcampNotFound
	}

	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	existing, err := s.reviews.FindByBootcampAndOwner(ctx, bootcampID, ident.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReview
	}

	now := time.Now()
	review := &entity.Review{
		ID:         uuid.New().String(),
		BootcampID: bootcampID,
		OwnerID:    ident.UserID,
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	if err := s.recomputeAverageRating(ctx, bootcampID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, ident Identity, id string, in dto.UpdateReviewInput) (*entity.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := RequireOwnerOrRole(ident, review.OwnerID, entity.RoleAdmin); err != nil {
		return nil, err
	}

	if in.Title != nil {
		review.Title = *in.Title
	}
	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Rating != nil {
		if err := validateRating(*in.Rating); err != nil {
			return nil, err
		}
		review.Rating = *in.Rating
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := s.recomputeAverageRating(ctx, review.BootcampID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, ident Identity, id string) error {
	review, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := RequireOwnerOrRole(ident, review.OwnerID, entity.RoleAdmin); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	return s.recomputeAverageRating(ctx, review.BootcampID)
}

func (s *ReviewService) recomputeAverageRating(ctx context.Context, bootcampID string) error {
	reviews, err := s.reviews.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		return err
	}

	average := 0.0
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		// one decimal place
		average = math.Round(float64(total)/float64(len(reviews))*10) / 10
	}
	return s.bootcamps.UpdateAverageRating(ctx, bootcampID, average)
}

func validateRating(rating int) error {
	if rating < 1 || rating > 10 {
		return fmt.Errorf("%w: rating must be between 1 and 10", ErrValidation)
	}
	return nil
}
