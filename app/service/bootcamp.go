package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/dto"
	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/repository"
	"github.com/vibast-solutions/ms-go-bootcamps/config"

	"github.com/google/uuid"
)

// earthRadiusKm converts a distance to radians for $centerSphere queries.
const earthRadiusKm = 6378.0

var (
	ErrBootcampNotFound  = errors.New("bootcamp not found")
	ErrDuplicateBootcamp = errors.New("user has already published a bootcamp")
	ErrValidation        = errors.New("validation failed")
	ErrNotAnImage        = errors.New("uploaded file is not an image")
	ErrFileTooLarge      = errors.New("uploaded file exceeds the size limit")
)

type BootcampStore interface {
	Create(ctx context.Context, bootcamp *entity.Bootcamp) error
	FindByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	FindByOwner(ctx context.Context, ownerID string) (*entity.Bootcamp, error)
	List(ctx context.Context, opts repository.ListOptions) ([]*entity.Bootcamp, error)
	Count(ctx context.Context) (int64, error)
	FindWithinRadius(ctx context.Context, lng, lat, radians float64) ([]*entity.Bootcamp, error)
	Update(ctx context.Context, bootcamp *entity.Bootcamp) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	UpdateAverageCost(ctx context.Context, id string, averageCost int) error
	UpdateAverageRating(ctx context.Context, id string, averageRating float64) error
	Delete(ctx context.Context, id string) error
}

// Geocoder resolves a postal address or zipcode to a GeoJSON location.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (entity.Location, error)
}

// MediaStore is the photo-upload port.
type MediaStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

type BootcampService struct {
	bootcamps BootcampStore
	courses   CourseStore
	reviews   ReviewStore
	geocoder  Geocoder
	media     MediaStore
	cfg       *config.Config
}

func NewBootcampService(
	bootcamps BootcampStore,
	courses CourseStore,
	reviews ReviewStore,
	geocoder Geocoder,
	media MediaStore,
	cfg *config.Config,
) *BootcampService {
	return &BootcampService{
		bootcamps: bootcamps,
		courses:   courses,
		reviews:   reviews,
		geocoder:  geocoder,
		media:     media,
		cfg:       cfg,
	}
}

func (s *BootcampService) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Bootcamp, int64, error) {
	bootcamps, err := s.bootcamps.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.bootcamps.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return bootcamps, total, nil
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	bootcamp, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bootcamp == nil {
		return nil, ErrBootcampNotFound
	}
	return bootcamp, nil
}

// Create attaches the caller as owner. A non-admin may publish at most one
// bootcamp.
func (s *BootcampService) Create(ctx context.Context, ident Identity, in dto.CreateBootcampInput) (*entity.Bootcamp, error) {
	if ident.Role != entity.RoleAdmin {
		existing, err := s.bootcamps.FindByOwner(ctx, ident.UserID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateBootcamp
		}
	}

	location, err := s.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return nil, fmt.Errorf("geocode address: %w", err)
	}

	now := time.Now()
	bootcamp := &entity.Bootcamp{
		ID:            uuid.New().String(),
		OwnerID:       ident.UserID,
		Name:          in.Name,
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Location:      location,
		Careers:       in.Careers,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.bootcamps.Create(ctx, bootcamp); err != nil {
		return nil, err
	}
	return bootcamp, nil
}

func (s *BootcampService) Update(ctx context.Context, ident Identity, id string, in dto.UpdateBootcampInput) (*entity.Bootcamp, error) {
	bootcamp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := RequireOwnerOrRole(ident, bootcamp.OwnerID, entity.RoleAdmin); err != nil {
		return nil, err
	}

	if in.Name != nil {
		bootcamp.Name = *in.Name
	}
	if in.Description != nil {
		bootcamp.Description = *in.Description
	}
	if in.Website != nil {
		bootcamp.Website = *in.Website
	}
	if in.Phone != nil {
		bootcamp.Phone = *in.Phone
	}
	if in.Email != nil {
		bootcamp.Email = *in.Email
	}
	if in.Careers != nil {
		bootcamp.Careers = *in.Careers
	}
	if in.Housing != nil {
		bootcamp.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		bootcamp.JobAssistance = *in.JobAssistance
	}
	if in.Address != nil && *in.Address != bootcamp.Address {
		location, err := s.geocoder.Geocode(ctx, *in.Address)
		if err != nil {
			return nil, fmt.Errorf("geocode address: %w", err)
		}
		bootcamp.Address = *in.Address
		bootcamp.Location = location
	}

	if err := s.bootcamps.Update(ctx, bootcamp); err != nil {
		return nil, err
	}
	return bootcamp, nil
}

// Delete removes the bootcamp together with its courses and reviews.
func (s *BootcampService) Delete(ctx context.Context, ident Identity, id string) error {
	bootcamp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := RequireOwnerOrRole(ident, bootcamp.OwnerID, entity.RoleAdmin); err != nil {
		return err
	}

	if err := s.courses.DeleteByBootcamp(ctx, id); err != nil {
		return err
	}
	if err := s.reviews.DeleteByBootcamp(ctx, id); err != nil {
		return err
	}
	return s.bootcamps.Delete(ctx, id)
}

// InRadius returns bootcamps within distanceKm of the zipcode's location.
func (s *BootcampService) InRadius(ctx context.Context, zipcode string, distanceKm float64) ([]*entity.Bootcamp, error) {
	if distanceKm <= 0 {
		return nil, fmt.Errorf("%w: distance must be greater than 0", ErrValidation)
	}

	location, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, fmt.Errorf("geocode zipcode: %w", err)
	}
	if len(location.Coordinates) < 2 {
		return nil, fmt.Errorf("geocode zipcode: no coordinates for %q", zipcode)
	}

	lng, lat := location.Coordinates[0], location.Coordinates[1]
	return s.bootcamps.FindWithinRadius(ctx, lng, lat, distanceKm/earthRadiusKm)
}

// UploadPhoto validates the file bounds and stores the object under a
// deterministic key derived from the bootcamp id.
func (s *BootcampService) UploadPhoto(ctx context.Context, ident Identity, id, filename, contentType string, size int64, r io.Reader) (string, error) {
	bootcamp, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if err := RequireOwnerOrRole(ident, bootcamp.OwnerID, entity.RoleAdmin); err != nil {
		return "", err
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}
	if size > s.cfg.MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	key := fmt.Sprintf("photo_%s%s", bootcamp.ID, path.Ext(filename))
	if err := s.media.Upload(ctx, key, r, size, contentType); err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}

	if err := s.bootcamps.UpdatePhoto(ctx, bootcamp.ID, key); err != nil {
		return "", err
	}
	return key, nil
}
