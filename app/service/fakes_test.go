package service_test

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/repository"
	"github.com/vibast-solutions/ms-go-bootcamps/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		CookieTTL:      time.Hour,
		ResetTokenTTL:  10 * time.Minute,
		MaxUploadBytes: 1 << 20,
		PasswordPolicy: config.PasswordPolicy{MinLength: 6},
	}
}

type memUserStore struct {
	users map[string]*entity.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*entity.User)}
}

func (s *memUserStore) Create(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) FindByID(_ context.Context, id string) (*entity.User, error) {
	return s.users[id], nil
}

func (s *memUserStore) FindByResetTokenHash(_ context.Context, hash string, now time.Time) (*entity.User, error) {
	for _, u := range s.users {
		if u.ResetTokenHash == hash && u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(now) {
			return u, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) Update(_ context.Context, user *entity.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *memUserStore) SetResetToken(_ context.Context, id, hash string, expiresAt time.Time) error {
	u, ok := s.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.ResetTokenHash = hash
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (s *memUserStore) ClearResetToken(_ context.Context, id string) error {
	u, ok := s.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
	return nil
}

func (s *memUserStore) ResetPassword(_ context.Context, id, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id string) error {
	delete(s.users, id)
	return nil
}

func (s *memUserStore) List(_ context.Context, _ repository.ListOptions) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

type memBootcampStore struct {
	bootcamps map[string]*entity.Bootcamp

	radiusArgs   []float64
	radiusResult []*entity.Bootcamp
}

func newMemBootcampStore() *memBootcampStore {
	return &memBootcampStore{bootcamps: make(map[string]*entity.Bootcamp)}
}

func (s *memBootcampStore) Create(_ context.Context, bootcamp *entity.Bootcamp) error {
	s.bootcamps[bootcamp.ID] = bootcamp
	return nil
}

func (s *memBootcampStore) FindByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	return s.bootcamps[id], nil
}

func (s *memBootcampStore) FindByOwner(_ context.Context, ownerID string) (*entity.Bootcamp, error) {
	for _, b := range s.bootcamps {
		if b.OwnerID == ownerID {
			return b, nil
		}
	}
	return nil, nil
}

func (s *memBootcampStore) List(_ context.Context, _ repository.ListOptions) ([]*entity.Bootcamp, error) {
	out := []*entity.Bootcamp{}
	for _, b := range s.bootcamps {
		out = append(out, b)
	}
	return out, nil
}

func (s *memBootcampStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.bootcamps)), nil
}

func (s *memBootcampStore) FindWithinRadius(_ context.Context, lng, lat, radians float64) ([]*entity.Bootcamp, error) {
	s.radiusArgs = []float64{lng, lat, radians}
	return s.radiusResult, nil
}

func (s *memBootcampStore) Update(_ context.Context, bootcamp *entity.Bootcamp) error {
	if _, ok := s.bootcamps[bootcamp.ID]; !ok {
		return errors.New("bootcamp not found")
	}
	s.bootcamps[bootcamp.ID] = bootcamp
	return nil
}

func (s *memBootcampStore) UpdatePhoto(_ context.Context, id, photo string) error {
	b, ok := s.bootcamps[id]
	if !ok {
		return errors.New("bootcamp not found")
	}
	b.Photo = photo
	return nil
}

func (s *memBootcampStore) UpdateAverageCost(_ context.Context, id string, averageCost int) error {
	b, ok := s.bootcamps[id]
	if !ok {
		return errors.New("bootcamp not found")
	}
	b.AverageCost = averageCost
	return nil
}

func (s *memBootcampStore) UpdateAverageRating(_ context.Context, id string, averageRating float64) error {
	b, ok := s.bootcamps[id]
	if !ok {
		return errors.New("bootcamp not found")
	}
	b.AverageRating = averageRating
	return nil
}

func (s *memBootcampStore) Delete(_ context.Context, id string) error {
	delete(s.bootcamps, id)
	return nil
}

type memCourseStore struct {
	courses map[string]*entity.Course
}

func newMemCourseStore() *memCourseStore {
	return &memCourseStore{courses: make(map[string]*entity.Course)}
}

func (s *memCourseStore) Create(_ context.Context, course *entity.Course) error {
	s.courses[course.ID] = course
	return nil
}

func (s *memCourseStore) FindByID(_ context.Context, id string) (*entity.Course, error) {
	return s.courses[id], nil
}

func (s *memCourseStore) List(_ context.Context, _ repository.ListOptions) ([]*entity.Course, error) {
	out := []*entity.Course{}
	for _, c := range s.courses {
		out = append(out, c)
	}
	return out, nil
}

func (s *memCourseStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.courses)), nil
}

func (s *memCourseStore) ListByBootcamp(_ context.Context, bootcampID string) ([]*entity.Course, error) {
	out := []*entity.Course{}
	for _, c := range s.courses {
		if c.BootcampID == bootcampID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memCourseStore) Update(_ context.Context, course *entity.Course) error {
	if _, ok := s.courses[course.ID]; !ok {
		return errors.New("course not found")
	}
	s.courses[course.ID] = course
	return nil
}

func (s *memCourseStore) Delete(_ context.Context, id string) error {
	delete(s.courses, id)
	return nil
}

func (s *memCourseStore) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	for id, c := range s.courses {
		if c.BootcampID == bootcampID {
			delete(s.courses, id)
		}
	}
	return nil
}

type memReviewStore struct {
	reviews map[string]*entity.Review
}

func newMemReviewStore() *memReviewStore {
	return &memReviewStore{reviews: make(map[string]*entity.Review)}
}

func (s *memReviewStore) Create(_ context.Context, review *entity.Review) error {
	s.reviews[review.ID] = review
	return nil
}

func (s *memReviewStore) FindByID(_ context.Context, id string) (*entity.Review, error) {
	return s.reviews[id], nil
}

func (s *memReviewStore) FindByBootcampAndOwner(_ context.Context, bootcampID, ownerID string) (*entity.Review, error) {
	for _, r := range s.reviews {
		if r.BootcampID == bootcampID && r.OwnerID == ownerID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memReviewStore) List(_ context.Context, _ repository.ListOptions) ([]*entity.Review, error) {
	out := []*entity.Review{}
	for _, r := range s.reviews {
		out = append(out, r)
	}
	return out, nil
}

func (s *memReviewStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.reviews)), nil
}

func (s *memReviewStore) ListByBootcamp(_ context.Context, bootcampID string) ([]*entity.Review, error) {
	out := []*entity.Review{}
	for _, r := range s.reviews {
		if r.BootcampID == bootcampID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memReviewStore) Update(_ context.Context, review *entity.Review) error {
	if _, ok := s.reviews[review.ID]; !ok {
		return errors.New("review not found")
	}
	s.reviews[review.ID] = review
	return nil
}

func (s *memReviewStore) Delete(_ context.Context, id string) error {
	delete(s.reviews, id)
	return nil
}

func (s *memReviewStore) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	for id, r := range s.reviews {
		if r.BootcampID == bootcampID {
			delete(s.reviews, id)
		}
	}
	return nil
}

type fakeMailer struct {
	fail     bool
	sentTo   []string
	lastBody string
}

func (m *fakeMailer) Send(_ context.Context, to, _, body string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sentTo = append(m.sentTo, to)
	m.lastBody = body
	return nil
}

type fakeGeocoder struct {
	location entity.Location
	err      error
}

func (g *fakeGeocoder) Geocode(_ context.Context, _ string) (entity.Location, error) {
	if g.err != nil {
		return entity.Location{}, g.err
	}
	return g.location, nil
}

type fakeMedia struct {
	fail bool
	keys []string
}

func (m *fakeMedia) Upload(_ context.Context, key string, _ io.Reader, _ int64, _ string) error {
	if m.fail {
		return errors.New("object store unreachable")
	}
	m.keys = append(m.keys, key)
	return nil
}
