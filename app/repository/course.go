package repository

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(colCourses)}
}

func (r *CourseRepository) Create(ctx context.Context, course *entity.Course) error {
	return insertOne(ctx, r.col, course)
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	return findOne[entity.Course](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *CourseRepository) List(ctx context.Context, opts ListOptions) ([]*entity.Course, error) {
	return findMany[entity.Course](ctx, r.col, bson.D{}, findOptions(opts))
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.D{})
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Course, error) {
	return findMany[entity.Course](ctx, r.col, bson.D{{Key: "bootcamp_id", Value: bootcampID}})
}

func (r *CourseRepository) Update(ctx context.Context, course *entity.Course) error {
	course.UpdatedAt = time.Now()
	return replaceByID(ctx, r.col, course.ID, course)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	_, err := r.col.DeleteMany(ctx, bson.D{{Key: "bootcamp_id", Value: bootcampID}})
	return err
}
