package repository

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(colReviews)}
}

func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return insertOne(ctx, r.col, review)
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	return findOne[entity.Review](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *ReviewRepository) FindByBootcampAndOwner(ctx context.Context, bootcampID, ownerID string) (*entity.Review, error) {
	return findOne[entity.Review](ctx, r.col, bson.D{
		{Key: "bootcamp_id", Value: bootcampID},
		{Key: "owner_id", Value: ownerID},
	})
}

func (r *ReviewRepository) List(ctx context.Context, opts ListOptions) ([]*entity.Review, error) {
	return findMany[entity.Review](ctx, r.col, bson.D{}, findOptions(opts))
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.D{})
}

func (r *ReviewRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Review, error) {
	return findMany[entity.Review](ctx, r.col, bson.D{{Key: "bootcamp_id", Value: bootcampID}})
}

func (r *ReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	review.UpdatedAt = time.Now()
	return replaceByID(ctx, r.col, review.ID, review)
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

func (r *ReviewRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	_, err := r.col.DeleteMany(ctx, bson.D{{Key: "bootcamp_id", Value: bootcampID}})
	return err
}
