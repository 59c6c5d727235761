package repository

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type BootcampRepository struct {
	col *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{col: db.Collection(colBootcamps)}
}

func (r *BootcampRepository) Create(ctx context.Context, bootcamp *entity.Bootcamp) error {
	return insertOne(ctx, r.col, bootcamp)
}

func (r *BootcampRepository) FindByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return findOne[entity.Bootcamp](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *BootcampRepository) FindByOwner(ctx context.Context, ownerID string) (*entity.Bootcamp, error) {
	return findOne[entity.Bootcamp](ctx, r.col, bson.D{{Key: "owner_id", Value: ownerID}})
}

func (r *BootcampRepository) List(ctx context.Context, opts ListOptions) ([]*entity.Bootcamp, error) {
	return findMany[entity.Bootcamp](ctx, r.col, bson.D{}, findOptions(opts))
}

func (r *BootcampRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.D{})
}

// FindWithinRadius returns bootcamps whose location lies within the sphere cap
// centered on [lng lat] with the given radius in radians.
func (r *BootcampRepository) FindWithinRadius(ctx context.Context, lng, lat, radians float64) ([]*entity.Bootcamp, error) {
	filter := bson.D{{Key: "location", Value: bson.D{
		{Key: "$geoWithin", Value: bson.D{
			{Key: "$centerSphere", Value: bson.A{bson.A{lng, lat}, radians}},
		}},
	}}}
	return findMany[entity.Bootcamp](ctx, r.col, filter)
}

func (r *BootcampRepository) Update(ctx context.Context, bootcamp *entity.Bootcamp) error {
	bootcamp.UpdatedAt = time.Now()
	return replaceByID(ctx, r.col, bootcamp.ID, bootcamp)
}

func (r *BootcampRepository) UpdatePhoto(ctx context.Context, id, photo string) error {
	return updateFields(ctx, r.col, id, bson.D{
		{Key: "photo", Value: photo},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *BootcampRepository) UpdateAverageCost(ctx context.Context, id string, averageCost int) error {
	return updateFields(ctx, r.col, id, bson.D{
		{Key: "average_cost", Value: averageCost},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *BootcampRepository) UpdateAverageRating(ctx context.Context, id string, averageRating float64) error {
	return updateFields(ctx, r.col, id, bson.D{
		{Key: "average_rating", Value: averageRating},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}
