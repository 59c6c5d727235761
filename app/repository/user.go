package repository

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(colUsers)}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return insertOne(ctx, r.col, user)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return findOne[entity.User](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

// FindByResetTokenHash matches only users whose stored token has not expired.
func (r *UserRepository) FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*entity.User, error) {
	return findOne[entity.User](ctx, r.col, bson.D{
		{Key: "reset_token_hash", Value: hash},
		{Key: "reset_token_expires_at", Value: bson.D{{Key: "$gt", Value: now}}},
	})
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	return replaceByID(ctx, r.col, user.ID, user)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return updateFields(ctx, r.col, id, bson.D{
		{Key: "password_hash", Value: passwordHash},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, hash string, expiresAt time.Time) error {
	return updateFields(ctx, r.col, id, bson.D{
		{Key: "reset_token_hash", Value: hash},
		{Key: "reset_token_expires_at", Value: expiresAt},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	return updateFields(ctx, r.col, id,
		bson.D{{Key: "updated_at", Value: time.Now()}},
		"reset_token_hash", "reset_token_expires_at",
	)
}

// ResetPassword sets the new password hash and clears the reset token fields
// in a single document write.
func (r *UserRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	return updateFields(ctx, r.col, id,
		bson.D{
			{Key: "password_hash", Value: passwordHash},
			{Key: "updated_at", Value: time.Now()},
		},
		"reset_token_hash", "reset_token_expires_at",
	)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

func (r *UserRepository) List(ctx context.Context, opts ListOptions) ([]*entity.User, error) {
	return findMany[entity.User](ctx, r.col, bson.D{}, findOptions(opts))
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.D{})
}
