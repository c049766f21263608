package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tindaph/tindaph/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Mongo struct {
	collection *mongo.Collection
}

type UserRepository interface {
	Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	CreateIndexes(ctx context.Context) error
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &Mongo{collection: db.Collection("users")}
}

func (m *Mongo) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now

	result, err := m.collection.InsertOne(ctx, data)
	if err != nil {
		return nil, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	data.ID = id
	return data, nil
}

func (m *Mongo) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := bson.M{}
	if !filter.ID.IsZero() {
		query["_id"] = filter.ID
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}

	var entity model.UserEntity
	if err := m.collection.FindOne(ctx, query).Decode(&entity); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// CreateIndexes enforces email uniqueness at the store level.
func (m *Mongo) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := m.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
