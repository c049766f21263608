package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tindaph/tindaph/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("product not found")

type Mongo struct {
	collection *mongo.Collection
}

type ProductRepository interface {
	List(ctx context.Context, filter *model.ProductFilter) ([]model.ProductEntity, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.ProductEntity, error)
	Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.ProductEntity, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CreateIndexes(ctx context.Context) error
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &Mongo{collection: db.Collection("products")}
}

func (m *Mongo) List(ctx context.Context, filter *model.ProductFilter) ([]model.ProductEntity, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}
	if !filter.Seller.IsZero() {
		query["seller"] = filter.Seller
	}

	opts := options.Find().SetSort(parseSort(filter.Sort))

	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]model.ProductEntity, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (m *Mongo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.ProductEntity, error) {
	var entity model.ProductEntity
	if err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entity); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (m *Mongo) Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error) {
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

// Update applies set to the document and returns the updated entity. Only
// the keys present in set are touched, so absent fields keep their stored
// values. Returns ErrNotFound when no document matches.
func (m *Mongo) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.ProductEntity, error) {
	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entity model.ProductEntity
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&entity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (m *Mongo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateIndexes backs the search filter with a text index over name and
// description, plus the default listing order.
func (m *Mongo) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "seller", Value: 1}},
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

// sortFields maps API sort keys to document fields.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"price":     "price",
	"name":      "name",
	"stock":     "stock",
}

// parseSort turns a sort key like "-createdAt" or "price" into a Mongo sort
// document. Unknown keys fall back to newest first.
func parseSort(sort string) bson.D {
	direction := 1
	if strings.HasPrefix(sort, "-") {
		direction = -1
		sort = strings.TrimPrefix(sort, "-")
	}

	field, ok := sortFields[sort]
	if !ok {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	return bson.D{{Key: field, Value: direction}}
}
