package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appproduct "github.com/tindaph/tindaph/application/product"
	"github.com/tindaph/tindaph/constant"
	productmocks "github.com/tindaph/tindaph/mocks/repository/product"
	redismocks "github.com/tindaph/tindaph/mocks/repository/redis"
	usermocks "github.com/tindaph/tindaph/mocks/repository/user"
	"github.com/tindaph/tindaph/model"
	redisrepo "github.com/tindaph/tindaph/repository/redis"
	cerr "github.com/tindaph/tindaph/utils/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	productRepo *productmocks.ProductRepository
	userRepo    *usermocks.UserRepository
	cacheRepo   *redismocks.Repository
	app         appproduct.ProductApp
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		productRepo: productmocks.NewProductRepository(t),
		userRepo:    usermocks.NewUserRepository(t),
		cacheRepo:   redismocks.NewRepository(t),
	}
	f.app = appproduct.NewProductApp(f.productRepo, f.userRepo, f.cacheRepo)
	return f
}

func TestProductApp_GetProduct(t *testing.T) {
	productID := primitive.NewObjectID()
	stored := &model.ProductEntity{ID: productID, Name: "Mango Box", Price: 250}

	t.Run("success: cache miss falls through to the store and fills the cache", func(t *testing.T) {
		f := newFixture(t)
		f.cacheRepo.On("GetProduct", mock.Anything, productID.Hex()).Return(nil, redisrepo.ErrCacheMiss).Once()
		f.productRepo.On("GetByID", mock.Anything, productID).Return(stored, nil).Once()
		f.cacheRepo.On("SetProduct", mock.Anything, stored).Return(nil).Once()

		got, err := f.app.GetProduct(context.Background(), productID.Hex())
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("success: cache hit skips the store", func(t *testing.T) {
		f := newFixture(t)
		f.cacheRepo.On("GetProduct", mock.Anything, productID.Hex()).Return(stored, nil).Once()

		got, err := f.app.GetProduct(context.Background(), productID.Hex())
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("error: unknown id", func(t *testing.T) {
		f := newFixture(t)
		f.cacheRepo.On("GetProduct", mock.Anything, productID.Hex()).Return(nil, redisrepo.ErrCacheMiss).Once()
		f.productRepo.On("GetByID", mock.Anything, productID).Return(nil, nil).Once()

		_, err := f.app.GetProduct(context.Background(), productID.Hex())
		assert.Equal(t, cerr.SetCustomError(constant.ErrProductNotFound), err)
	})

	t.Run("error: malformed id is not found, not a 500", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.app.GetProduct(context.Background(), "not-a-hex-id")
		assert.Equal(t, cerr.SetCustomError(constant.ErrProductNotFound), err)
	})
}

func TestProductApp_CreateProduct(t *testing.T) {
	sellerID := primitive.NewObjectID()
	price := 250.0
	stock := int64(10)

	req := &model.CreateProductRequest{
		Name:        "Mango Box",
		Description: "Fresh mangoes from Cebu",
		Price:       &price,
		Category:    "Food & Beverages",
		Stock:       &stock,
	}

	t.Run("success: seller name is snapshotted onto the product", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.
			On("Get", mock.Anything, &model.UserFilter{ID: sellerID}).
			Return(&model.UserEntity{ID: sellerID, Name: "Ben Cruz", Role: constant.RoleSeller}, nil).
			Once()
		f.productRepo.
			On("Create", mock.Anything, mock.MatchedBy(func(ent *model.ProductEntity) bool {
				return ent.Name == "Mango Box" &&
					ent.Price == 250 &&
					ent.Stock == 10 &&
					ent.Seller == sellerID &&
					ent.SellerName == "Ben Cruz" &&
					!ent.Featured &&
					ent.Images != nil && len(ent.Images) == 0
			})).
			Return(&model.ProductEntity{ID: primitive.NewObjectID(), Name: "Mango Box", SellerName: "Ben Cruz"}, nil).
			Once()

		got, err := f.app.CreateProduct(context.Background(), sellerID.Hex(), req)
		require.NoError(t, err)
		assert.Equal(t, "Ben Cruz", got.SellerName)
	})

	t.Run("error: seller user missing", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.
			On("Get", mock.Anything, &model.UserFilter{ID: sellerID}).
			Return(nil, nil).
			Once()

		_, err := f.app.CreateProduct(context.Background(), sellerID.Hex(), req)
		assert.Equal(t, cerr.SetCustomError(constant.ErrUserNotFound), err)
	})

	t.Run("error: store failure surfaces as internal", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.
			On("Get", mock.Anything, &model.UserFilter{ID: sellerID}).
			Return(&model.UserEntity{ID: sellerID, Name: "Ben Cruz"}, nil).
			Once()
		f.productRepo.
			On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.New("db down")).
			Once()

		_, err := f.app.CreateProduct(context.Background(), sellerID.Hex(), req)
		assert.Equal(t, cerr.SetCustomError(constant.ErrInternal), err)
	})
}

func TestProductApp_UpdateProduct(t *testing.T) {
	ownerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	stored := &model.ProductEntity{
		ID:       productID,
		Name:     "Mango Box",
		Price:    250,
		Seller:   ownerID,
		Featured: true,
	}

	t.Run("success: only present fields reach the store, featured false included", func(t *testing.T) {
		f := newFixture(t)

		price := 0.0
		featured := false
		req := &model.UpdateProductRequest{Price: &price, Featured: &featured}

		f.productRepo.On("GetByID", mock.Anything, productID).Return(stored, nil).Once()
		f.productRepo.
			On("Update", mock.Anything, productID, mock.MatchedBy(func(set bson.M) bool {
				if len(set) != 2 {
					return false
				}
				p, ok := set["price"].(float64)
				if !ok || p != 0 {
					return false
				}
				feat, ok := set["featured"].(bool)
				return ok && !feat
			})).
			Return(&model.ProductEntity{ID: productID, Price: 0, Featured: false, Seller: ownerID}, nil).
			Once()
		f.cacheRepo.On("DeleteProduct", mock.Anything, productID.Hex()).Return(nil).Once()

		got, err := f.app.UpdateProduct(context.Background(), ownerID.Hex(), constant.RoleSeller, productID.Hex(), req)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.Price)
		assert.False(t, got.Featured)
	})

	t.Run("success: omitted featured never appears in the set document", func(t *testing.T) {
		f := newFixture(t)

		name := "Mango Crate"
		req := &model.UpdateProductRequest{Name: &name}

		f.productRepo.On("GetByID", mock.Anything, productID).Return(stored, nil).Once()
		f.productRepo.
			On("Update", mock.Anything, productID, mock.MatchedBy(func(set bson.M) bool {
				_, hasFeatured := set["featured"]
				return !hasFeatured && set["name"] == "Mango Crate"
			})).
			Return(&model.ProductEntity{ID: productID, Name: "Mango Crate", Featured: true, Seller: ownerID}, nil).
			Once()
		f.cacheRepo.On("DeleteProduct", mock.Anything, productID.Hex()).Return(nil).Once()

		got, err := f.app.UpdateProduct(context.Background(), ownerID.Hex(), constant.RoleSeller, productID.Hex(), req)
		require.NoError(t, err)
		assert.True(t, got.Featured)
	})

	t.Run("success: admin may update another seller's product", func(t *testing.T) {
		f := newFixture(t)

		name := "Mango Crate"
		req := &model.UpdateProductRequest{Name: &name}

		f.productRepo.On("GetByID", mock.Anything, productID).Return(stored, nil).Once()
		f.productRepo.
			On("Update", mock.Anything, productID, mock.Anything).
			Return(stored, nil).
			Once()
		f.cacheRepo.On("DeleteProduct", mock.Anything, productID.Hex()).Return(nil).Once()

		_, err := f.app.UpdateProduct(context.Background(), otherID.Hex(), constant.RoleAdmin, productID.Hex(), req)
		require.NoError(t, err)
	})

	t.Run("success: empty payload is a no-op, nothing reaches the store", func(t *testing.T) {
		f := newFixture(t)

		f.productRepo.On("GetByID", mock.Anything, productID).Return(stored, nil).Once()

		got, err := f.app.UpdateProduct(context.Background(), ownerID.Hex(), constant.RoleSeller, productID.Hex(), &model.UpdateProductRequest{})
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		f.productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error: non-owner seller is forbidden and nothing is written", func(t *testing.T) {
		f := newFixture(t)

		name := "Hijacked"
		req := &model.UpdateProductRequest{Name: &name}

		f.productRepo.On("GetByID", mock.Anything, productID).Return(stored, nil).Once()

		_, err := f.app.UpdateProduct(context.Background(), otherID.Hex(), constant.RoleSeller, productID.Hex(), req)
		assert.Equal(t, cerr.SetCustomError(constant.ErrNotOwner), err)
		f.productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error: product missing", func(t *testing.T) {
		f := newFixture(t)

		name := "Mango Crate"
		req := &model.UpdateProductRequest{Name: &name}

		f.productRepo.On("GetByID", mock.Anything, productID).Return(nil, nil).Once()

		_, err := f.app.UpdateProduct(context.Background(), ownerID.Hex(), constant.RoleSeller, productID.Hex(), req)
		assert.Equal(t, cerr.SetCustomError(constant.ErrProductNotFound), err)
	})
}

func TestProductApp_DeleteProduct(t *testing.T) {
	ownerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	stored := &model.ProductEntity{ID: productID, Seller: ownerID}

	t.Run("success: owner deletes and cache entry is invalidated", func(t *testing.T) {
		f := newFixture(t)
		f.productRepo.On("GetByID", mock.Anything, productID).Return(stored, nil).Once()
		f.productRepo.On("Delete", mock.Anything, productID).Return(nil).Once()
		f.cacheRepo.On("DeleteProduct", mock.Anything, productID.Hex()).Return(nil).Once()

		err := f.app.DeleteProduct(context.Background(), ownerID.Hex(), constant.RoleSeller, productID.Hex())
		require.NoError(t, err)
	})

	t.Run("error: non-owner seller is forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.productRepo.On("GetByID", mock.Anything, productID).Return(stored, nil).Once()

		err := f.app.DeleteProduct(context.Background(), otherID.Hex(), constant.RoleSeller, productID.Hex())
		assert.Equal(t, cerr.SetCustomError(constant.ErrNotOwner), err)
		f.productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("error: already deleted", func(t *testing.T) {
		f := newFixture(t)
		f.productRepo.On("GetByID", mock.Anything, productID).Return(nil, nil).Once()

		err := f.app.DeleteProduct(context.Background(), ownerID.Hex(), constant.RoleSeller, productID.Hex())
		assert.Equal(t, cerr.SetCustomError(constant.ErrProductNotFound), err)
	})
}

func TestProductApp_ListProducts(t *testing.T) {
	t.Run("success: empty result is an empty slice, not an error", func(t *testing.T) {
		f := newFixture(t)
		filter := &model.ProductFilter{Category: "Electronics", Sort: "-createdAt"}
		f.productRepo.On("List", mock.Anything, filter).Return([]model.ProductEntity{}, nil).Once()

		got, err := f.app.ListProducts(context.Background(), filter)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("error: store failure surfaces as internal", func(t *testing.T) {
		f := newFixture(t)
		filter := &model.ProductFilter{}
		f.productRepo.On("List", mock.Anything, filter).Return(nil, errors.New("db down")).Once()

		_, err := f.app.ListProducts(context.Background(), filter)
		assert.Equal(t, cerr.SetCustomError(constant.ErrInternal), err)
	})
}

func TestProductApp_ListSellerProducts(t *testing.T) {
	sellerID := primitive.NewObjectID()

	f := newFixture(t)
	f.productRepo.
		On("List", mock.Anything, mock.MatchedBy(func(filter *model.ProductFilter) bool {
			return filter.Seller == sellerID
		})).
		Return([]model.ProductEntity{{Name: "Mango Box", Seller: sellerID}}, nil).
		Once()

	got, err := f.app.ListSellerProducts(context.Background(), sellerID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mango Box", got[0].Name)
}
