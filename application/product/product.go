package product

import (
	"context"
	"errors"

	"github.com/tindaph/tindaph/constant"
	"github.com/tindaph/tindaph/model"
	productrepo "github.com/tindaph/tindaph/repository/product"
	redisrepo "github.com/tindaph/tindaph/repository/redis"
	userrepo "github.com/tindaph/tindaph/repository/user"
	cerrors "github.com/tindaph/tindaph/utils/errors"
	"github.com/tindaph/tindaph/utils/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductApp interface {
	ListProducts(ctx context.Context, filter *model.ProductFilter) ([]model.ProductEntity, error)
	GetProduct(ctx context.Context, id string) (*model.ProductEntity, error)
	CreateProduct(ctx context.Context, sellerID string, req *model.CreateProductRequest) (*model.ProductEntity, error)
	UpdateProduct(ctx context.Context, callerID string, role constant.Role, id string, req *model.UpdateProductRequest) (*model.ProductEntity, error)
	DeleteProduct(ctx context.Context, callerID string, role constant.Role, id string) error
	ListSellerProducts(ctx context.Context, sellerID string) ([]model.ProductEntity, error)
}

type productAppImpl struct {
	productRepo productrepo.ProductRepository
	userRepo    userrepo.UserRepository
	cacheRepo   redisrepo.Repository
}

func NewProductApp(productRepo productrepo.ProductRepository, userRepo userrepo.UserRepository, cacheRepo redisrepo.Repository) ProductApp {
	return &productAppImpl{
		productRepo: productRepo,
		userRepo:    userRepo,
		cacheRepo:   cacheRepo,
	}
}

func (s *productAppImpl) ListProducts(ctx context.Context, filter *model.ProductFilter) ([]model.ProductEntity, error) {
	items, err := s.productRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListProducts] err productRepo.List", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *productAppImpl) GetProduct(ctx context.Context, id string) (*model.ProductEntity, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, cerrors.SetCustomError(constant.ErrProductNotFound)
	}

	if cached, err := s.cacheRepo.GetProduct(ctx, id); err == nil {
		return cached, nil
	} else if !errors.Is(err, redisrepo.ErrCacheMiss) {
		logger.Warn("[GetProduct] cache get failed", zap.String("error", err.Error()))
	}

	product, err := s.productRepo.GetByID(ctx, objectID)
	if err != nil {
		logger.Error("[GetProduct] err productRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, cerrors.SetCustomError(constant.ErrProductNotFound)
	}

	if err := s.cacheRepo.SetProduct(ctx, product); err != nil {
		logger.Warn("[GetProduct] cache set failed", zap.String("error", err.Error()))
	}

	return product, nil
}

func (s *productAppImpl) CreateProduct(ctx context.Context, sellerID string, req *model.CreateProductRequest) (*model.ProductEntity, error) {
	sellerObjectID, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return nil, cerrors.SetCustomError(constant.ErrUserNotFound)
	}

	// The seller reference must resolve at creation time; the display name
	// is snapshotted onto the product and never synced afterwards.
	seller, err := s.userRepo.Get(ctx, &model.UserFilter{ID: sellerObjectID})
	if err != nil {
		logger.Error("[CreateProduct] err userRepo.Get", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}
	if seller == nil {
		return nil, cerrors.SetCustomError(constant.ErrUserNotFound)
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	var stock int64
	if req.Stock != nil {
		stock = *req.Stock
	}

	entity := &model.ProductEntity{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Images:      images,
		Stock:       stock,
		Seller:      sellerObjectID,
		SellerName:  seller.Name,
		Featured:    false,
	}

	entity, err = s.productRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[CreateProduct] err productRepo.Create", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}

	return entity, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, callerID string, role constant.Role, id string, req *model.UpdateProductRequest) (*model.ProductEntity, error) {
	product, err := s.loadOwnedProduct(ctx, callerID, role, id)
	if err != nil {
		return nil, err
	}

	// An empty payload writes nothing, not even an updated_at bump.
	if req.Empty() {
		return product, nil
	}

	// Only fields present in the payload are written; an explicit false or 0
	// is honored, an absent field leaves the stored value alone.
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Images != nil {
		set["images"] = *req.Images
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}

	updated, err := s.productRepo.Update(ctx, product.ID, set)
	if err != nil {
		if errors.Is(err, productrepo.ErrNotFound) {
			return nil, cerrors.SetCustomError(constant.ErrProductNotFound)
		}
		logger.Error("[UpdateProduct] err productRepo.Update", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}

	if err := s.cacheRepo.DeleteProduct(ctx, id); err != nil {
		logger.Warn("[UpdateProduct] cache invalidate failed", zap.String("error", err.Error()))
	}

	return updated, nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, callerID string, role constant.Role, id string) error {
	product, err := s.loadOwnedProduct(ctx, callerID, role, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, productrepo.ErrNotFound) {
			return cerrors.SetCustomError(constant.ErrProductNotFound)
		}
		logger.Error("[DeleteProduct] err productRepo.Delete", zap.String("error", err.Error()))
		return cerrors.SetCustomError(constant.ErrInternal)
	}

	if err := s.cacheRepo.DeleteProduct(ctx, id); err != nil {
		logger.Warn("[DeleteProduct] cache invalidate failed", zap.String("error", err.Error()))
	}

	return nil
}

func (s *productAppImpl) ListSellerProducts(ctx context.Context, sellerID string) ([]model.ProductEntity, error) {
	sellerObjectID, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return nil, cerrors.SetCustomError(constant.ErrUserNotFound)
	}

	items, err := s.productRepo.List(ctx, &model.ProductFilter{Seller: sellerObjectID})
	if err != nil {
		logger.Error("[ListSellerProducts] err productRepo.List", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

// loadOwnedProduct fetches a product and enforces the write ownership rule:
// the caller must be the product's seller, or hold the admin role.
func (s *productAppImpl) loadOwnedProduct(ctx context.Context, callerID string, role constant.Role, id string) (*model.ProductEntity, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, cerrors.SetCustomError(constant.ErrProductNotFound)
	}

	product, err := s.productRepo.GetByID(ctx, objectID)
	if err != nil {
		logger.Error("[loadOwnedProduct] err productRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, cerrors.SetCustomError(constant.ErrProductNotFound)
	}

	if product.Seller.Hex() != callerID && role != constant.RoleAdmin {
		return nil, cerrors.SetCustomError(constant.ErrNotOwner)
	}

	return product, nil
}
