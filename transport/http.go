package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	authapp "github.com/tindaph/tindaph/application/auth"
	productapp "github.com/tindaph/tindaph/application/product"
	"github.com/tindaph/tindaph/constant"
	"github.com/tindaph/tindaph/model"
	utilsContext "github.com/tindaph/tindaph/utils/context"
	"github.com/tindaph/tindaph/utils/errors"
	validatorx "github.com/tindaph/tindaph/utils/validator"
)

type RestHandler struct {
	AuthApp    authapp.AuthApp
	ProductApp productapp.ProductApp
}

func NewTransport(AuthApp authapp.AuthApp, ProductApp productapp.ProductApp) http.Handler {
	r := mux.NewRouter()

	rh := &RestHandler{
		AuthApp:    AuthApp,
		ProductApp: ProductApp,
	}

	r.Use(LoggingMiddleware())

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	r.HandleFunc("/", rh.Root).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", rh.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", rh.Login).Methods(http.MethodPost)
	api.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)

	// Seller routes: the chain order matters, RequireSeller reads the
	// identity Authenticate attaches.
	sellerOnly := func(h http.HandlerFunc) http.Handler {
		return Authenticate(AuthApp)(RequireSeller(h))
	}

	api.Handle("/products", sellerOnly(rh.CreateProduct)).Methods(http.MethodPost)
	api.Handle("/products/seller/my-products", sellerOnly(rh.MyProducts)).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", rh.GetProduct).Methods(http.MethodGet)
	api.Handle("/products/{id}", sellerOnly(rh.UpdateProduct)).Methods(http.MethodPut)
	api.Handle("/products/{id}", sellerOnly(rh.DeleteProduct)).Methods(http.MethodDelete)

	return r
}

// Root is a plain liveness/info route.
func (s *RestHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "TindaPH API is running",
		"status":    "success",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Register handler
// @Summary Register user
// @Description Register a new buyer or seller account and receive a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 201 {object} model.AuthResponse
// @Failure 400 {object} transport.ErrorResponse
// @Failure 409 {object} transport.ErrorResponse
// @Router /api/auth/register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// Login handler
// @Summary Login user
// @Description Login with email and password and receive a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.AuthResponse
// @Failure 401 {object} transport.ErrorResponse
// @Router /api/auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// ListProducts handler
// @Summary List products
// @Description List products with optional category filter, text search and sort
// @Tags Products
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Full-text search over name and description"
// @Param sort query string false "Sort key, e.g. -createdAt or price"
// @Success 200 {array} model.ProductEntity
// @Failure 500 {object} transport.ErrorResponse
// @Router /api/products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	sort := query.Get("sort")
	if sort == "" {
		sort = "-createdAt"
	}

	filter := &model.ProductFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
		Sort:     sort,
	}

	items, err := s.ProductApp.ListProducts(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetProduct handler
// @Summary Get product
// @Description Fetch a single product by id
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.ProductEntity
// @Failure 404 {object} transport.ErrorResponse
// @Router /api/products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, err := s.ProductApp.GetProduct(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// CreateProduct handler
// @Summary Create product
// @Description Create a product owned by the calling seller
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateProductRequest true "Create Product Request"
// @Success 201 {object} model.ProductResponse
// @Failure 401 {object} transport.ErrorResponse
// @Failure 403 {object} transport.ErrorResponse
// @Router /api/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrNoToken))
		return
	}

	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	product, err := s.ProductApp.CreateProduct(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.ProductResponse{
		Message: "Product created successfully",
		Product: product,
	})
}

// UpdateProduct handler
// @Summary Update product
// @Description Partially update an owned product; absent fields are left untouched
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body model.UpdateProductRequest true "Update Product Request"
// @Success 200 {object} model.ProductResponse
// @Failure 403 {object} transport.ErrorResponse
// @Failure 404 {object} transport.ErrorResponse
// @Router /api/products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrNoToken))
		return
	}
	role, _ := utilsContext.GetRole(ctx)

	var req model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	product, err := s.ProductApp.UpdateProduct(ctx, userID, role, mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ProductResponse{
		Message: "Product updated successfully",
		Product: product,
	})
}

// DeleteProduct handler
// @Summary Delete product
// @Description Delete an owned product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} model.MessageResponse
// @Failure 403 {object} transport.ErrorResponse
// @Failure 404 {object} transport.ErrorResponse
// @Router /api/products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrNoToken))
		return
	}
	role, _ := utilsContext.GetRole(ctx)

	if err := s.ProductApp.DeleteProduct(ctx, userID, role, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: "Product deleted successfully",
	})
}

// MyProducts handler
// @Summary List own products
// @Description List the calling seller's products, newest first
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ProductEntity
// @Failure 401 {object} transport.ErrorResponse
// @Failure 403 {object} transport.ErrorResponse
// @Router /api/products/seller/my-products [get]
func (s *RestHandler) MyProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrNoToken))
		return
	}

	items, err := s.ProductApp.ListSellerProducts(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
