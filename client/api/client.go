// Package api is a typed client for the TindaPH REST API, covering the
// storefront's network surface: auth and product listing/CRUD.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tindaph/tindaph/model"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// SetToken sets the bearer token attached to subsequent requests. Register
// and Login call it automatically on success.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	var res model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &res); err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

func (c *Client) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	var res model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &res); err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

// ListOptions are the query parameters of GET /api/products.
type ListOptions struct {
	Category string
	Search   string
	Sort     string
}

func (c *Client) ListProducts(ctx context.Context, opts *ListOptions) ([]model.ProductEntity, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Category != "" {
			query.Set("category", opts.Category)
		}
		if opts.Search != "" {
			query.Set("search", opts.Search)
		}
		if opts.Sort != "" {
			query.Set("sort", opts.Sort)
		}
	}

	var res []model.ProductEntity
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*model.ProductEntity, error) {
	var res model.ProductEntity
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.ProductEntity, error) {
	var res model.ProductResponse
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, req, &res); err != nil {
		return nil, err
	}
	return res.Product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req *model.UpdateProductRequest) (*model.ProductEntity, error) {
	var res model.ProductResponse
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), nil, req, &res); err != nil {
		return nil, err
	}
	return res.Product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) MyProducts(ctx context.Context) ([]model.ProductEntity, error) {
	var res []model.ProductEntity
	if err := c.do(ctx, http.MethodGet, "/api/products/seller/my-products", nil, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// do performs one request/response cycle. There are no retries: every
// failure is terminal for the call and retrying is the caller's decision.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var errBody struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			apiErr.Code = errBody.Code
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
