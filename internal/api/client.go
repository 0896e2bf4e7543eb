package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "SHOPFRONT_HTTP_TIMEOUT"
	adminTokenEnvKey   = "SHOPFRONT_ADMIN_TOKEN"
)

// Client is a simple HTTP client for the shopfront API.
type Client struct {
	baseURL    string
	http       *http.Client
	adminToken string
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: httpTimeoutFromEnv()},
		adminToken: strings.TrimSpace(os.Getenv(adminTokenEnvKey)),
	}
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil, false)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/v1/info", nil, nil, &resp, false)
	return resp, err
}

// GetCatalog fetches the full storefront read model in one request.
func (c *Client) GetCatalog(ctx context.Context) (CatalogResponse, error) {
	var resp CatalogResponse
	err := c.do(ctx, http.MethodGet, "/v1/catalog", nil, nil, &resp, false)
	return resp, err
}

func (c *Client) ListProducts(ctx context.Context, query url.Values) ([]ProductResponse, error) {
	var resp []ProductResponse
	err := c.do(ctx, http.MethodGet, "/v1/products", query, nil, &resp, false)
	return resp, err
}

func (c *Client) CreateProduct(ctx context.Context, req ProductCreateRequest) (ProductResponse, error) {
	var resp ProductResponse
	err := c.do(ctx, http.MethodPost, "/v1/products", nil, req, &resp, false)
	return resp, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (ProductResponse, error) {
	var resp ProductResponse
	err := c.do(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(id), nil, nil, &resp, false)
	return resp, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req ProductUpdateRequest) (ProductResponse, error) {
	var resp ProductResponse
	err := c.do(ctx, http.MethodPut, "/v1/products/"+url.PathEscape(id), nil, req, &resp, false)
	return resp, err
}

// DeleteProduct removes a product. The confirm flag sets the X-Confirm
// header; deletes without it are rejected by the server.
func (c *Client) DeleteProduct(ctx context.Context, id string, confirm bool) error {
	return c.do(ctx, http.MethodDelete, "/v1/products/"+url.PathEscape(id), nil, nil, nil, confirm)
}

func (c *Client) GetCategories(ctx context.Context) (CategoriesResponse, error) {
	var resp CategoriesResponse
	err := c.do(ctx, http.MethodGet, "/v1/categories", nil, nil, &resp, false)
	return resp, err
}

func (c *Client) AddCategory(ctx context.Context, req CategoryAddRequest) (CategoryMutationResponse, error) {
	var resp CategoryMutationResponse
	err := c.do(ctx, http.MethodPost, "/v1/categories", nil, req, &resp, false)
	return resp, err
}

func (c *Client) RenameCategory(ctx context.Context, name string, req CategoryRenameRequest) (CategoryMutationResponse, error) {
	var resp CategoryMutationResponse
	err := c.do(ctx, http.MethodPatch, "/v1/categories/"+url.PathEscape(name), nil, req, &resp, false)
	return resp, err
}

func (c *Client) DeleteCategory(ctx context.Context, name string, revision int64, confirm bool) (CategoryMutationResponse, error) {
	var resp CategoryMutationResponse
	query := url.Values{}
	query.Set("revision", strconv.FormatInt(revision, 10))
	err := c.do(ctx, http.MethodDelete, "/v1/categories/"+url.PathEscape(name), query, nil, &resp, confirm)
	return resp, err
}

func (c *Client) ListBlogs(ctx context.Context, query url.Values) ([]BlogResponse, error) {
	var resp []BlogResponse
	err := c.do(ctx, http.MethodGet, "/v1/blogs", query, nil, &resp, false)
	return resp, err
}

func (c *Client) CreateBlog(ctx context.Context, req BlogCreateRequest) (BlogResponse, error) {
	var resp BlogResponse
	err := c.do(ctx, http.MethodPost, "/v1/blogs", nil, req, &resp, false)
	return resp, err
}

func (c *Client) GetBlog(ctx context.Context, id string) (BlogResponse, error) {
	var resp BlogResponse
	err := c.do(ctx, http.MethodGet, "/v1/blogs/"+url.PathEscape(id), nil, nil, &resp, false)
	return resp, err
}

func (c *Client) UpdateBlog(ctx context.Context, id string, req BlogUpdateRequest) (BlogResponse, error) {
	var resp BlogResponse
	err := c.do(ctx, http.MethodPut, "/v1/blogs/"+url.PathEscape(id), nil, req, &resp, false)
	return resp, err
}

func (c *Client) DeleteBlog(ctx context.Context, id string, confirm bool) error {
	return c.do(ctx, http.MethodDelete, "/v1/blogs/"+url.PathEscape(id), nil, nil, nil, confirm)
}

// UploadImage streams one image file as multipart form data.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (UploadResponse, error) {
	var resp UploadResponse

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return resp, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return resp, err
	}
	if err := writer.Close(); err != nil {
		return resp, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/uploads", &buf)
	if err != nil {
		return resp, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setAuthHeader(req)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return resp, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		return resp, decodeError(httpResp)
	}
	err = json.NewDecoder(httpResp.Body).Decode(&resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, confirm bool) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if confirm {
		req.Header.Set("X-Confirm", "true")
	}
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return &APIError{Status: resp.StatusCode, Code: errResp.Code, Message: errResp.Error}
	}
	return fmt.Errorf("api error: %s", resp.Status)
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.adminToken == "" || req == nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.adminToken)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
