// Package catalogclient is a typed client for the site API plus the product
// loader used by the command line tools.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	apperrors "github.com/VivekRai08/Jain-Foam-website/pkg/errors"
	"github.com/VivekRai08/Jain-Foam-website/pkg/httpclient"
	"github.com/VivekRai08/Jain-Foam-website/pkg/httputil"
)

const serviceName = "site-api"

// ErrNotFound is returned by GetProduct for an unknown id.
var ErrNotFound = apperrors.ErrNotFound

// RequestError is a 400 response from the API.
type RequestError struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (e *RequestError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(parts, "; "))
}

// SubmitResult is the API's answer to an accepted inquiry.
type SubmitResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	InquiryID string `json:"inquiryId"`
}

// Client calls the site API. Requests are never repeated at the transport
// level; retrying is left to the caller.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.New(cfg).WithHeader("Accept", "application/json"),
	}
}

// ListProducts fetches every product.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product. An unknown id returns an error wrapping
// ErrNotFound.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, "/api/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.getJSON(ctx, "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// SubmitInquiry posts a contact inquiry. Rejected input comes back as
// *RequestError.
func (c *Client) SubmitInquiry(ctx context.Context, input domain.ContactInquiryInput) (*SubmitResult, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode inquiry: %w", err)
	}

	resp, err := c.http.Post(ctx, c.baseURL+"/api/contact", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("submit inquiry: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest {
		return nil, decodeRequestError(resp)
	}
	if !httpclient.IsSuccess(resp.StatusCode) {
		return nil, httpclient.ParseResponseError(resp, serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	var result SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode submit response: %w", err)
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	resp, err := c.http.Get(ctx, c.baseURL+path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if !httpclient.IsSuccess(resp.StatusCode) {
		return httpclient.ParseResponseError(resp, serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func decodeRequestError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, httputil.MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("read error response: %w", err)
	}
	var env httputil.ErrorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error == nil {
		return &RequestError{Code: "INVALID_INPUT", Message: strings.TrimSpace(string(raw))}
	}
	return &RequestError{Code: env.Error.Code, Message: env.Error.Message, Fields: env.Error.Fields}
}

// IsNotFound reports whether err means the requested resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
