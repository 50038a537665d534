// Package client talks to the storefront HTTP API the way the browser
// storefront does: API first, static JSON files as a fallback.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront-server/models"
)

var (
	ErrLoadProducts = errors.New("could not load products")
	ErrEmptyCart    = errors.New("your cart is empty")
)

// APIError is a non-2xx answer carrying the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// Products loads the catalog from /api/products, then /products.json.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.getJSON(ctx, "/api/products", &products)
	if err == nil {
		return products, nil
	}
	c.logger.Debug("api catalog unavailable, trying static file", zap.Error(err))

	products = nil
	if err := c.getJSON(ctx, "/products.json", &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadProducts, err)
	}
	return products, nil
}

// Posts never fails: /api/posts, then /posts.json, then no posts.
func (c *Client) Posts(ctx context.Context) []models.Post {
	for _, path := range []string{"/api/posts", "/posts.json"} {
		var posts []models.Post
		err := c.getJSON(ctx, path, &posts)
		if err == nil {
			return posts
		}
		c.logger.Debug("posts unavailable", zap.String("path", path), zap.Error(err))
	}
	return []models.Post{}
}

// Checkout asks the server for a hosted payment page and returns its URL.
func (c *Client) Checkout(ctx context.Context, lines []models.LineItem) (string, error) {
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}
	var out struct {
		URL string `json:"url"`
	}
	body := map[string]interface{}{"items": lines}
	if err := c.postJSON(ctx, "/api/create-checkout-session", body, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// Rate submits a 1..5 rating and returns the product with updated totals.
func (c *Client) Rate(ctx context.Context, productID string, rating int) (*models.Product, error) {
	var out struct {
		Product models.Product `json:"product"`
	}
	body := map[string]int{"rating": rating}
	if err := c.postJSON(ctx, "/api/products/"+url.PathEscape(productID)+"/rate", body, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-store")
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: invalid JSON: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
