// Package shopclient is the HTTP client for the shop API, used by devices
// that also keep a local cart while anonymous.
package shopclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SetToken installs the access token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s failed with status: %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/register", credentials{username, password}, nil)
}

// Login authenticates and installs the returned access token on the
// client, so subsequent cart calls run as this user.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var res loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", credentials{username, password}, &res); err != nil {
		return "", err
	}
	c.token = res.AccessToken
	return res.AccessToken, nil
}

// CartLine mirrors the server's display view of one cart line.
type CartLine struct {
	ItemID   string  `json:"item_id"`
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

func (c *Client) GetCart(ctx context.Context) ([]CartLine, error) {
	var lines []CartLine
	if err := c.do(ctx, http.MethodGet, "/api/v1/cart", nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) AddDelta(ctx context.Context, itemID string, delta int) error {
	body := map[string]interface{}{"item_id": itemID, "delta": delta}
	return c.do(ctx, http.MethodPost, "/api/v1/cart", body, nil)
}

func (c *Client) SetQuantity(ctx context.Context, itemID string, qty int) error {
	body := map[string]interface{}{"quantity": qty}
	return c.do(ctx, http.MethodPut, "/api/v1/cart/"+itemID, body, nil)
}

func (c *Client) Remove(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/cart/"+itemID, nil, nil)
}

// Lines returns the authoritative server mapping, in the shape the local
// store persists.
func (c *Client) Lines(ctx context.Context) (map[string]int, error) {
	lines, err := c.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(lines))
	for _, l := range lines {
		out[l.ItemID] = l.Quantity
	}
	return out, nil
}
