package kalshi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	signer  *Signer
	http    *HTTPClient
	now     func() time.Time
}

// NewClient builds a client against baseURL (scheme and host, no path). A nil
// signer yields a read-only client that can only reach public endpoints.
func NewClient(baseURL string, signer *Signer, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = ProdEndpoint
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  signer,
		http:    NewHTTPClient(timeout),
		now:     time.Now,
	}
}

// EndpointFor maps an environment name to its REST base URL.
func EndpointFor(env string) (string, error) {
	switch strings.ToLower(env) {
	case "", "prod", "production":
		return ProdEndpoint, nil
	case "demo":
		return DemoEndpoint, nil
	default:
		return "", fmt.Errorf("unknown kalshi environment %q", env)
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Signer() *Signer {
	return c.signer
}

func (c *Client) GetMarkets(ctx context.Context, params MarketsParams) (*MarketsResponse, error) {
	values := url.Values{}
	if params.SeriesTicker != "" {
		values.Set("series_ticker", params.SeriesTicker)
	}
	if params.EventTicker != "" {
		values.Set("event_ticker", params.EventTicker)
	}
	if params.Status != "" {
		values.Set("status", params.Status)
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Cursor != "" {
		values.Set("cursor", params.Cursor)
	}
	reqPath := APIPrefix + MarketsEndpoint
	if query := values.Encode(); query != "" {
		reqPath += "?" + query
	}

	var resp MarketsResponse
	if err := c.http.RequestInto(ctx, http.MethodGet, c.baseURL+reqPath, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}
	return &resp, nil
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if req.ClientOrderID == "" {
		req.ClientOrderID = NewClientOrderID()
	}
	var resp orderEnvelope
	if err := c.authed(ctx, http.MethodPost, OrdersEndpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &resp.Order, nil
}

func (c *Client) GetBalance(ctx context.Context) (*Balance, error) {
	var resp Balance
	if err := c.authed(ctx, http.MethodGet, BalanceEndpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &resp, nil
}

func (c *Client) authed(ctx context.Context, method, endpoint string, body, out any) error {
	if c.signer == nil {
		return ErrAuthUnavailable
	}
	reqPath := APIPrefix + endpoint
	headers, err := CreateAuthHeaders(c.signer, method, reqPath, c.now())
	if err != nil {
		return err
	}
	return c.http.RequestInto(ctx, method, c.baseURL+reqPath, headers, body, out)
}
