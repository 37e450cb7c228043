package kalshi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type capturedRequest struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		captured.header = r.Header.Clone()
		captured.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestGetMarkets(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, `{
		"markets": [
			{"ticker": "KXBTC15M-25OCT171800-00", "event_ticker": "KXBTC15M-25OCT171800", "status": "active", "yes_bid": 48, "yes_ask": 52, "close_time": "2025-10-17T18:00:00Z"},
			{"ticker": "KXBTC15M-25OCT171815-15", "status": "active"}
		],
		"cursor": "next"
	}`)

	client := NewClient(server.URL, nil, 0)
	resp, err := client.GetMarkets(context.Background(), MarketsParams{SeriesTicker: "KXBTC15M", Status: MarketStatusOpen, Limit: 2})
	if err != nil {
		t.Fatalf("GetMarkets returned error: %v", err)
	}

	if captured.method != http.MethodGet || captured.path != "/trade-api/v2/markets" {
		t.Fatalf("unexpected request %s %s", captured.method, captured.path)
	}
	if captured.query != "limit=2&series_ticker=KXBTC15M&status=open" {
		t.Fatalf("unexpected query: %s", captured.query)
	}
	if captured.header.Get(AccessKey) != "" {
		t.Fatalf("public endpoint should not be signed")
	}
	if len(resp.Markets) != 2 || resp.Markets[0].Ticker != "KXBTC15M-25OCT171800-00" {
		t.Fatalf("unexpected markets: %+v", resp.Markets)
	}
	if resp.Markets[0].YesAsk != 52 || resp.Markets[0].CloseTime.IsZero() {
		t.Fatalf("market fields not decoded: %+v", resp.Markets[0])
	}
	if resp.Cursor != "next" {
		t.Fatalf("unexpected cursor: %s", resp.Cursor)
	}
}

func TestCreateOrderSignsAndEncodes(t *testing.T) {
	server, captured := newTestServer(t, http.StatusCreated, `{"order": {"order_id": "ord-1", "status": "resting", "ticker": "ABC", "side": "yes", "action": "buy", "yes_price": 40}}`)
	signer := newTestSigner(t)

	client := NewClient(server.URL, signer, 0)
	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		Ticker:   "ABC",
		Side:     SideYes,
		Action:   ActionBuy,
		Count:    3,
		Type:     OrderTypeLimit,
		YesPrice: 40,
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.OrderID != "ord-1" || order.Status != "resting" {
		t.Fatalf("unexpected order: %+v", order)
	}

	if captured.method != http.MethodPost || captured.path != "/trade-api/v2/portfolio/orders" {
		t.Fatalf("unexpected request %s %s", captured.method, captured.path)
	}
	if captured.header.Get(AccessKey) != "key-id" {
		t.Fatalf("missing access key header")
	}
	timestamp := captured.header.Get(AccessTimestamp)
	verify(t, signer.PublicKey(), timestamp+"POST/trade-api/v2/portfolio/orders", captured.header.Get(AccessSignature))

	var body map[string]any
	if err := json.Unmarshal(captured.body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["ticker"] != "ABC" || body["side"] != "yes" || body["action"] != "buy" || body["type"] != "limit" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["count"] != float64(3) || body["yes_price"] != float64(40) {
		t.Fatalf("unexpected count/price: %v", body)
	}
	if _, ok := body["no_price"]; ok {
		t.Fatalf("no_price should be omitted: %v", body)
	}
	if id, _ := body["client_order_id"].(string); id == "" {
		t.Fatalf("client_order_id should be generated: %v", body)
	}
}

func TestCreateOrderAPIError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadRequest, `{"error": {"code": "insufficient_balance", "message": "not enough funds"}}`)

	client := NewClient(server.URL, newTestSigner(t), 0)
	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{Ticker: "ABC", Side: SideYes, Action: ActionBuy, Count: 1, Type: OrderTypeLimit, YesPrice: 50})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Code != "insufficient_balance" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestPortfolioEndpointsRequireSigner(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", nil, 0)
	ctx := context.Background()

	if _, err := client.CreateOrder(ctx, CreateOrderRequest{}); !errors.Is(err, ErrAuthUnavailable) {
		t.Fatalf("CreateOrder: expected ErrAuthUnavailable, got %v", err)
	}
	if _, err := client.GetBalance(ctx); !errors.Is(err, ErrAuthUnavailable) {
		t.Fatalf("GetBalance: expected ErrAuthUnavailable, got %v", err)
	}
}

func TestGetBalance(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"balance": 12345, "portfolio_value": 500}`)
	client := NewClient(server.URL, newTestSigner(t), 0)

	balance, err := client.GetBalance(context.Background())
	if err != nil {
		t.Fatalf("GetBalance returned error: %v", err)
	}
	if balance.Balance != 12345 {
		t.Fatalf("unexpected balance: %+v", balance)
	}
	if got := CentsToDollars(balance.Balance).String(); got != "123.45" {
		t.Fatalf("unexpected dollars: %s", got)
	}
}

func TestEndpointFor(t *testing.T) {
	tests := []struct {
		env     string
		want    string
		wantErr bool
	}{
		{env: "", want: ProdEndpoint},
		{env: "prod", want: ProdEndpoint},
		{env: "DEMO", want: DemoEndpoint},
		{env: "staging", wantErr: true},
	}
	for _, tt := range tests {
		got, err := EndpointFor(tt.env)
		if (err != nil) != tt.wantErr {
			t.Fatalf("EndpointFor(%q) error = %v, wantErr %v", tt.env, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("EndpointFor(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}
