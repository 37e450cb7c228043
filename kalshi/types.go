package kalshi

import (
	"fmt"
	"strings"
	"time"
)

type Side string

type Action string

type OrderType string

type TimeInForce string

const (
	SideYes Side = "yes"
	SideNo  Side = "no"

	ActionBuy  Action = "buy"
	ActionSell Action = "sell"

	OrderTypeLimit OrderType = "limit"

	TimeInForceGTC TimeInForce = "good_till_canceled"
	TimeInForceIOC TimeInForce = "immediate_or_cancel"
)

func ParseSide(value string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(value))) {
	case SideYes:
		return SideYes, nil
	case SideNo:
		return SideNo, nil
	default:
		return "", fmt.Errorf("side must be 'yes' or 'no', got %q", value)
	}
}

type Market struct {
	Ticker      string    `json:"ticker"`
	EventTicker string    `json:"event_ticker"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	YesBid      int       `json:"yes_bid"`
	YesAsk      int       `json:"yes_ask"`
	NoBid       int       `json:"no_bid"`
	NoAsk       int       `json:"no_ask"`
	LastPrice   int       `json:"last_price"`
	Volume      int64     `json:"volume"`
	OpenTime    time.Time `json:"open_time"`
	CloseTime   time.Time `json:"close_time"`
}

type MarketsParams struct {
	SeriesTicker string
	EventTicker  string
	Status       string
	Limit        int
	Cursor       string
}

type MarketsResponse struct {
	Markets []Market `json:"markets"`
	Cursor  string   `json:"cursor"`
}

type CreateOrderRequest struct {
	Ticker        string      `json:"ticker"`
	ClientOrderID string      `json:"client_order_id"`
	Side          Side        `json:"side"`
	Action        Action      `json:"action"`
	Count         int         `json:"count"`
	Type          OrderType   `json:"type"`
	YesPrice      int         `json:"yes_price,omitempty"`
	NoPrice       int         `json:"no_price,omitempty"`
	TimeInForce   TimeInForce `json:"time_in_force,omitempty"`
	ReduceOnly    bool        `json:"reduce_only,omitempty"`
}

type Order struct {
	OrderID        string    `json:"order_id"`
	ClientOrderID  string    `json:"client_order_id"`
	Ticker         string    `json:"ticker"`
	Side           Side      `json:"side"`
	Action         Action    `json:"action"`
	Type           OrderType `json:"type"`
	Status         string    `json:"status"`
	YesPrice       int       `json:"yes_price"`
	NoPrice        int       `json:"no_price"`
	FillCount      int       `json:"fill_count"`
	RemainingCount int       `json:"remaining_count"`
	CreatedTime    time.Time `json:"created_time"`
}

type orderEnvelope struct {
	Order Order `json:"order"`
}

type Balance struct {
	// Cents.
	Balance        int64 `json:"balance"`
	PortfolioValue int64 `json:"portfolio_value"`
}

type Fill struct {
	TradeID      string `json:"trade_id"`
	OrderID      string `json:"order_id"`
	MarketTicker string `json:"market_ticker"`
	IsTaker      bool   `json:"is_taker"`
	Side         Side   `json:"side"`
	Action       Action `json:"action"`
	YesPrice     int    `json:"yes_price"`
	NoPrice      int    `json:"no_price"`
	Count        int    `json:"count"`
	Ts           int64  `json:"ts"`
}

// Price returns the fill price in cents for the side that was traded.
func (f Fill) Price() int {
	if f.Side == SideNo {
		return f.NoPrice
	}
	return f.YesPrice
}
