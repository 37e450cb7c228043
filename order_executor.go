package main

import (
	"context"
	"errors"

	"Kalshibot/kalshi"

	"github.com/rs/zerolog"
)

// Resting sells are avoided: the exit leg crosses any bid down to the floor.
const sellFloorCents = kalshi.MinPriceCents

type ExecutionOptions struct {
	DryRun bool
}

// OrderResult carries either an order id or the reason placement failed.
type OrderResult struct {
	OrderID string
	Err     error
}

func (r OrderResult) OK() bool {
	return r.Err == nil
}

func orderFailed(err error) OrderResult {
	return OrderResult{Err: err}
}

// Exchange is what the quick trade needs from a venue.
type Exchange interface {
	FetchOpenMarkets(ctx context.Context, seriesTicker string, limit int) ([]kalshi.Market, error)
	PlaceBuyOrder(ctx context.Context, ticker string, side kalshi.Side, count, priceCents int, opts ExecutionOptions) OrderResult
	PlaceSellOrder(ctx context.Context, ticker string, side kalshi.Side, count int, opts ExecutionOptions) OrderResult
}

// OrderClient is the subset of *kalshi.Client the executor calls.
type OrderClient interface {
	GetMarkets(ctx context.Context, params kalshi.MarketsParams) (*kalshi.MarketsResponse, error)
	CreateOrder(ctx context.Context, req kalshi.CreateOrderRequest) (*kalshi.Order, error)
}

type OrderExecutor struct {
	client OrderClient
	log    zerolog.Logger
}

func NewOrderExecutor(client OrderClient, log zerolog.Logger) *OrderExecutor {
	return &OrderExecutor{client: client, log: log}
}

func (e *OrderExecutor) FetchOpenMarkets(ctx context.Context, seriesTicker string, limit int) ([]kalshi.Market, error) {
	resp, err := e.client.GetMarkets(ctx, kalshi.MarketsParams{
		SeriesTicker: seriesTicker,
		Status:       kalshi.MarketStatusOpen,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}
	return resp.Markets, nil
}

func (e *OrderExecutor) PlaceBuyOrder(ctx context.Context, ticker string, side kalshi.Side, count, priceCents int, opts ExecutionOptions) OrderResult {
	req := kalshi.CreateOrderRequest{
		Ticker:      ticker,
		Side:        side,
		Action:      kalshi.ActionBuy,
		Count:       count,
		Type:        kalshi.OrderTypeLimit,
		TimeInForce: kalshi.TimeInForceGTC,
	}
	setPrice(&req, priceCents)
	return e.place(ctx, req, opts)
}

func (e *OrderExecutor) PlaceSellOrder(ctx context.Context, ticker string, side kalshi.Side, count int, opts ExecutionOptions) OrderResult {
	req := kalshi.CreateOrderRequest{
		Ticker:      ticker,
		Side:        side,
		Action:      kalshi.ActionSell,
		Count:       count,
		Type:        kalshi.OrderTypeLimit,
		TimeInForce: kalshi.TimeInForceIOC,
		ReduceOnly:  true,
	}
	setPrice(&req, sellFloorCents)
	return e.place(ctx, req, opts)
}

func (e *OrderExecutor) place(ctx context.Context, req kalshi.CreateOrderRequest, opts ExecutionOptions) (result OrderResult) {
	req.ClientOrderID = kalshi.NewClientOrderID()
	price := req.YesPrice
	if req.Side == kalshi.SideNo {
		price = req.NoPrice
	}
	defer func() {
		label := "ok"
		if !result.OK() {
			label = "error"
		} else if opts.DryRun {
			label = "dry_run"
		}
		OrdersTotal.WithLabelValues(string(req.Action), string(req.Side), label).Inc()
	}()

	if opts.DryRun {
		e.log.Info().
			Str("ticker", req.Ticker).
			Str("action", string(req.Action)).
			Str("side", string(req.Side)).
			Int("count", req.Count).
			Str("price", kalshi.CentsToDollars(int64(price)).StringFixed(2)).
			Msg("[dry] order not sent")
		return OrderResult{OrderID: "dry-" + req.ClientOrderID}
	}

	order, err := e.client.CreateOrder(ctx, req)
	if err != nil {
		return orderFailed(err)
	}
	if order == nil || order.OrderID == "" {
		return orderFailed(errors.New("order response has no order id"))
	}
	e.log.Debug().
		Str("order_id", order.OrderID).
		Str("client_order_id", req.ClientOrderID).
		Str("status", order.Status).
		Int("filled", order.FillCount).
		Str("max_cost", kalshi.OrderCost(req.Count, price).StringFixed(2)).
		Msgf("%s order accepted", req.Action)
	return OrderResult{OrderID: order.OrderID}
}

func setPrice(req *kalshi.CreateOrderRequest, priceCents int) {
	if req.Side == kalshi.SideNo {
		req.NoPrice = priceCents
		return
	}
	req.YesPrice = priceCents
}
