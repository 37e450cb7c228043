package main

import (
	"context"

	"Kalshibot/kalshi"

	"github.com/rs/zerolog"
)

type FillWatcher struct {
	log zerolog.Logger
}

func NewFillWatcher(log zerolog.Logger) *FillWatcher {
	return &FillWatcher{log: log}
}

// OnMessage is the websocket callback. Anything but a fill is logged at debug.
func (f *FillWatcher) OnMessage(message []byte) {
	fill, ok, err := kalshi.ParseFill(message)
	if err != nil {
		f.log.Warn().Err(err).Msg("undecodable websocket message")
		return
	}
	if !ok {
		f.log.Debug().RawJSON("message", message).Msg("websocket message")
		return
	}

	FillsTotal.WithLabelValues(string(fill.Action), string(fill.Side)).Inc()
	f.log.Info().
		Str("ticker", fill.MarketTicker).
		Str("order_id", fill.OrderID).
		Str("action", string(fill.Action)).
		Str("side", string(fill.Side)).
		Int("count", fill.Count).
		Str("price", kalshi.CentsToDollars(int64(fill.Price())).StringFixed(2)).
		Bool("taker", fill.IsTaker).
		Msg("Fill")
}

func (f *FillWatcher) Run(ctx context.Context, baseURL string, signer *kalshi.Signer) error {
	feed, err := kalshi.NewWebSocketFeed(baseURL, signer, []string{kalshi.FillChannel}, f.OnMessage)
	if err != nil {
		return err
	}
	f.log.Info().Str("url", feed.URL()).Msg("Watching fills")
	err = feed.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
