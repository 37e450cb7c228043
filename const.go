package main

import "time"

const (
	// Bitcoin up/down 15-minute series.
	BtcUpDownSeries = "KXBTC15M"

	SellDelay = 5000 * time.Millisecond

	MetricsJob = "kalshibot"
)

const (
	RunModeTrade = "trade"
	RunModeFills = "fills"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)
