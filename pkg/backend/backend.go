// Package backend defines the business-data port the dialogue engine calls
// once an intent's required slots are filled: station lookup, battery swap
// history and subscription status.
package backend

import "context"

// Station is one battery swap station.
type Station struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// SwapRecord is one completed battery swap.
type SwapRecord struct {
	Time      string `json:"time"`
	Station   string `json:"station"`
	BatteryID string `json:"battery_id"`
}

// Subscription is a driver's plan status.
type Subscription struct {
	Status string `json:"status"`
	Expiry string `json:"expiry"`
}

// Backend is the main interface for business-data providers.
type Backend interface {
	// FindNearestStation returns the closest station to a free-form location.
	FindNearestStation(ctx context.Context, location string) (Station, error)

	// GetSwapHistory returns a driver's swaps for a date range, most recent first.
	GetSwapHistory(ctx context.Context, driverID, dateRange string) ([]SwapRecord, error)

	// CheckSubscription returns the driver's current plan status.
	CheckSubscription(ctx context.Context, driverID string) (Subscription, error)
}
