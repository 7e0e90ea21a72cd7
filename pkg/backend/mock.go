package backend

import (
	"context"
	"sync"
)

// Mock is a canned-data Backend for demos and tests.
type Mock struct {
	mu  sync.Mutex
	Err error // returned from every call when set

	// StationCalls records locations looked up, HistoryCalls date ranges.
	StationCalls []string
	HistoryCalls []string
}

// NewMock creates a mock backend with deterministic canned data.
func NewMock() *Mock {
	return &Mock{}
}

// FindNearestStation fabricates a station named after the location.
func (m *Mock) FindNearestStation(ctx context.Context, location string) (Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StationCalls = append(m.StationCalls, location)
	if m.Err != nil {
		return Station{}, m.Err
	}
	return Station{
		Name:    "Station " + location,
		Address: "Main Road, " + location,
	}, nil
}

// GetSwapHistory returns a single canned swap record.
func (m *Mock) GetSwapHistory(ctx context.Context, driverID, dateRange string) ([]SwapRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.HistoryCalls = append(m.HistoryCalls, dateRange)
	if m.Err != nil {
		return nil, m.Err
	}
	return []SwapRecord{
		{Time: "2026-01-22 14:30", Station: "Station A", BatteryID: "B123"},
	}, nil
}

// CheckSubscription returns an active canned subscription.
func (m *Mock) CheckSubscription(ctx context.Context, driverID string) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return Subscription{}, m.Err
	}
	return Subscription{Status: "active", Expiry: "2026-12-31"}, nil
}
