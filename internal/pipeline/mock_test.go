package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/tracking"
)

// --- Tracker Mock ---

type mockTracker struct {
	mock.Mock
}

func (m *mockTracker) Track(ctx context.Context, trackingNumber string) (tracking.Event, error) {
	args := m.Called(ctx, trackingNumber)
	return args.Get(0).(tracking.Event), args.Error(1)
}

// --- Zip Lookup Mock ---

type mockZipLookup struct {
	mock.Mock
}

func (m *mockZipLookup) Lookup(ctx context.Context, zip string) (string, error) {
	args := m.Called(ctx, zip)
	return args.String(0), args.Error(1)
}

// --- Report Writer Mock ---

type mockReportWriter struct {
	mock.Mock
}

func (m *mockReportWriter) Write(rows [][]string, cats tracking.CategoryMap) (string, error) {
	args := m.Called(rows, cats)
	return args.String(0), args.Error(1)
}
