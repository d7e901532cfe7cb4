package commerce

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

func TestNewZigzagAdapter_MissingPartnerKey(t *testing.T) {
	_, err := NewZigzagAdapter(&ZigzagConfig{}, nil)

	assert.ErrorIs(t, err, ErrZigzagConfigMissingPartnerKey)
	var configErr *channel.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, channel.PlatformCodeZigzag, configErr.Platform)
}

func TestZigzagAdapter_ContractPlaceholders(t *testing.T) {
	adapter, err := NewZigzagAdapter(&ZigzagConfig{PartnerKey: "p"}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, channel.PlatformCodeZigzag, adapter.PlatformCode())
	assert.NoError(t, adapter.Authenticate(ctx))

	orders, err := adapter.FetchOrders(ctx, time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Empty(t, orders)

	// Claims and product statuses are deliberately not implemented: the
	// narrowing interfaces must not be satisfied.
	var asAdapter channel.Adapter = adapter
	_, ok := asAdapter.(channel.ClaimFetcher)
	assert.False(t, ok)
	_, ok = asAdapter.(channel.ProductStatusFetcher)
	assert.False(t, ok)
}

func TestZigzagAdapter_FetchSalesReport(t *testing.T) {
	adapter, err := NewZigzagAdapter(&ZigzagConfig{PartnerKey: "p"}, nil)
	require.NoError(t, err)

	_, err = adapter.FetchSalesReport(context.Background(), channel.Period{})
	assert.ErrorIs(t, err, channel.ErrInvalidPeriod)

	from, _ := time.Parse(time.RFC3339, "2026-08-01T00:00:00Z")
	to, _ := time.Parse(time.RFC3339, "2026-08-31T00:00:00Z")
	report, err := adapter.FetchSalesReport(context.Background(), channel.Period{From: from, To: to})
	require.NoError(t, err)
	assert.True(t, report.TotalSales.IsZero())
	assert.Equal(t, 0, report.OrderCount)
}
