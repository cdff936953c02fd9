package collections

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HopeyCodeDS/mineralflow/internal/config"
	"github.com/HopeyCodeDS/mineralflow/internal/domain/models"
	"github.com/HopeyCodeDS/mineralflow/internal/service/dashboard"
	"github.com/HopeyCodeDS/mineralflow/internal/store"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/gateway"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/invoicing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/landside"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/warehousing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/waterside"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		StaleAfter: time.Minute,
		RetryDelay: time.Millisecond,
	}
}

func jsonServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			body = "[]"
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testBackends(t *testing.T, landsideTrucks string, truckCalls *atomic.Int32) Backends {
	t.Helper()

	land := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/trucks" {
			if truckCalls != nil {
				truckCalls.Add(1)
			}
			_, _ = w.Write([]byte(landsideTrucks))
			return
		}
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(land.Close)

	wh := jsonServer(t, nil)
	inv := jsonServer(t, nil)
	wat := jsonServer(t, nil)

	newGW := func(url string) *gateway.Client {
		return gateway.New(url, "test-token", time.Second, nil)
	}

	return Backends{
		Landside:    landside.NewClient(newGW(land.URL)),
		Warehousing: warehousing.NewClient(newGW(wh.URL)),
		Invoicing:   invoicing.NewClient(newGW(inv.URL)),
		Waterside:   waterside.NewClient(newGW(wat.URL)),
	}
}

func TestRegisteredCollectionsFetchAndNormalize(t *testing.T) {
	trucksJSON := `[{"id":"t-1","licensePlate":"KDG001","material":"Iron_Ore","status":"GATE","sellerId":"seller-1"}]`
	b := testBackends(t, trucksJSON, nil)

	st := store.New(nil)
	Register(st, testCacheConfig(), b)

	snap, err := st.Get(context.Background(), store.Trucks)
	require.NoError(t, err)
	require.NoError(t, snap.Err)
	assert.Equal(t, store.SourceLive, snap.DataSource)

	trucks, ok := snap.Data.([]models.Truck)
	require.True(t, ok)
	require.Len(t, trucks, 1)
	assert.Equal(t, models.MaterialIronOre, trucks[0].Material)
	assert.Equal(t, models.TruckAtGate, trucks[0].Status)
}

func TestDashboardDerivesFromEntityCollections(t *testing.T) {
	trucksJSON := `[{"id":"t-1","licensePlate":"KDG001","material":"gypsum","status":"GATE"}]`
	b := testBackends(t, trucksJSON, nil)

	st := store.New(nil)
	Register(st, testCacheConfig(), b)

	snap, err := st.Get(context.Background(), store.Dashboard)
	require.NoError(t, err)
	require.NoError(t, snap.Err)

	data, ok := snap.Data.(dashboard.Data)
	require.True(t, ok)
	assert.Equal(t, 1, data.Metrics.TrucksOnSite)
	assert.Equal(t, 1, data.Metrics.TrucksAtGate)
	require.NotEmpty(t, data.Alerts)
	assert.Equal(t, models.AlertTruckAtGate, data.Alerts[0].Category)
}

func TestInvalidatingTrucksCascadesToDashboard(t *testing.T) {
	var truckCalls atomic.Int32
	b := testBackends(t, "[]", &truckCalls)

	st := store.New(nil)
	Register(st, testCacheConfig(), b)

	_, err := st.Get(context.Background(), store.Dashboard)
	require.NoError(t, err)
	require.Equal(t, int32(1), truckCalls.Load())

	// Fresh reads reuse the cache.
	_, err = st.Get(context.Background(), store.Dashboard)
	require.NoError(t, err)
	require.Equal(t, int32(1), truckCalls.Load())

	st.Invalidate(store.Trucks)

	_, err = st.Get(context.Background(), store.Dashboard)
	require.NoError(t, err)
	assert.Equal(t, int32(2), truckCalls.Load())
}

func TestEntityCollectionFallsBackToSynthetic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	gw := gateway.New(srv.URL, "", 100*time.Millisecond, nil)
	b := Backends{
		Landside:    landside.NewClient(gw),
		Warehousing: warehousing.NewClient(gw),
		Invoicing:   invoicing.NewClient(gw),
		Waterside:   waterside.NewClient(gw),
	}

	st := store.New(nil)
	Register(st, testCacheConfig(), b)

	snap, err := st.Get(context.Background(), store.Trucks)
	require.NoError(t, err)
	assert.Equal(t, store.SourceMock, snap.DataSource)
	assert.Error(t, snap.Err)

	trucks, ok := snap.Data.([]models.Truck)
	require.True(t, ok)
	assert.NotEmpty(t, trucks)
}
