// Package collections binds the subsystem clients, the normalizer and the
// synthetic fallback into the store's registered collections.
package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/HopeyCodeDS/mineralflow/internal/config"
	"github.com/HopeyCodeDS/mineralflow/internal/domain/models"
	"github.com/HopeyCodeDS/mineralflow/internal/service/dashboard"
	"github.com/HopeyCodeDS/mineralflow/internal/service/normalize"
	"github.com/HopeyCodeDS/mineralflow/internal/service/synthetic"
	"github.com/HopeyCodeDS/mineralflow/internal/store"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/invoicing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/landside"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/warehousing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/waterside"
)

// Backends groups the four subsystem clients the collections fetch from.
type Backends struct {
	Landside    *landside.Client
	Warehousing *warehousing.Client
	Invoicing   *invoicing.Client
	Waterside   *waterside.Client
}

// Register wires every cached collection into the store. The five entity
// collections fetch from their backend and fall back to the synthetic
// dataset; the dashboard is derived from the other five and lists them as
// its upstream, so invalidating any of them cascades to it.
func Register(st *store.Store, cfg config.CacheConfig, b Backends) {
	policy := func(interval time.Duration) store.Policy {
		return store.Policy{
			StaleAfter:      cfg.StaleAfter,
			GCAfter:         cfg.GCAfter,
			RefreshInterval: interval,
			MaxRetries:      cfg.MaxRetries,
			RetryDelay:      cfg.RetryDelay,
		}
	}

	st.Register(store.Trucks, policy(cfg.TrucksInterval),
		func(ctx context.Context) (any, error) {
			wire, err := b.Landside.Trucks(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.Trucks(wire), nil
		},
		func() any { return synthetic.Fallback().Trucks },
		store.Dashboard)

	st.Register(store.Appointments, policy(cfg.AppointmentsInterval),
		func(ctx context.Context) (any, error) {
			wire, err := b.Landside.Appointments(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.Appointments(wire), nil
		},
		func() any { return synthetic.Fallback().Appointments },
		store.Dashboard)

	st.Register(store.Warehouses, policy(cfg.WarehousesInterval),
		func(ctx context.Context) (any, error) {
			wire, err := b.Warehousing.Overview(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.Warehouses(wire), nil
		},
		func() any { return synthetic.Fallback().Warehouses },
		store.Dashboard)

	st.Register(store.PurchaseOrders, policy(cfg.PurchaseOrdersInterval),
		func(ctx context.Context) (any, error) {
			wire, err := b.Invoicing.PurchaseOrders(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.PurchaseOrders(wire), nil
		},
		func() any { return synthetic.Fallback().PurchaseOrders },
		store.Dashboard)

	st.Register(store.ShippingOrders, policy(cfg.ShippingOrdersInterval),
		func(ctx context.Context) (any, error) {
			wire, err := b.Waterside.ShippingOrders(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.ShippingOrders(wire), nil
		},
		func() any { return synthetic.Fallback().ShippingOrders },
		store.Dashboard)

	st.Register(store.Dashboard, policy(cfg.DashboardInterval),
		dashboardFetcher(st),
		func() any {
			fb := synthetic.Fallback()
			return dashboard.Compute(fb.Trucks, fb.Warehouses, fb.PurchaseOrders, fb.ShippingOrders, fb.Appointments, time.Now())
		})
}

// dashboardFetcher composes the five entity collections into dashboard data.
// Each upstream read goes through the store, so it reuses cached values when
// fresh and shares in-flight fetches when not.
func dashboardFetcher(st *store.Store) store.Fetcher {
	return func(ctx context.Context) (any, error) {
		trucks, err := collect[[]models.Truck](ctx, st, store.Trucks)
		if err != nil {
			return nil, err
		}
		appointments, err := collect[[]models.Appointment](ctx, st, store.Appointments)
		if err != nil {
			return nil, err
		}
		warehouses, err := collect[[]models.Warehouse](ctx, st, store.Warehouses)
		if err != nil {
			return nil, err
		}
		purchaseOrders, err := collect[[]models.PurchaseOrder](ctx, st, store.PurchaseOrders)
		if err != nil {
			return nil, err
		}
		shippingOrders, err := collect[[]models.ShippingOrder](ctx, st, store.ShippingOrders)
		if err != nil {
			return nil, err
		}

		return dashboard.Compute(trucks, warehouses, purchaseOrders, shippingOrders, appointments, time.Now()), nil
	}
}

// collect reads one collection's snapshot and asserts its concrete type. A
// snapshot with no data at all yields the zero value rather than an error;
// the dashboard degrades to empty sections instead of failing whole.
func collect[T any](ctx context.Context, st *store.Store, key store.Collection) (T, error) {
	var zero T
	snap, err := st.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if snap.Data == nil {
		return zero, nil
	}
	v, ok := snap.Data.(T)
	if !ok {
		return zero, fmt.Errorf("collection %q holds %T", key, snap.Data)
	}
	return v, nil
}
