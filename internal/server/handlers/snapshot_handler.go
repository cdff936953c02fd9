package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HopeyCodeDS/mineralflow/internal/store"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/gateway"
)

// snapshotEnvelope is the read-side response shape: the cached value plus
// the metadata a client needs to judge it.
type snapshotEnvelope struct {
	Data       any        `json:"data"`
	DataSource string     `json:"dataSource"`
	FetchedAt  *time.Time `json:"fetchedAt"`
	Stale      bool       `json:"stale"`
	Error      string     `json:"error,omitempty"`
}

func envelope(snap store.Snapshot) snapshotEnvelope {
	env := snapshotEnvelope{
		Data:       snap.Data,
		DataSource: string(snap.DataSource),
		Stale:      snap.Stale,
	}
	if !snap.FetchedAt.IsZero() {
		t := snap.FetchedAt
		env.FetchedAt = &t
	}
	if snap.Err != nil {
		env.Error = snap.Err.Error()
	}
	return env
}

// knownCollections guards the refresh endpoint's path parameter.
var knownCollections = map[store.Collection]bool{
	store.Trucks:         true,
	store.Appointments:   true,
	store.Warehouses:     true,
	store.PurchaseOrders: true,
	store.ShippingOrders: true,
	store.Dashboard:      true,
}

// SnapshotHandler serves cached collection reads and manual refreshes.
type SnapshotHandler struct {
	st     *store.Store
	logger *zap.Logger
}

// NewSnapshotHandler constructs the HTTP handler adapter.
func NewSnapshotHandler(st *store.Store, logger *zap.Logger) *SnapshotHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotHandler{st: st, logger: logger}
}

// Collection returns a handler serving the named collection's snapshot.
func (h *SnapshotHandler) Collection(key store.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := h.st.Get(c.Request.Context(), key)
		if err != nil {
			h.logger.Error("snapshot read failed", zap.String("collection", string(key)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read collection"})
			return
		}
		c.JSON(http.StatusOK, envelope(snap))
	}
}

// Refresh forces a refetch of the collection named in the path.
func (h *SnapshotHandler) Refresh(c *gin.Context) {
	key := store.Collection(c.Param("collection"))
	if !knownCollections[key] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}

	snap, err := h.st.Refresh(c.Request.Context(), key)
	if err != nil {
		h.logger.Error("manual refresh failed", zap.String("collection", string(key)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}
	c.JSON(http.StatusOK, envelope(snap))
}

// writeUpstreamError maps a gateway failure onto an HTTP response. Upstream
// 4xx statuses pass through so the caller sees validation rejections;
// everything else surfaces as a bad gateway.
func writeUpstreamError(c *gin.Context, logger *zap.Logger, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var gwErr *gateway.Error
	if errors.As(err, &gwErr) && gwErr.Kind == gateway.KindProtocol &&
		gwErr.Status >= 400 && gwErr.Status < 500 {
		c.JSON(gwErr.Status, gin.H{"error": gwErr.Body})
		return
	}

	logger.Error("upstream operation failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
}
