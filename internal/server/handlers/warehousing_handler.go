package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HopeyCodeDS/mineralflow/internal/store"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/warehousing"
)

// WarehousingHandler forwards warehouse mutations to the warehousing
// subsystem.
type WarehousingHandler struct {
	client *warehousing.Client
	st     *store.Store
	logger *zap.Logger
}

// NewWarehousingHandler constructs the HTTP handler adapter.
func NewWarehousingHandler(client *warehousing.Client, st *store.Store, logger *zap.Logger) *WarehousingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarehousingHandler{client: client, st: st, logger: logger}
}

// Create registers a new warehouse.
func (h *WarehousingHandler) Create(c *gin.Context) {
	var req warehousing.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid warehouse payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.client.Create(c.Request.Context(), req); err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.Warehouses)
	c.Status(http.StatusCreated)
}

// AddMaterial books material into a warehouse.
func (h *WarehousingHandler) AddMaterial(c *gin.Context) {
	var req warehousing.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid material payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.client.AddMaterial(c.Request.Context(), c.Param("id"), req); err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.Warehouses)
	c.Status(http.StatusCreated)
}

// RemoveMaterial books material out of a warehouse.
func (h *WarehousingHandler) RemoveMaterial(c *gin.Context) {
	if err := h.client.RemoveMaterial(c.Request.Context(), c.Param("id"), c.Param("materialId")); err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.Warehouses)
	c.Status(http.StatusNoContent)
}
