package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HopeyCodeDS/mineralflow/internal/service/normalize"
	"github.com/HopeyCodeDS/mineralflow/internal/store"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/waterside"
)

// WatersideHandler forwards vessel operations to the waterside subsystem.
type WatersideHandler struct {
	client *waterside.Client
	st     *store.Store
	logger *zap.Logger
}

// NewWatersideHandler constructs the HTTP handler adapter.
func NewWatersideHandler(client *waterside.Client, st *store.Store, logger *zap.Logger) *WatersideHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatersideHandler{client: client, st: st, logger: logger}
}

type submitShippingOrderRequest struct {
	SONumber               string    `json:"soNumber" binding:"required"`
	VesselNumber           string    `json:"vesselNumber" binding:"required"`
	POReference            string    `json:"poReference" binding:"required"`
	CustomerNumber         string    `json:"customerNumber" binding:"required"`
	EstimatedArrivalDate   time.Time `json:"estimatedArrivalDate" binding:"required"`
	EstimatedDepartureDate time.Time `json:"estimatedDepartureDate" binding:"required"`
}

// Submit registers a new shipping order.
func (h *WatersideHandler) Submit(c *gin.Context) {
	var req submitShippingOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid shipping order payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.client.Submit(c.Request.Context(), waterside.SubmitShippingOrderRequest{
		SONumber:               req.SONumber,
		VesselNumber:           req.VesselNumber,
		POReference:            req.POReference,
		CustomerNumber:         req.CustomerNumber,
		EstimatedArrivalDate:   normalize.FormatWireTime(req.EstimatedArrivalDate),
		EstimatedDepartureDate: normalize.FormatWireTime(req.EstimatedDepartureDate),
	})
	if err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.ShippingOrders)
	c.Status(http.StatusCreated)
}

type signatureRequest struct {
	ShippingOrderID string `json:"shippingOrderId" binding:"required"`
	Signature       string `json:"signature" binding:"required"`
}

// Match links a shipping order to its purchase order via foreman signature.
func (h *WatersideHandler) Match(c *gin.Context) {
	var req signatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid match payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.client.MatchShippingOrder(c.Request.Context(), req.ShippingOrderID, req.Signature); err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.ShippingOrders)
	c.Status(http.StatusOK)
}

// CompleteInspection signs off an inspection.
func (h *WatersideHandler) CompleteInspection(c *gin.Context) {
	var req signatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid inspection payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.client.CompleteInspection(c.Request.Context(), req.ShippingOrderID, req.Signature); err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.ShippingOrders)
	c.Status(http.StatusOK)
}

// CompleteBunkering signs off a bunkering operation.
func (h *WatersideHandler) CompleteBunkering(c *gin.Context) {
	var req signatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid bunkering payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.client.CompleteBunkering(c.Request.Context(), req.ShippingOrderID, req.Signature); err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.ShippingOrders)
	c.Status(http.StatusOK)
}

// OutstandingInspections lists vessels still awaiting inspection, normalized.
func (h *WatersideHandler) OutstandingInspections(c *gin.Context) {
	wire, err := h.client.OutstandingInspections(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, normalize.ShippingOrders(wire))
}

// OutstandingBunkering lists vessels still awaiting bunkering, normalized.
func (h *WatersideHandler) OutstandingBunkering(c *gin.Context) {
	wire, err := h.client.OutstandingBunkering(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, normalize.ShippingOrders(wire))
}

// OperationsOverview passes the captain's overview through raw.
func (h *WatersideHandler) OperationsOverview(c *gin.Context) {
	raw, err := h.client.OperationsOverview(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
