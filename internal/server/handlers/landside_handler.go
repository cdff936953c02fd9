package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HopeyCodeDS/mineralflow/internal/service/normalize"
	"github.com/HopeyCodeDS/mineralflow/internal/store"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/landside"
)

// LandsideHandler forwards truck and appointment mutations to the landside
// subsystem and invalidates the affected collections afterwards.
type LandsideHandler struct {
	client *landside.Client
	st     *store.Store
	logger *zap.Logger
}

// NewLandsideHandler constructs the HTTP handler adapter.
func NewLandsideHandler(client *landside.Client, st *store.Store, logger *zap.Logger) *LandsideHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LandsideHandler{client: client, st: st, logger: logger}
}

// createAppointmentRequest is the public payload. Dates arrive as RFC 3339
// and are re-serialized to the backend's day-first layout on the way out.
type createAppointmentRequest struct {
	LicensePlate  string    `json:"licensePlate" binding:"required"`
	SellerID      string    `json:"sellerId" binding:"required"`
	Material      string    `json:"rawMaterialName" binding:"required"`
	ScheduledTime time.Time `json:"scheduledTime" binding:"required"`
	TruckType     string    `json:"truckType"`
}

// CreateAppointment books a truck appointment.
func (h *LandsideHandler) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid appointment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.client.CreateAppointment(c.Request.Context(), landside.CreateAppointmentRequest{
		LicensePlate:    req.LicensePlate,
		SellerID:        req.SellerID,
		RawMaterialName: req.Material,
		ScheduledTime:   normalize.FormatWireTime(req.ScheduledTime),
		TruckType:       req.TruckType,
	})
	if err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.Appointments, store.Trucks)
	c.Status(http.StatusCreated)
}

// DeleteAppointment cancels an appointment.
func (h *LandsideHandler) DeleteAppointment(c *gin.Context) {
	if err := h.client.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.Appointments, store.Trucks)
	c.Status(http.StatusNoContent)
}

type updateTruckStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateTruckStatus patches one truck's lifecycle status.
func (h *LandsideHandler) UpdateTruckStatus(c *gin.Context) {
	var req updateTruckStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid truck status payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.client.UpdateTruckStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.Trucks, store.Appointments)
	c.Status(http.StatusOK)
}

// DeleteTruck removes a truck record.
func (h *LandsideHandler) DeleteTruck(c *gin.Context) {
	if err := h.client.DeleteTruck(c.Request.Context(), c.Param("id")); err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.Trucks, store.Appointments)
	c.Status(http.StatusNoContent)
}

// TruckMovements passes one truck's movement history through raw.
func (h *LandsideHandler) TruckMovements(c *gin.Context) {
	raw, err := h.client.TruckMovements(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// ArrivalCompliance serves the gate's punctuality figures.
func (h *LandsideHandler) ArrivalCompliance(c *gin.Context) {
	out, err := h.client.ArrivalCompliance(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
