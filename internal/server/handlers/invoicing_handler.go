package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HopeyCodeDS/mineralflow/internal/service/normalize"
	"github.com/HopeyCodeDS/mineralflow/internal/store"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/invoicing"
)

// InvoicingHandler forwards purchase-order mutations to the invoicing
// subsystem.
type InvoicingHandler struct {
	client *invoicing.Client
	st     *store.Store
	logger *zap.Logger
}

// NewInvoicingHandler constructs the HTTP handler adapter.
func NewInvoicingHandler(client *invoicing.Client, st *store.Store, logger *zap.Logger) *InvoicingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoicingHandler{client: client, st: st, logger: logger}
}

type createOrderLineRequest struct {
	LineNumber      int     `json:"lineNumber" binding:"required"`
	RawMaterialName string  `json:"rawMaterialName" binding:"required"`
	AmountInTons    float64 `json:"amountInTons" binding:"required,gt=0"`
	PricePerTon     float64 `json:"pricePerTon" binding:"required,gt=0"`
}

type createPurchaseOrderRequest struct {
	PurchaseOrderNumber string                   `json:"purchaseOrderNumber" binding:"required"`
	CustomerNumber      string                   `json:"customerNumber" binding:"required"`
	CustomerName        string                   `json:"customerName" binding:"required"`
	SellerID            string                   `json:"sellerId" binding:"required"`
	SellerName          string                   `json:"sellerName"`
	OrderDate           time.Time                `json:"orderDate" binding:"required"`
	OrderLines          []createOrderLineRequest `json:"orderLines" binding:"required,min=1,dive"`
}

// CreatePurchaseOrder submits a new purchase order and returns the created
// record normalized.
func (h *InvoicingHandler) CreatePurchaseOrder(c *gin.Context) {
	var req createPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid purchase order payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lines := make([]invoicing.CreateOrderLineRequest, 0, len(req.OrderLines))
	for _, l := range req.OrderLines {
		lines = append(lines, invoicing.CreateOrderLineRequest{
			LineNumber:      l.LineNumber,
			RawMaterialName: l.RawMaterialName,
			AmountInTons:    l.AmountInTons,
			PricePerTon:     l.PricePerTon,
		})
	}

	created, err := h.client.CreatePurchaseOrder(c.Request.Context(), invoicing.CreatePurchaseOrderRequest{
		PurchaseOrderNumber: req.PurchaseOrderNumber,
		CustomerNumber:      req.CustomerNumber,
		CustomerName:        req.CustomerName,
		SellerID:            req.SellerID,
		SellerName:          req.SellerName,
		OrderDate:           normalize.FormatWireTime(req.OrderDate),
		OrderLines:          lines,
	})
	if err != nil {
		writeUpstreamError(c, h.logger, err)
		return
	}

	h.st.Invalidate(store.PurchaseOrders)
	c.JSON(http.StatusCreated, normalize.PurchaseOrder(*created))
}
