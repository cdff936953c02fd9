package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HopeyCodeDS/mineralflow/internal/server/handlers"
	"github.com/HopeyCodeDS/mineralflow/internal/store"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Snapshots   *handlers.SnapshotHandler
	Landside    *handlers.LandsideHandler
	Warehousing *handlers.WarehousingHandler
	Invoicing   *handlers.InvoicingHandler
	Waterside   *handlers.WatersideHandler
	OnSiteCount *handlers.PollHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/trucks", h.Snapshots.Collection(store.Trucks))
		api.GET("/appointments", h.Snapshots.Collection(store.Appointments))
		api.GET("/warehouses", h.Snapshots.Collection(store.Warehouses))
		api.GET("/purchase-orders", h.Snapshots.Collection(store.PurchaseOrders))
		api.GET("/shipping-orders", h.Snapshots.Collection(store.ShippingOrders))
		api.GET("/dashboard", h.Snapshots.Collection(store.Dashboard))
		api.POST("/refresh/:collection", h.Snapshots.Refresh)

		api.POST("/appointments", h.Landside.CreateAppointment)
		api.DELETE("/appointments/:id", h.Landside.DeleteAppointment)
		api.PATCH("/trucks/:id/status", h.Landside.UpdateTruckStatus)
		api.DELETE("/trucks/:id", h.Landside.DeleteTruck)
		api.GET("/trucks/:id/movements", h.Landside.TruckMovements)
		api.GET("/trucks/on-site/count", h.OnSiteCount.State)
		api.GET("/arrival-compliance", h.Landside.ArrivalCompliance)

		api.POST("/warehouses", h.Warehousing.Create)
		api.POST("/warehouses/:id/materials", h.Warehousing.AddMaterial)
		api.DELETE("/warehouses/:id/materials/:materialId", h.Warehousing.RemoveMaterial)

		api.POST("/purchase-orders", h.Invoicing.CreatePurchaseOrder)

		api.POST("/shipping-orders", h.Waterside.Submit)
		api.POST("/shipping-orders/match", h.Waterside.Match)
		api.POST("/inspections/complete", h.Waterside.CompleteInspection)
		api.GET("/inspections/outstanding", h.Waterside.OutstandingInspections)
		api.POST("/bunkering/complete", h.Waterside.CompleteBunkering)
		api.GET("/bunkering/outstanding", h.Waterside.OutstandingBunkering)
		api.GET("/operations-overview", h.Waterside.OperationsOverview)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
