package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string, healthCheck func(context.Context) error) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		if healthCheck != nil {
			if err := healthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/employees", handler.listEmployees)
		protected.POST("/employees", handler.createEmployee)
		protected.GET("/employees/:id", handler.getEmployee)
		protected.PUT("/employees/:id", handler.updateEmployee)
		protected.PUT("/employees/:id/status", handler.updateEmployeeStatus)

		protected.GET("/vehicles", handler.listVehicles)
		protected.POST("/vehicles", handler.createVehicle)
		protected.GET("/vehicles/:id", handler.getVehicle)
		protected.PUT("/vehicles/:id", handler.updateVehicle)
		protected.PUT("/vehicles/:id/status", handler.updateVehicleStatus)

		protected.GET("/sectors", handler.listSectors)
		protected.POST("/sectors", handler.createSector)
		protected.PUT("/sectors/:id", handler.updateSector)

		protected.GET("/requests", handler.listRequests)
		protected.POST("/requests", handler.submitRequest)
		protected.GET("/requests/:id", handler.getRequest)
		protected.POST("/requests/:id/decision", handler.decideRequest)

		protected.GET("/trips", handler.listTrips)
		protected.GET("/trips/:id", handler.getTrip)
		protected.POST("/trips/:id/start", handler.startTrip)
		protected.POST("/trips/:id/finish", handler.finishTrip)
		protected.POST("/trips/:id/cancel", handler.cancelTrip)
		protected.POST("/trips/:id/refuelings", handler.addRefueling)

		protected.GET("/maintenance", handler.listMaintenance)
		protected.POST("/maintenance", handler.createMaintenance)
		protected.GET("/maintenance/:id", handler.getMaintenance)
		protected.PUT("/maintenance/:id/status", handler.updateMaintenanceStatus)
	}

	return router
}
