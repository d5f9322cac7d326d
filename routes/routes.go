package routes

import (
	"net/http"

	"github.com/paccolajoao/yazio-consumer/controllers"
	"github.com/paccolajoao/yazio-consumer/middlewares"
	"github.com/paccolajoao/yazio-consumer/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	client := services.NewYazioClient()
	hub := services.NewProgressHub()
	hydration := services.NewHydrationService(client)
	exportSvc := services.NewExportService(hydration, services.NewCsvExporter(), hub)

	authCtl := controllers.NewAuthController(services.NewAuthService(client))
	exportCtl := controllers.NewExportController(exportSvc, hydration)
	realtimeCtl := controllers.NewRealtimeController(hub)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
	}

	// Protected export routes
	export := r.Group("/export")
	export.Use(middlewares.YazioAuth())
	{
		export.POST("", exportCtl.RunExport)
		export.GET("/days", exportCtl.GetDays)
		export.GET("/records", exportCtl.ListRecords)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.YazioAuth())
	{
		ws.GET("/progress", realtimeCtl.ProgressWS)
	}

	return r
}
