package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/paccolajoao/yazio-consumer/middlewares"
	"github.com/paccolajoao/yazio-consumer/services"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Svc       *services.ExportService
	Hydration *services.HydrationService
}

func NewExportController(svc *services.ExportService, hydration *services.HydrationService) *ExportController {
	return &ExportController{Svc: svc, Hydration: hydration}
}

type ExportInput struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	OutputDir string `json:"output_dir"`
}

func (h *ExportController) RunExport(c *gin.Context) {
	token, ok := middlewares.TokenFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input ExportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	outputDir := input.OutputDir
	if outputDir == "" {
		outputDir = os.Getenv("EXPORT_OUTPUT_DIR")
	}
	if outputDir == "" {
		outputDir = "exports"
	}

	result, err := h.Svc.Run(c.Request.Context(), token, start, end, outputDir)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAuthFailed):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDays returns the canonical day logs without writing artifacts.
func (h *ExportController) GetDays(c *gin.Context) {
	token, ok := middlewares.TokenFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	days, err := h.Hydration.GetDaysData(c.Request.Context(), token, from, to)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAuthFailed):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *ExportController) ListRecords(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.Svc.ListRecords(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
