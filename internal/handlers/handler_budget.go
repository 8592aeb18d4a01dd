package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
)

// budgetHandler serves budget projections. Per-account aggregations live
// under the account routes.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers routes for budget computations.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budget := rg.Group("/budget")
	{
		budget.POST("/projection", h.monthlyProjection)
	}
}

// monthlyProjection godoc
// @Summary Project a budget over future months
// @Description Folds a starting asset figure through a fixed monthly income and expense total, one row per month.
// @Tags budget
// @Accept  json
// @Produce  json
// @Param   projection body dto.ProjectionRequest true "Projection parameters"
// @Success 200 {object} dto.ProjectionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /budget/projection [post]
func (h *budgetHandler) monthlyProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MonthlyProjection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.budgetService.MonthlyProjection(req))
}
