package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studiobella/spa-admin-api/internal/httperr"
	ucStats "github.com/studiobella/spa-admin-api/internal/usecase/stats"
)

type StatsHandler struct {
	dashboardUC *ucStats.GetDashboard
	log         *zap.Logger
}

func NewStatsHandler(dashboardUC *ucStats.GetDashboard, log *zap.Logger) *StatsHandler {
	return &StatsHandler{dashboardUC: dashboardUC, log: log}
}

// Dashboard returns the aggregated back-office metrics, evaluated against the
// server clock at request time.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboardUC.Execute(c.Request.Context(), time.Now())
	if err != nil {
		h.log.Error("failed to build dashboard", zap.Error(err))
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
