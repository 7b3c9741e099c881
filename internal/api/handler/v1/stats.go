package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equicrm/equicrm/internal/api/handler/v1/response"
	"github.com/equicrm/equicrm/internal/service"
)

type StatsService interface {
	Dashboard(ctx context.Context) (service.Dashboard, error)
	Overview(ctx context.Context) (service.Overview, error)
}

type StatsHandler struct {
	svc StatsService
}

func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{
		svc: svc,
	}
}

// HandleDashboard godoc
// @Summary      Facility dashboard numbers
// @Tags         stats
// @Produce      json
// @Success      200      {object}   response.Envelope
// @Failure      500      {object}   response.Err
// @Router       /stats/dashboard [get]
func (h *StatsHandler) HandleDashboard(ctx *gin.Context) {
	dashboard, err := h.svc.Dashboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.Dashboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(dashboard))
}

// HandleOverview godoc
// @Summary      Per-status entity counts
// @Tags         stats
// @Produce      json
// @Success      200      {object}   response.Envelope
// @Failure      500      {object}   response.Err
// @Router       /stats/overview [get]
func (h *StatsHandler) HandleOverview(ctx *gin.Context) {
	overview, err := h.svc.Overview(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleOverview -> h.svc.Overview -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(overview))
}
