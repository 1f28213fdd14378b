package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
	"github.com/Garvkhullar/cashflow4.0-official/internal/middleware"
	"github.com/gin-gonic/gin"
)

type adminHandler struct {
	marketService portssvc.MarketSvcFacade
}

// registerAdminRoutes registers game-master routes. rg must already restrict the role.
func registerAdminRoutes(rg *gin.RouterGroup, marketService portssvc.MarketSvcFacade) {
	h := &adminHandler{marketService: marketService}
	rg.POST("/market-mode", h.setMarketMode)
}

// setMarketMode godoc
// @Summary Switch the market mode
// @Description Persists the mode and rewrites the payday multiplier and loan rate of every team.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.MarketModeRequest true "Mode (bull-stop and bear-stop restore normal)"
// @Success 200 {object} domain.GameConfig
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/market-mode [post]
func (h *adminHandler) setMarketMode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	var req dto.MarketModeRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	cfg, err := h.marketService.SetMarketMode(c.Request.Context(), actor, req.Mode)
	if err != nil {
		respondError(c, logger, err, "set market mode")
		return
	}

	logger.Info("Market mode changed", slog.String("mode", string(cfg.MarketMode)))
	c.JSON(http.StatusOK, cfg)
}
