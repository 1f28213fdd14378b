package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
	"github.com/Garvkhullar/cashflow4.0-official/internal/middleware"
	"github.com/gin-gonic/gin"
)

const defaultLogPageSize = 50

// gameHandler serves the table-facing game actions.
type gameHandler struct {
	gameService   portssvc.GameSvcFacade
	auditService  portssvc.AuditSvcFacade
	marketService portssvc.MarketSvcFacade
}

func newGameHandler(gs portssvc.GameSvcFacade, as portssvc.AuditSvcFacade, ms portssvc.MarketSvcFacade) *gameHandler {
	return &gameHandler{gameService: gs, auditService: as, marketService: ms}
}

// registerGameRoutes registers the /game routes. rg must already run AuthMiddleware.
func registerGameRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newGameHandler(services.Game, services.Audit, services.Market)

	game := rg.Group("/game")
	{
		game.GET("/state", h.getState)
		game.GET("/logs", h.listLogs)
		game.GET("/deals/:type", h.listDeals)
		game.GET("/cards/:kind", h.listCards)
		game.GET("/market-mode", h.getMarketMode)

		game.POST("/payday", h.payday)
		game.POST("/roll", h.roll)
		game.POST("/deal/:class", h.buyDeal)
		game.POST("/assets/:class/buy", h.buyAsset)
		game.POST("/assets/:class/sell", h.sellAsset)
		game.POST("/freeze", h.freeze)
		game.POST("/loan/borrow", h.borrow)
		game.POST("/loan/repay", h.repay)
		game.POST("/penalty", h.applyPenalty)
		game.POST("/chance", h.applyChance)
		game.POST("/chance/draw", h.drawChance)
		game.POST("/tax/next", h.setTax)
		game.POST("/vacation/toggle", h.toggleVacation)
		game.POST("/counter/:kind", h.toggleCounter)
		game.POST("/cash/update", h.adjustCash)
	}
}

type gameAction func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error)

// runAction resolves the actor, runs the action and writes the ActionResponse.
func (h *gameHandler) runAction(c *gin.Context, name string, action gameAction) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := action(c.Request.Context(), actor)
	if err != nil {
		respondError(c, logger, err, name)
		return
	}

	attrs := []any{slog.String("action", name)}
	if result.Team != nil {
		attrs = append(attrs, slog.String("team_id", result.Team.TeamID), slog.Int64("version", result.Team.Version))
	}
	logger.Info("Game action applied", attrs...)
	c.JSON(http.StatusOK, dto.ToActionResponse(result))
}

// teamAction binds a bare {teamId} body and runs fn for that team.
func (h *gameHandler) teamAction(c *gin.Context, name string, fn func(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error)) {
	var req dto.TeamActionRequest
	if !bindJSON(c, middleware.GetLoggerFromCtx(c.Request.Context()), &req) {
		return
	}
	h.runAction(c, name, func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error) {
		return fn(ctx, actor, req.TeamID)
	})
}

// getState godoc
// @Summary Table snapshot
// @Description Returns every team on the table and the newest log entries. Clients poll this.
// @Tags game
// @Produce json
// @Param tableId query string false "Table ID (admins only; defaults to the caller's table)"
// @Success 200 {object} domain.TableState
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/state [get]
func (h *gameHandler) getState(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	state, err := h.gameService.GetTableState(c.Request.Context(), actor, c.Query("tableId"))
	if err != nil {
		respondError(c, logger, err, "load table state")
		return
	}
	c.JSON(http.StatusOK, state)
}

// listLogs godoc
// @Summary Page through table logs
// @Description Lists log entries newest first. Pass nextCursor from the previous page to continue.
// @Tags game
// @Produce json
// @Param tableId query string false "Table ID (defaults to the caller's table)"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} domain.LogPage
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/logs [get]
func (h *gameHandler) listLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit := defaultLogPageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	page, err := h.auditService.Page(c.Request.Context(), actor, c.Query("tableId"), c.Query("cursor"), limit)
	if err != nil {
		respondError(c, logger, err, "list logs")
		return
	}
	c.JSON(http.StatusOK, page)
}

// listDeals godoc
// @Summary List deals
// @Tags catalog
// @Produce json
// @Param type path string true "Deal class" Enums(small, big)
// @Success 200 {object} dto.ListDealsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/deals/{type} [get]
func (h *gameHandler) listDeals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	class, err := domain.ParseDealClass(c.Param("type"))
	if err != nil {
		respondError(c, logger, err, "list deals")
		return
	}

	deals, err := h.gameService.ListDeals(c.Request.Context(), class)
	if err != nil {
		respondError(c, logger, err, "list deals")
		return
	}
	c.JSON(http.StatusOK, dto.ListDealsResponse{Deals: deals})
}

// listCards godoc
// @Summary List chance or penalty cards
// @Tags catalog
// @Produce json
// @Param kind path string true "Card kind" Enums(chance, penalty)
// @Success 200 {object} dto.ListCardsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/cards/{kind} [get]
func (h *gameHandler) listCards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind, err := domain.ParseCardKind(c.Param("kind"))
	if err != nil {
		respondError(c, logger, err, "list cards")
		return
	}

	cards, err := h.gameService.ListCards(c.Request.Context(), kind)
	if err != nil {
		respondError(c, logger, err, "list cards")
		return
	}
	c.JSON(http.StatusOK, dto.ListCardsResponse{Cards: cards})
}

// getMarketMode godoc
// @Summary Current market mode
// @Tags game
// @Produce json
// @Success 200 {object} dto.MarketModeResponse
// @Security BearerAuth
// @Router /game/market-mode [get]
func (h *gameHandler) getMarketMode(c *gin.Context) {
	mode, err := h.marketService.GetMarketMode(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "read market mode")
		return
	}
	c.JSON(http.StatusOK, dto.MarketModeResponse{Mode: mode})
}

// payday godoc
// @Summary Run payday
// @Description Settles EMIs, expenses, tax and income for one team.
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.TeamActionRequest true "Team"
// @Success 200 {object} dto.ActionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/payday [post]
func (h *gameHandler) payday(c *gin.Context) {
	h.teamAction(c, "payday", h.gameService.Payday)
}

// roll godoc
// @Summary Roll the die
// @Description Rolls 1-6 and reports the board event. Team state is unchanged.
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.TeamActionRequest true "Team"
// @Success 200 {object} dto.ActionResponse
// @Security BearerAuth
// @Router /game/roll [post]
func (h *gameHandler) roll(c *gin.Context) {
	h.teamAction(c, "roll", h.gameService.Roll)
}

// buyDeal godoc
// @Summary Buy a deal
// @Description Buys a catalog deal with a cash down payment and an instalment loan for the rest.
// @Tags game
// @Accept json
// @Produce json
// @Param class path string true "Deal class" Enums(small, big)
// @Param request body dto.BuyDealRequest true "Purchase"
// @Success 200 {object} dto.ActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Frozen or not your team"
// @Failure 409 {object} ErrorResponse "Already owned on this table"
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/deal/{class} [post]
func (h *gameHandler) buyDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	class, err := domain.ParseDealClass(c.Param("class"))
	if err != nil {
		respondError(c, logger, err, "buy deal")
		return
	}
	var req dto.BuyDealRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	h.runAction(c, "buy deal", func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error) {
		return h.gameService.BuyDeal(ctx, actor, class, req)
	})
}

func (h *gameHandler) assetTrade(c *gin.Context, sell bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	class, err := domain.ParseAssetClass(c.Param("class"))
	if err != nil {
		respondError(c, logger, err, "trade asset")
		return
	}
	var req dto.AssetTradeRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	name := fmt.Sprintf("buy %s", class)
	trade := h.gameService.BuyAsset
	if sell {
		name = fmt.Sprintf("sell %s", class)
		trade = h.gameService.SellAsset
	}
	h.runAction(c, name, func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error) {
		return trade(ctx, actor, class, req)
	})
}

// buyAsset godoc
// @Summary Buy stock or crypto
// @Tags game
// @Accept json
// @Produce json
// @Param class path string true "Asset class" Enums(stock, crypto)
// @Param request body dto.AssetTradeRequest true "Trade"
// @Success 200 {object} dto.ActionResponse
// @Failure 403 {object} ErrorResponse "Frozen or not your team"
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/assets/{class}/buy [post]
func (h *gameHandler) buyAsset(c *gin.Context) {
	h.assetTrade(c, false)
}

// sellAsset godoc
// @Summary Sell stock or crypto
// @Tags game
// @Accept json
// @Produce json
// @Param class path string true "Asset class" Enums(stock, crypto)
// @Param request body dto.AssetTradeRequest true "Trade"
// @Success 200 {object} dto.ActionResponse
// @Failure 404 {object} ErrorResponse "No such holding"
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/assets/{class}/sell [post]
func (h *gameHandler) sellAsset(c *gin.Context) {
	h.assetTrade(c, true)
}

// freeze godoc
// @Summary Freeze assets
// @Description Freezes purchases and skips the next two paydays.
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.TeamActionRequest true "Team"
// @Success 200 {object} dto.ActionResponse
// @Security BearerAuth
// @Router /game/freeze [post]
func (h *gameHandler) freeze(c *gin.Context) {
	h.teamAction(c, "freeze", h.gameService.Freeze)
}

// borrow godoc
// @Summary Take a personal loan
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.BorrowRequest true "Loan"
// @Success 200 {object} dto.ActionResponse
// @Security BearerAuth
// @Router /game/loan/borrow [post]
func (h *gameHandler) borrow(c *gin.Context) {
	var req dto.BorrowRequest
	if !bindJSON(c, middleware.GetLoggerFromCtx(c.Request.Context()), &req) {
		return
	}
	h.runAction(c, "borrow", func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error) {
		return h.gameService.Borrow(ctx, actor, req)
	})
}

// repay godoc
// @Summary Repay a loan
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.RepayRequest true "Repayment"
// @Success 200 {object} dto.ActionResponse
// @Failure 422 {object} ErrorResponse "Not enough cash or more than owed"
// @Security BearerAuth
// @Router /game/loan/repay [post]
func (h *gameHandler) repay(c *gin.Context) {
	var req dto.RepayRequest
	if !bindJSON(c, middleware.GetLoggerFromCtx(c.Request.Context()), &req) {
		return
	}
	h.runAction(c, "repay", func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error) {
		return h.gameService.Repay(ctx, actor, req)
	})
}

// applyPenalty godoc
// @Summary Apply a penalty card
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.PenaltyRequest true "Penalty"
// @Success 200 {object} dto.ActionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/penalty [post]
func (h *gameHandler) applyPenalty(c *gin.Context) {
	var req dto.PenaltyRequest
	if !bindJSON(c, middleware.GetLoggerFromCtx(c.Request.Context()), &req) {
		return
	}
	h.runAction(c, "apply penalty", func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error) {
		return h.gameService.ApplyPenalty(ctx, actor, req)
	})
}

// applyChance godoc
// @Summary Apply a chance card
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.ChanceRequest true "Chance"
// @Success 200 {object} dto.ActionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/chance [post]
func (h *gameHandler) applyChance(c *gin.Context) {
	var req dto.ChanceRequest
	if !bindJSON(c, middleware.GetLoggerFromCtx(c.Request.Context()), &req) {
		return
	}
	h.runAction(c, "apply chance", func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error) {
		return h.gameService.ApplyChance(ctx, actor, req)
	})
}

// drawChance godoc
// @Summary Draw a random chance card
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.TeamActionRequest true "Team"
// @Success 200 {object} dto.ActionResponse
// @Failure 404 {object} ErrorResponse "Empty chance deck"
// @Security BearerAuth
// @Router /game/chance/draw [post]
func (h *gameHandler) drawChance(c *gin.Context) {
	h.teamAction(c, "draw chance", h.gameService.DrawChance)
}

// setTax godoc
// @Summary Tax the next payday
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.TeamActionRequest true "Team"
// @Success 200 {object} dto.ActionResponse
// @Security BearerAuth
// @Router /game/tax/next [post]
func (h *gameHandler) setTax(c *gin.Context) {
	h.teamAction(c, "set tax", h.gameService.SetTax)
}

// toggleVacation godoc
// @Summary Start or cancel a vacation
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.VacationRequest true "Vacation"
// @Success 200 {object} dto.ActionResponse
// @Security BearerAuth
// @Router /game/vacation/toggle [post]
func (h *gameHandler) toggleVacation(c *gin.Context) {
	var req dto.VacationRequest
	if !bindJSON(c, middleware.GetLoggerFromCtx(c.Request.Context()), &req) {
		return
	}
	h.runAction(c, "toggle vacation", func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error) {
		return h.gameService.ToggleVacation(ctx, actor, req)
	})
}

// toggleCounter godoc
// @Summary Toggle a future or options position
// @Tags game
// @Accept json
// @Produce json
// @Param kind path string true "Counter" Enums(future, options)
// @Param request body dto.TeamActionRequest true "Team"
// @Success 200 {object} dto.ActionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/counter/{kind} [post]
func (h *gameHandler) toggleCounter(c *gin.Context) {
	counter, err := ledger.ParseCounter(c.Param("kind"))
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "toggle counter")
		return
	}
	h.teamAction(c, "toggle counter", func(ctx context.Context, actor domain.Actor, teamID string) (*domain.ActionResult, error) {
		return h.gameService.ToggleCounter(ctx, actor, teamID, counter)
	})
}

// adjustCash godoc
// @Summary Correct a team's cash
// @Tags game
// @Accept json
// @Produce json
// @Param request body dto.CashUpdateRequest true "Adjustment"
// @Success 200 {object} dto.ActionResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /game/cash/update [post]
func (h *gameHandler) adjustCash(c *gin.Context) {
	var req dto.CashUpdateRequest
	if !bindJSON(c, middleware.GetLoggerFromCtx(c.Request.Context()), &req) {
		return
	}
	h.runAction(c, "adjust cash", func(ctx context.Context, actor domain.Actor) (*domain.ActionResult, error) {
		return h.gameService.AdjustCash(ctx, actor, req)
	})
}
