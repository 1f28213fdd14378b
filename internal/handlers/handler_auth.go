package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
	"github.com/Garvkhullar/cashflow4.0-official/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles registration and logins.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public auth routes. Every route shares the login limiter.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(authService)

	auth := r.Group("/api/v1/auth")
	if loginLimiter != nil {
		auth.Use(middleware.RateLimit(loginLimiter))
	}
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.loginTable)
		auth.POST("/team-login", h.loginTeam)
		auth.POST("/admin-login", h.loginAdmin)
	}
}

// register godoc
// @Summary Register a table
// @Description Creates a table login and its teams. Team codes are only returned here.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterTableRequest true "Table credentials and optional team names"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Failure 429 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterTableRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	resp, err := h.authService.RegisterTable(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "register table")
		return
	}

	logger.Info("Table registered", slog.String("table_id", resp.TableID), slog.Int("teams", len(resp.Teams)))
	c.JSON(http.StatusCreated, resp)
}

// loginTable godoc
// @Summary Table login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TableLoginRequest true "Table credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) loginTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TableLoginRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	resp, err := h.authService.LoginTable(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "log in table")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// loginTeam godoc
// @Summary Team login
// @Description Logs a single team in with its name and 4-digit code.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TeamLoginRequest true "Team name and code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/team-login [post]
func (h *authHandler) loginTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TeamLoginRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	resp, err := h.authService.LoginTeam(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "log in team")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// loginAdmin godoc
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/admin-login [post]
func (h *authHandler) loginAdmin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdminLoginRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	resp, err := h.authService.LoginAdmin(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "log in admin")
		return
	}
	c.JSON(http.StatusOK, resp)
}
