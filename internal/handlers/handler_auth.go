package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbooks/smallbooks_backend/internal/apperrors"
	portssvc "github.com/smallbooks/smallbooks_backend/internal/core/ports/services"
	"github.com/smallbooks/smallbooks_backend/internal/dto"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
)

// authHandler handles wallet-based login and first-boot team setup.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	userService portssvc.UserSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade, us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{authService: as, userService: us}
}

// registerAuthRoutes registers the public authentication routes. Bootstrap
// must stay outside the JWT middleware: on a fresh deployment no user exists
// yet, so no token can be minted until the key person is registered here.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, userService portssvc.UserSvcFacade) {
	h := newAuthHandler(authService, userService)

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/bootstrap", h.bootstrap)
		auth.GET("/identity", h.serverIdentity)
	}
}

// login godoc
// @Summary Log in with a wallet signature
// @Description Verifies a signed nonce through the wallet service and issues a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Signed login challenge"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Signature rejected"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login rejected", slog.String("public_key", req.PublicKey))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login rejected"})
		} else {
			logger.Error("Failed to log in", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// bootstrap godoc
// @Summary Register the first team member
// @Description Creates the key person on a fresh deployment. Works only while no user exists; afterwards team members are added through the authenticated /users endpoint.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "Key person details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Team already initialised"
// @Router /auth/bootstrap [post]
func (h *authHandler) bootstrap(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Bootstrap", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.BootstrapUser(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to bootstrap key person", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bootstrap key person"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// serverIdentity godoc
// @Summary Get the server wallet's public key
// @Tags auth
// @Produce  json
// @Success 200 {object} dto.ServerIdentityResponse
// @Router /auth/identity [get]
func (h *authHandler) serverIdentity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	publicKey, err := h.authService.ServerIdentity(c.Request.Context())
	if err != nil {
		logger.Error("Failed to fetch server identity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch server identity"})
		return
	}

	c.JSON(http.StatusOK, dto.ServerIdentityResponse{PublicKey: publicKey})
}
