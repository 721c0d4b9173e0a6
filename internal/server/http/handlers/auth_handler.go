package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/quickmart/internal/domain/errors"
	pkgAuth "github.com/polkiloo/quickmart/internal/pkg/auth"
	"github.com/polkiloo/quickmart/internal/server/http/dto"
	"github.com/polkiloo/quickmart/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, dto.Fail("Name, email and password are required"))
		case errors.Is(err, pkgAuth.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, dto.Fail("Password is too long"))
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, dto.Fail("User already exists"))
		default:
			respondError(c, h.logger, err)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusCreated, dto.OK("User registered successfully", dto.AuthResponse{Token: token, User: dto.NewUserResponse(*user)}))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.Fail("Invalid email or password"))
			return
		}
		respondError(c, h.logger, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.OK("Login successful", dto.AuthResponse{Token: token, User: dto.NewUserResponse(*user)}))
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		unauthorized(c)
		return
	}

	user, err := h.facade.Profile(c.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("User not found"))
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("", gin.H{"user": dto.NewUserResponse(*user)}))
}
