package auth

import (
	"errors"

	"github.com/coreinspect/core/internal/middleware"
	"github.com/coreinspect/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", h.login)
	a.POST("/logout", h.logout)
	a.POST("/refresh-token", h.refresh)
	a.POST("/password-reset", authMW, h.passwordReset)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	pair, err := h.svc.Login(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) || errors.Is(err, errInactiveAccount) {
			response.Forbidden(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, pair)
}

func (h *Handler) logout(c *gin.Context) {
	var dto RefreshDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := h.svc.Logout(c.Request.Context(), dto.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}
	response.OKMsg(c, "Logged out", nil)
}

func (h *Handler) refresh(c *gin.Context) {
	var dto RefreshDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), dto.RefreshToken)
	if err != nil {
		if errors.Is(err, errInvalidRefresh) || errors.Is(err, errInactiveAccount) {
			response.Forbidden(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, pair)
}

func (h *Handler) passwordReset(c *gin.Context) {
	var dto PasswordResetDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	err := h.svc.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			response.Forbidden(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}
	response.OKMsg(c, "Password updated", nil)
}
