package api

import (
	"errors"
	"net/http"

	reqdto "notify-dispatch/internal/handler/dto/request"
	resdto "notify-dispatch/internal/handler/dto/response"
	"notify-dispatch/internal/handler/httperr"
	"notify-dispatch/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds commands.AuthCommands
}

func NewAuthHandler(cmds commands.AuthCommands) *AuthHandler {
	return &AuthHandler{cmds: cmds}
}

// @Summary Issue service token
// @Description Exchange a service credential for a scoped bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.TokenRequest true "Token request"
// @Success 200 {object} resdto.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req reqdto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.IssueToken(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid credentials", nil)
		case errors.Is(err, commands.ErrCredentialInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Credential is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTokenResult(result))
}
