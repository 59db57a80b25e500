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

// DeliveryHandler receives provider webhooks. Providers confirm receipt
// asynchronously, often minutes after the send was accepted.
type DeliveryHandler struct {
	cmds commands.NotificationCommands
}

func NewDeliveryHandler(cmds commands.NotificationCommands) *DeliveryHandler {
	return &DeliveryHandler{cmds: cmds}
}

// @Summary Delivery callback
// @Description Provider webhook confirming a message reached the recipient
// @Tags delivery
// @Accept json
// @Produce json
// @Param request body reqdto.DeliveryCallbackRequest true "Delivery callback"
// @Success 200 {object} resdto.NotificationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /delivery/callbacks [post]
func (h *DeliveryHandler) Callback(c *gin.Context) {
	var req reqdto.DeliveryCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.ConfirmDelivery(c.Request.Context(), req.ProviderMsgID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRecordNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown provider message id", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Not confirmable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromNotificationView(view))
}
