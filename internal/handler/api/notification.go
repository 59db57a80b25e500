package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "notify-dispatch/internal/handler/dto/request"
	resdto "notify-dispatch/internal/handler/dto/response"
	"notify-dispatch/internal/handler/httperr"
	"notify-dispatch/internal/handler/middleware"
	"notify-dispatch/internal/pkg/jwt"
	"notify-dispatch/internal/usecase/commands"
	"notify-dispatch/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	cmds commands.NotificationCommands
	q    queries.NotificationQueries
}

func NewNotificationHandler(cmds commands.NotificationCommands, q queries.NotificationQueries) *NotificationHandler {
	return &NotificationHandler{cmds: cmds, q: q}
}

// @Summary Send notification
// @Description Submit a notification for dispatch through admission and routing
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SendNotificationRequest true "Send notification request"
// @Success 200 {object} resdto.DispatchResponse "Delivered synchronously or replayed"
// @Success 202 {object} resdto.DispatchResponse "Queued for asynchronous delivery"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} resdto.DispatchResponse "Budget exhausted"
// @Failure 422 {object} map[string]string
// @Failure 429 {object} resdto.DispatchResponse "Rate limit exceeded"
// @Failure 502 {object} resdto.DispatchResponse "Synchronous delivery failed"
// @Router /notifications [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	serviceOrigin, ok2 := middleware.GetServiceOrigin(c)
	if !ok || !ok2 {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}

	var req reqdto.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	// override_quota is honored only for admin-scoped credentials; anyone
	// else gets the normal admission path.
	if req.OverrideQuota {
		claims, _ := middleware.GetClaims(c)
		req.OverrideQuota = claims != nil && claims.HasScope(jwt.ScopeAdmin)
	}

	result, err := h.cmds.Dispatch(c.Request.Context(), req, tenantID, serviceOrigin)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(statusForOutcome(c, result), resdto.FromDispatchResult(result))
}

// statusForOutcome maps the dispatch verdict onto a response code and sets
// Retry-After when the caller was throttled.
func statusForOutcome(c *gin.Context, result *commands.DispatchResult) int {
	switch result.Outcome {
	case commands.OutcomeSent, commands.OutcomeCanceled:
		return http.StatusOK
	case commands.OutcomeQueued:
		return http.StatusAccepted
	case commands.OutcomeDeniedQuota:
		if result.RetryAfter > 0 {
			seconds := int((result.RetryAfter + time.Second - 1) / time.Second)
			c.Header("Retry-After", strconv.Itoa(seconds))
		}
		return http.StatusTooManyRequests
	case commands.OutcomeDeniedBudget:
		return http.StatusPaymentRequired
	default:
		return http.StatusBadGateway
	}
}

// @Summary Get notification
// @Description Get one notification with its delivery state
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} resdto.NotificationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /notifications/{id} [get]
func (h *NotificationHandler) Get(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, queries.ErrNotificationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotificationView(view))
}

// @Summary List notifications
// @Description List tenant notifications with filters and keyset pagination
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param channel query string false "Filter by channel"
// @Param service query string false "Filter by service origin"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.NotificationListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}
	filters := queries.NotificationFilters{
		Status:  c.Query("status"),
		Channel: c.Query("channel"),
		Service: c.Query("service"),
	}
	items, next, err := h.q.List(c.Request.Context(), tenantID, filters, cursorParam(c), limitParam(c))
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, listBody(items, next))
}

// @Summary List dead letters
// @Description List terminally failed notifications eligible for requeue
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.NotificationListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/dead-letters [get]
func (h *NotificationHandler) DeadLetters(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}
	items, next, err := h.q.ListDeadLetters(c.Request.Context(), tenantID, cursorParam(c), limitParam(c))
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, listBody(items, next))
}

// @Summary Cancel notification
// @Description Withdraw a queued notification before a worker picks it up
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Cancel(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), tenantID, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrRecordNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, commands.ErrNotificationNotQueued):
			httperr.AbortWithError(c, http.StatusConflict, err, "No longer queued", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Requeue notification
// @Description Redrive a dead-lettered notification with a fresh attempt budget
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} resdto.NotificationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /notifications/{id}/requeue [post]
func (h *NotificationHandler) Requeue(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.cmds.Requeue(c.Request.Context(), tenantID, id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRecordNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Not requeueable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotificationView(view))
}

func limitParam(c *gin.Context) int {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	return limit
}

func cursorParam(c *gin.Context) *queries.Cursor {
	if after := c.Query("after"); after != "" {
		return &queries.Cursor{After: after}
	}
	return nil
}

func listBody(items []*queries.NotificationListItem, next *queries.Cursor) gin.H {
	body := gin.H{"notifications": resdto.FromNotificationList(items)}
	if next != nil {
		body["next_cursor"] = next.After
	}
	return body
}
