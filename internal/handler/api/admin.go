package api

import (
	"errors"
	"net/http"

	reqdto "notify-dispatch/internal/handler/dto/request"
	resdto "notify-dispatch/internal/handler/dto/response"
	"notify-dispatch/internal/handler/httperr"
	"notify-dispatch/internal/handler/middleware"
	"notify-dispatch/internal/usecase/commands"
	"notify-dispatch/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	cmds commands.AdminCommands
	q    queries.NotificationQueries
}

func NewAdminHandler(cmds commands.AdminCommands, q queries.NotificationQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q}
}

// @Summary Set budget limit
// @Description Set the monthly spend limit for a tenant, service and channel
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.SetBudgetLimitRequest true "Budget limit request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/budgets/limit [put]
func (h *AdminHandler) SetBudgetLimit(c *gin.Context) {
	var req reqdto.SetBudgetLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SetBudgetLimit(c.Request.Context(), req); err != nil {
		if errors.Is(err, commands.ErrInvalidBudgetLimit) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid budget limit", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List budget ledgers
// @Description List budget consumption for the tenant in a billing period
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param period query string false "Billing period YYYY-MM (default current)"
// @Success 200 {array} resdto.BudgetLedgerResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/budgets/ledgers [get]
func (h *AdminHandler) Ledgers(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}
	ledgers, err := h.q.ListLedgers(c.Request.Context(), tenantID, c.Query("period"))
	if err != nil {
		if errors.Is(err, queries.ErrInvalidPeriod) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid period", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ledgers": resdto.FromLedgerList(ledgers)})
}

// @Summary Upsert retry policy
// @Description Create or replace the retry policy for a tenant and channel
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.UpsertRetryPolicyRequest true "Retry policy request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/retry-policies [put]
func (h *AdminHandler) UpsertRetryPolicy(c *gin.Context) {
	var req reqdto.UpsertRetryPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpsertRetryPolicy(c.Request.Context(), req); err != nil {
		if errors.Is(err, commands.ErrInvalidRetryPolicy) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid retry policy", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create service credential
// @Description Register a credential a service uses to obtain tokens
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCredentialRequest true "Create credential request"
// @Success 201 {object} resdto.CredentialResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/credentials [post]
func (h *AdminHandler) CreateCredential(c *gin.Context) {
	var req reqdto.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateCredential(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid credential", nil)
		case errors.Is(err, commands.ErrDuplicateService):
			httperr.AbortWithError(c, http.StatusConflict, err, "Credential already exists", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}
	c.Header("Location", "/admin/credentials/"+result.ID.String())
	c.JSON(http.StatusCreated, resdto.FromCredentialResult(result))
}

// @Summary Deactivate credential
// @Description Deactivate a credential so it can no longer obtain tokens
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Credential ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/credentials/{id} [delete]
func (h *AdminHandler) DeactivateCredential(c *gin.Context) {
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
	if err := h.cmds.DeactivateCredential(c.Request.Context(), tenantID, id); err != nil {
		if errors.Is(err, commands.ErrCredentialNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
