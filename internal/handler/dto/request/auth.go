package request

import (
	"github.com/google/uuid"
)

type TokenRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	Service  string    `json:"service" binding:"required"`
	Secret   string    `json:"secret" binding:"required,min=16"`
}
