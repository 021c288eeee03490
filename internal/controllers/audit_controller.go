package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lawrenceChege/order-management/internal/services"
	"github.com/lawrenceChege/order-management/internal/utils"
)

type AuditController struct {
	auditService *services.AuditService
}

func NewAuditController(as *services.AuditService) *AuditController {
	return &AuditController{auditService: as}
}

// GetAllActionsHandler => GET /api/v1/actions
func (c *AuditController) GetAllActionsHandler(w http.ResponseWriter, r *http.Request) {
	env := c.auditService.GetAllActions(r.Context(), buildMeta(r, nil))
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// GetActionHandler => GET /api/v1/actions/{id}
func (c *AuditController) GetActionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, mux.Vars(r), "id")
	if !ok {
		return
	}
	env := c.auditService.GetAction(r.Context(), buildMeta(r, nil), id)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}
