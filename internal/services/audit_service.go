package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/repositories"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// AuditService exposes the action log for inspection. Reads of the log are
// themselves audited.
type AuditService struct {
	actions repositories.ActionRepository
	log     *ActionLogService
}

func NewAuditService(actions repositories.ActionRepository, log *ActionLogService) *AuditService {
	return &AuditService{actions: actions, log: log}
}

func (s *AuditService) GetAllActions(ctx context.Context, meta RequestMeta) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionGetAllActions, "audit/audit_service/GetAllActions", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("GetAllActions: unable to open action")
		return openFailedEnvelope()
	}

	details, err := s.actions.List(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("GetAllActions: list failed")
		return closeFailed(ctx, s.log, action, constants.CodeNoActionsFound, "Unable to retrieve actions")
	}
	if len(details) == 0 {
		return closeFailed(ctx, s.log, action, constants.CodeNoActionsFound, "No actions found")
	}

	data := make([]dtos.ActionData, 0, len(details))
	for _, d := range details {
		data = append(data, actionData(d))
	}
	return closeComplete(ctx, s.log, action, constants.CodeRetrieved, "Actions retrieved successfully", data)
}

func (s *AuditService) GetAction(ctx context.Context, meta RequestMeta, actionID uuid.UUID) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionGetAction, "audit/audit_service/GetAction", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("GetAction: unable to open action")
		return openFailedEnvelope()
	}

	detail, err := s.actions.GetDetail(ctx, actionID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeNoActionsFound, "Action not found")
	}
	return closeComplete(ctx, s.log, action, constants.CodeRetrieved, "Action retrieved successfully", actionData(detail))
}

func actionData(d *models.ActionDetail) dtos.ActionData {
	return dtos.ActionData{
		ID:          d.ID.String(),
		Reference:   d.Reference,
		SourceIP:    d.SourceIP,
		Request:     d.Request,
		Code:        d.StatusCode,
		Trace:       d.Trace,
		Description: d.Description,
		User:        d.Username,
		ActionType:  d.ActionTypeName,
		State:       d.StateName,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
