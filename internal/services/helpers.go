package services

import (
	"context"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// closeFailed marks the action Failed and builds the failure envelope. The
// close outcome is logged but never masks the original failure code.
func closeFailed(ctx context.Context, log *ActionLogService, action *models.Action, code, message string) *dtos.Envelope {
	if _, err := log.MarkActionFailed(ctx, action, code, message); err != nil {
		utils.Logger.WithError(err).Errorf("failed to mark action %s failed", action.ID)
	}
	return &dtos.Envelope{Code: code, Message: message, ActionID: action.ID.String()}
}

// closeComplete marks the action Complete and builds the success envelope.
func closeComplete(ctx context.Context, log *ActionLogService, action *models.Action, code, message string, data any) *dtos.Envelope {
	if _, err := log.CompleteAction(ctx, action, code, message, nil); err != nil {
		utils.Logger.WithError(err).Errorf("failed to complete action %s", action.ID)
	}
	return &dtos.Envelope{Code: code, Message: message, Data: data, ActionID: action.ID.String()}
}

// openFailedEnvelope is the response when the audit row itself could not be
// opened: nothing was persisted, so there is no action id to report. The
// message is fixed; the operation detail lives in the caller's log line.
func openFailedEnvelope() *dtos.Envelope {
	return &dtos.Envelope{Code: constants.CodeActionLogFailed, Message: "Failed to log action"}
}
