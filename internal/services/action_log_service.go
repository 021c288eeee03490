package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/repositories"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// RequestMeta carries the contextual details of the HTTP request an
// operation is handling: the authenticated actor, the client IP and the raw
// payload archived on the audit row.
type RequestMeta struct {
	UserID         *uuid.UUID
	SourceIP       string
	Payload        map[string]interface{}
	ClientViewable bool
}

// ActionLogService brackets every auditable mutation: LogAction opens an
// audit row before any business logic runs, CompleteAction / MarkActionFailed
// close it with a terminal status. Per action the lifecycle is
// Active -> {Complete, Failed}; a terminal row is never transitioned again.
type ActionLogService struct {
	actions     repositories.ActionRepository
	actionTypes repositories.ActionTypeRepository
	states      repositories.StateRepository
	users       repositories.EUserRepository
}

func NewActionLogService(
	actions repositories.ActionRepository,
	actionTypes repositories.ActionTypeRepository,
	states repositories.StateRepository,
	users repositories.EUserRepository,
) *ActionLogService {
	return &ActionLogService{
		actions:     actions,
		actionTypes: actionTypes,
		states:      states,
		users:       users,
	}
}

// LogAction opens an action of the given type. The reference is generated
// and the row persisted inside one atomic unit; on any failure nothing is
// persisted and the caller must short-circuit its own operation.
func (s *ActionLogService) LogAction(ctx context.Context, actionType, trace string, meta RequestMeta) (*models.Action, error) {
	if trace == "" {
		utils.Logger.Error("LogAction: trace not provided")
		return nil, utils.ErrMissingTrace
	}
	at, err := s.actionTypes.GetByName(ctx, actionType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Logger.Errorf("LogAction: action type %q not found", actionType)
			return nil, utils.ErrActionTypeNotFound
		}
		utils.Logger.WithError(err).Error("LogAction: action type lookup failed")
		return nil, err
	}

	userID := meta.UserID
	if userID != nil {
		if _, err := s.users.GetByID(ctx, *userID); err != nil {
			// Lenient: an unknown actor is logged but does not abort the
			// open; the action is recorded without a user.
			utils.Logger.WithError(err).Warnf("LogAction: actor %s not found", *userID)
			userID = nil
		}
	}

	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		utils.Logger.WithError(err).Error("LogAction: Active state not found")
		return nil, utils.ErrStateNotFound
	}

	action := &models.Action{
		ID:               uuid.New(),
		UserID:           userID,
		ActionTypeID:     at.ID,
		Request:          meta.Payload,
		StatusCode:       constants.CodePendingStatus,
		Trace:            trace,
		IsClientViewable: meta.ClientViewable,
		StateID:          active.ID,
	}
	if meta.SourceIP != "" {
		ip := meta.SourceIP
		action.SourceIP = &ip
	}

	if err := s.actions.CreateWithReference(ctx, action); err != nil {
		utils.Logger.WithError(err).Errorf("LogAction: failed to persist %q action", actionType)
		return nil, err
	}
	return action, nil
}

// CompleteAction marks the action as Complete with the given outcome.
// A caller-supplied override state is honored, so operations can archive a
// non-default terminal state when they need to.
func (s *ActionLogService) CompleteAction(ctx context.Context, action *models.Action, code, description string, override *models.State) (*models.Action, error) {
	if err := s.checkCloseArgs(action, code, description); err != nil {
		return nil, err
	}
	target := override
	if target == nil {
		complete, err := s.states.GetByName(ctx, models.StateComplete)
		if err != nil {
			utils.Logger.WithError(err).Error("CompleteAction: Complete state not found")
			return nil, utils.ErrStateNotFound
		}
		target = complete
	}
	return s.close(ctx, action, code, description, target)
}

// MarkActionFailed marks the action as Failed. Unlike CompleteAction there
// is no state override: failure classification cannot be spoofed.
func (s *ActionLogService) MarkActionFailed(ctx context.Context, action *models.Action, code, description string) (*models.Action, error) {
	if err := s.checkCloseArgs(action, code, description); err != nil {
		return nil, err
	}
	failed, err := s.states.GetByName(ctx, models.StateFailed)
	if err != nil {
		utils.Logger.WithError(err).Error("MarkActionFailed: Failed state not found")
		return nil, utils.ErrStateNotFound
	}
	return s.close(ctx, action, code, description, failed)
}

func (s *ActionLogService) checkCloseArgs(action *models.Action, code, description string) error {
	if code == "" {
		utils.Logger.Error("close action: code not provided")
		return utils.ErrMissingStatusCode
	}
	if description == "" {
		utils.Logger.Error("close action: description not provided")
		return utils.ErrMissingDescription
	}
	if action == nil {
		utils.Logger.Error("close action: action not provided")
		return utils.ErrMissingAction
	}
	return nil
}

func (s *ActionLogService) close(ctx context.Context, action *models.Action, code, description string, target *models.State) (*models.Action, error) {
	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		utils.Logger.WithError(err).Error("close action: Active state not found")
		return nil, utils.ErrStateNotFound
	}
	updated, err := s.actions.CloseIfActive(ctx, action.ID, active.ID, target.ID, code, description)
	if err != nil {
		utils.Logger.WithError(err).Errorf("close action: failed to transition %s to %s", action.ID, target.Name)
		return nil, err
	}
	return updated, nil
}
