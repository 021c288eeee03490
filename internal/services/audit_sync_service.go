package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/repositories"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// defaultSyncBatchSize caps how many actions one sync pass exports.
const defaultSyncBatchSize = 500

// ActionExporter ships closed audit rows to an external sink. The default
// exporter writes them to the application log, which is enough for log
// shipping setups that tail it.
type ActionExporter interface {
	Export(ctx context.Context, actions []*models.Action) error
}

type logExporter struct{}

func NewLogExporter() ActionExporter { return logExporter{} }

func (logExporter) Export(_ context.Context, actions []*models.Action) error {
	for _, a := range actions {
		payload, err := json.Marshal(a)
		if err != nil {
			return err
		}
		utils.Logger.WithField("audit_export", string(payload)).Infof("exported action %s", a.Reference)
	}
	return nil
}

// AuditSyncService periodically exports terminal actions that have not yet
// been shipped. Active actions are never exported: they may still change.
type AuditSyncService struct {
	actions   repositories.ActionRepository
	states    repositories.StateRepository
	exporter  ActionExporter
	batchSize int
}

func NewAuditSyncService(
	actions repositories.ActionRepository,
	states repositories.StateRepository,
	exporter ActionExporter,
) *AuditSyncService {
	return &AuditSyncService{
		actions:   actions,
		states:    states,
		exporter:  exporter,
		batchSize: defaultSyncBatchSize,
	}
}

// SyncActions exports one batch of unsynced terminal actions and marks them
// synced only after the exporter accepts them. Returns how many were shipped.
func (s *AuditSyncService) SyncActions(ctx context.Context) (int, error) {
	complete, err := s.states.GetByName(ctx, models.StateComplete)
	if err != nil {
		return 0, err
	}
	failed, err := s.states.GetByName(ctx, models.StateFailed)
	if err != nil {
		return 0, err
	}

	batch, err := s.actions.ListUnsynced(ctx, []uuid.UUID{complete.ID, failed.ID}, s.batchSize)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err := s.exporter.Export(ctx, batch); err != nil {
		utils.Logger.WithError(err).Error("audit sync: export failed, batch left unsynced")
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(batch))
	for _, a := range batch {
		ids = append(ids, a.ID)
	}
	if err := s.actions.MarkSynced(ctx, ids); err != nil {
		return 0, err
	}
	utils.Logger.Infof("audit sync: exported %d actions", len(batch))
	return len(batch), nil
}
