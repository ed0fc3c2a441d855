package auditlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Entry struct {
	Action      string
	EntityType  string
	EntityID    string
	PerformedBy uuid.UUID
	Details     map[string]any
}

//go:generate mockgen -source=auditlog_service.go -destination=mock/auditlog_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, entry Entry) error
	GetAll(ctx context.Context, action string, page, pageSize int) ([]AuditLogResponse, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auditlog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auditlog.service")
	}
	return &service{repo: repo, logger: l}
}

// BuildRow turns an Entry into a persistable row. Exposed so other services
// can append audit rows inside their own transactions via Repository.WithTx.
func BuildRow(entry Entry) (*AuditLog, error) {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return nil, err
	}
	return &AuditLog{
		ID:          uuid.New(),
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		PerformedBy: entry.PerformedBy,
		Details:     details,
	}, nil
}

func (s *service) Record(ctx context.Context, entry Entry) error {
	row, err := BuildRow(entry)
	if err != nil {
		s.logger.Error("encode audit details failed", zap.String("action", entry.Action), zap.Error(err))
		return err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("append audit log failed",
			zap.String("action", entry.Action),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, action string, page, pageSize int) ([]AuditLogResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total, err := s.repo.Count(ctx, action)
	if err != nil {
		return nil, 0, err
	}

	logs, err := s.repo.List(ctx, action, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = AuditLogResponse{
			ID:          l.ID.String(),
			Action:      l.Action,
			EntityType:  l.EntityType,
			EntityID:    l.EntityID,
			PerformedBy: l.PerformedBy.String(),
			Details:     json.RawMessage(l.Details),
			CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, total, nil
}

// AppendTx writes an audit row inside an existing transaction.
func AppendTx(ctx context.Context, tx *gorm.DB, repo Repository, entry Entry) error {
	row, err := BuildRow(entry)
	if err != nil {
		return err
	}
	return repo.WithTx(tx).Create(ctx, row)
}
