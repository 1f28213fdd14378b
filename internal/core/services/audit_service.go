package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils/pagination"
	"github.com/google/uuid"
)

// auditWriteTimeout bounds a detached log write.
const auditWriteTimeout = 5 * time.Second

// maxLogPage caps a single page of table logs.
const maxLogPage = 200

type auditService struct {
	BaseService
	logRepo portsrepo.TableLogRepositoryFacade
	now     func() time.Time
}

// NewAuditService creates the table log writer.
func NewAuditService(logRepo portsrepo.TableLogRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{logRepo: logRepo, now: time.Now}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Append writes each message as its own entry. It survives a cancelled request
// context and only logs failures.
func (s *auditService) Append(ctx context.Context, tableID string, messages ...string) {
	if len(messages) == 0 {
		return
	}
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	// Entries written in one call share a base time but stay strictly ordered.
	base := s.now().UTC().Truncate(time.Millisecond)
	for i, msg := range messages {
		entry := domain.TableLog{
			LogID:     uuid.NewString(),
			TableID:   tableID,
			Message:   msg,
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		}
		if err := s.logRepo.AppendLog(writeCtx, entry); err != nil {
			s.LogError(ctx, err, "Failed to append table log",
				slog.String("table_id", tableID),
				slog.String("message", msg))
		}
	}
}

func (s *auditService) Tail(ctx context.Context, tableID string, limit int) ([]domain.TableLog, error) {
	logs, err := s.logRepo.ListLogsByTable(ctx, tableID, nil, clampLimit(limit))
	if err != nil {
		s.LogError(ctx, err, "Failed to read table logs", slog.String("table_id", tableID))
		return nil, err
	}
	if logs == nil {
		logs = []domain.TableLog{}
	}
	return logs, nil
}

func (s *auditService) Page(ctx context.Context, actor domain.Actor, tableID, cursor string, limit int) (*domain.LogPage, error) {
	if tableID == "" {
		tableID = actor.TableID
	}
	if err := s.AuthorizeTable(ctx, actor, tableID); err != nil {
		return nil, err
	}
	var before *domain.LogCursor
	if cursor != "" {
		c, err := pagination.DecodeLogCursor(cursor)
		if err != nil {
			return nil, validationError(err)
		}
		before = &c
	}
	limit = clampLimit(limit)
	logs, err := s.logRepo.ListLogsByTable(ctx, tableID, before, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to page table logs", slog.String("table_id", tableID))
		return nil, err
	}
	if logs == nil {
		logs = []domain.TableLog{}
	}
	return &domain.LogPage{Logs: logs, NextCursor: pagination.NextLogCursor(logs, limit)}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return min(limit, maxLogPage)
}
