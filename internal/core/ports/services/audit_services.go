package services

import (
	"context"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
)

// AuditSvcFacade writes and reads the per-table activity log.
type AuditSvcFacade interface {
	// Append stores each message as its own entry. Failures are logged, never returned.
	Append(ctx context.Context, tableID string, messages ...string)

	// Tail returns up to limit entries, newest first.
	Tail(ctx context.Context, tableID string, limit int) ([]domain.TableLog, error)

	// Page returns one page of older entries for an actor allowed to view the table.
	Page(ctx context.Context, actor domain.Actor, tableID, cursor string, limit int) (*domain.LogPage, error)
}
