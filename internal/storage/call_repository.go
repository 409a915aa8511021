package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dcastano/partnerscope/internal/model"
)

// CallRepository persists provider call audit records.
type CallRepository interface {
	Create(ctx context.Context, call *model.ProviderCall) error
	Count(ctx context.Context) (int64, error)
	CountByTool(ctx context.Context, tool string) (int64, error)
	CountFailed(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]model.ProviderCall, error)
}

type sqliteCallRepository struct {
	db *sqlx.DB
}

// NewCallRepository creates a SQLite-backed CallRepository.
func NewCallRepository(db *sqlx.DB) CallRepository {
	return &sqliteCallRepository{db: db}
}

func (r *sqliteCallRepository) Create(ctx context.Context, call *model.ProviderCall) error {
	result, err := r.db.NamedExecContext(ctx, `
		INSERT INTO provider_calls (tool, provider, model, query, success, duration_ms)
		VALUES (:tool, :provider, :model, :query, :success, :duration_ms)
	`, call)
	if err != nil {
		return fmt.Errorf("creating provider call record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	call.ID = id
	return nil
}

func (r *sqliteCallRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM provider_calls")
	return count, err
}

func (r *sqliteCallRepository) CountByTool(ctx context.Context, tool string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM provider_calls WHERE tool = ?", tool)
	return count, err
}

func (r *sqliteCallRepository) CountFailed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM provider_calls WHERE success = 0")
	return count, err
}

func (r *sqliteCallRepository) Recent(ctx context.Context, limit int) ([]model.ProviderCall, error) {
	var calls []model.ProviderCall
	err := r.db.SelectContext(ctx, &calls,
		"SELECT * FROM provider_calls ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent provider calls: %w", err)
	}
	return calls, nil
}
