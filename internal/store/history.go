package store

import (
	"context"
	"fmt"

	"github.com/certichain/certichain/internal/logger"
	"github.com/certichain/certichain/models"
)

// HistoryRepository persists the local activity log: one row per completed
// operation (issue, revoke, verify, scan, transfer). The log is advisory
// only; the chain remains the source of truth.
type HistoryRepository interface {
	Append(ctx context.Context, entry models.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error)
	ByCert(ctx context.Context, certID string) ([]models.HistoryEntry, error)
}

type historyRepository struct {
	*DB
	logger *logger.Logger
}

func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	return &historyRepository{
		DB:     db,
		logger: logger,
	}
}

func (h *historyRepository) Append(ctx context.Context, entry models.HistoryEntry) error {
	res, err := h.DB.ExecContext(ctx, saveHistoryEntry,
		string(entry.Action),
		entry.CertID,
		entry.TxHash,
		entry.Detail,
		entry.CreatedAt,
	)
	if err != nil {
		h.logger.Err(err).
			Str("func", "historyRepository.Append").
			Str("action", string(entry.Action)).
			Str("cert_id", entry.CertID).
			Msg("failed to insert history entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrHistoryNotSaved
	}

	return nil
}

func (h *historyRepository) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := h.DB.QueryContext(ctx, getRecentHistory, limit)
	if err != nil {
		h.logger.Err(err).
			Str("func", "historyRepository.Recent").
			Msg("failed to query recent history")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

func (h *historyRepository) ByCert(ctx context.Context, certID string) ([]models.HistoryEntry, error) {
	rows, err := h.DB.QueryContext(ctx, getHistoryByCert, certID)
	if err != nil {
		h.logger.Err(err).
			Str("func", "historyRepository.ByCert").
			Str("cert_id", certID).
			Msg("failed to query history for certificate")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanHistoryRows(rows rowScanner) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry

	for rows.Next() {
		var entry models.HistoryEntry
		var action string

		if err := rows.Scan(
			&entry.ID,
			&action,
			&entry.CertID,
			&entry.TxHash,
			&entry.Detail,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entry.Action = models.HistoryAction(action)

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
