package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/meta-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

// SyncLogRepository grava o resultado de cada execução de sincronização.
// Append-only: o histórico serve para auditoria, não para o loop de sync.
type SyncLogRepository interface {
	Save(log *domain.SyncLog) error
	GetLatestByType(syncType string) (*domain.SyncLog, error)
}

type syncLogRepository struct {
	conn *postgres.Connection
}

func NewSyncLogRepository(conn *postgres.Connection) SyncLogRepository {
	return &syncLogRepository{
		conn: conn,
	}
}

func (r *syncLogRepository) Save(log *domain.SyncLog) error {
	errorsJSON, err := marshalNullable(log.Errors)
	if err != nil {
		return fmt.Errorf("erro ao serializar errors para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("meta_sync_logs").
		Columns(
			"run_id", "type", "date", "total_accounts", "processed_accounts",
			"successful_updates", "failed_updates", "errors", "success", "completed_at",
		).
		Values(
			log.RunID,
			log.Type,
			log.Date.Format("2006-01-02"),
			log.TotalAccounts,
			log.ProcessedAccounts,
			log.SuccessfulUpdates,
			log.FailedUpdates,
			errorsJSON,
			log.Success,
			log.CompletedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncLogRepository) GetLatestByType(syncType string) (*domain.SyncLog, error) {
	query, args, err := squirrel.
		Select(`sl.id, sl.run_id, sl.type, sl.date, sl.total_accounts, sl.processed_accounts,
			sl.successful_updates, sl.failed_updates, sl.errors, sl.success, sl.completed_at`).
		From("meta_sync_logs sl").
		Where(squirrel.Eq{"sl.type": syncType}).
		OrderBy("sl.completed_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	syncLog := &domain.SyncLog{}
	var errorsJSON []byte

	row := r.conn.QueryRow(query, args...)
	err = row.Scan(
		&syncLog.ID,
		&syncLog.RunID,
		&syncLog.Type,
		&syncLog.Date,
		&syncLog.TotalAccounts,
		&syncLog.ProcessedAccounts,
		&syncLog.SuccessfulUpdates,
		&syncLog.FailedUpdates,
		&errorsJSON,
		&syncLog.Success,
		&syncLog.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear sync log: %w", err)
	}

	if errorsJSON != nil {
		if err := json.Unmarshal(errorsJSON, &syncLog.Errors); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de errors: %w", err)
		}
	}

	return syncLog, nil
}
