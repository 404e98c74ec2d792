package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/meta-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

// APIMetricRepository grava o registro de cada chamada à API externa.
// A tabela é insert-only: nunca atualizamos nem lemos no caminho quente.
type APIMetricRepository interface {
	Record(metric *domain.APICallMetric) error
}

type apiMetricRepository struct {
	conn *postgres.Connection
}

func NewAPIMetricRepository(conn *postgres.Connection) APIMetricRepository {
	return &apiMetricRepository{
		conn: conn,
	}
}

func (r *apiMetricRepository) Record(metric *domain.APICallMetric) error {
	query := squirrel.StatementBuilder.
		Insert("meta_api_metrics").
		Columns(
			"account_id", "endpoint", "call_type", "points_used",
			"success", "error_code", "error_message", "created_at",
		).
		Values(
			metric.AccountID,
			metric.Endpoint,
			metric.CallType,
			metric.PointsUsed,
			metric.Success,
			metric.ErrorCode,
			metric.ErrorMessage,
			metric.CreatedAt,
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
