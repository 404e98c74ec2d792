package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/meta-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

const (
	dailyMetricsTable = "meta_daily_metrics dm"
)

type DailyMetricRepository interface {
	GetByAccountIDAndDate(accountID string, date time.Time) (*domain.DailyMetric, error)
	GetByDateRange(accountID string, startDate, endDate time.Time) ([]*domain.DailyMetric, error)
	ListByDate(date time.Time) ([]*domain.DailyMetric, error)
	SaveOrUpdate(metric *domain.DailyMetric) error
}

type dailyMetricRepository struct {
	conn *postgres.Connection
}

func NewDailyMetricRepository(conn *postgres.Connection) DailyMetricRepository {
	return &dailyMetricRepository{
		conn: conn,
	}
}

const dailyMetricColumns = `dm.account_id, dm.date, dm.impressions, dm.clicks, dm.spend,
	dm.reach, dm.conversions, dm.last_updated`

func (r *dailyMetricRepository) GetByAccountIDAndDate(accountID string, date time.Time) (*domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select(dailyMetricColumns).
		From(dailyMetricsTable).
		Where(squirrel.Eq{"dm.account_id": accountID, "dm.date": date.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	metric, err := scanDailyMetric(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear métrica diária: %w", err)
	}

	return metric, nil
}

func (r *dailyMetricRepository) GetByDateRange(accountID string, startDate, endDate time.Time) ([]*domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select(dailyMetricColumns).
		From(dailyMetricsTable).
		Where(squirrel.Eq{"dm.account_id": accountID}).
		Where(squirrel.GtOrEq{"dm.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"dm.date": endDate.Format("2006-01-02")}).
		OrderBy("dm.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.DailyMetric, 0)
	for rows.Next() {
		metric, err := scanDailyMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métricas diárias: %w", err)
		}
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

// ListByDate retorna as métricas de todas as contas para um único dia
func (r *dailyMetricRepository) ListByDate(date time.Time) ([]*domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select(dailyMetricColumns).
		From(dailyMetricsTable).
		Where(squirrel.Eq{"dm.date": date.Format("2006-01-02")}).
		OrderBy("dm.account_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.DailyMetric, 0)
	for rows.Next() {
		metric, err := scanDailyMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métricas diárias: %w", err)
		}
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

func (r *dailyMetricRepository) SaveOrUpdate(metric *domain.DailyMetric) error {
	conversionsJSON, err := marshalNullable(metric.Conversions)
	if err != nil {
		return fmt.Errorf("erro ao serializar conversions para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("meta_daily_metrics").
		Columns(
			"account_id", "date", "impressions", "clicks", "spend",
			"reach", "conversions", "last_updated",
		).
		Values(
			metric.AccountID,
			metric.Date.Format("2006-01-02"),
			metric.Impressions,
			metric.Clicks,
			metric.Spend,
			metric.Reach,
			conversionsJSON,
			metric.LastUpdated,
		).
		Suffix(`
			ON CONFLICT (account_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				spend = EXCLUDED.spend,
				reach = EXCLUDED.reach,
				conversions = EXCLUDED.conversions,
				last_updated = EXCLUDED.last_updated,
				updated_at = NOW()
		`).
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

func scanDailyMetric(row rowScanner) (*domain.DailyMetric, error) {
	metric := &domain.DailyMetric{}
	var conversionsJSON []byte

	err := row.Scan(
		&metric.AccountID,
		&metric.Date,
		&metric.Impressions,
		&metric.Clicks,
		&metric.Spend,
		&metric.Reach,
		&conversionsJSON,
		&metric.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if conversionsJSON != nil {
		if err := json.Unmarshal(conversionsJSON, &metric.Conversions); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de conversions: %w", err)
		}
	}

	return metric, nil
}
