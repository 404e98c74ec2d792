package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/meta-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

// RateLimitRepository persiste o último estado de limite reportado pela API
// para cada par (conta, endpoint). Sobrescrita, nunca histórico.
type RateLimitRepository interface {
	SaveSnapshot(snapshot *domain.RateLimitSnapshot) error
	GetByAccountIDAndEndpoint(accountID, endpoint string) (*domain.RateLimitSnapshot, error)
}

type rateLimitRepository struct {
	conn *postgres.Connection
}

func NewRateLimitRepository(conn *postgres.Connection) RateLimitRepository {
	return &rateLimitRepository{
		conn: conn,
	}
}

func (r *rateLimitRepository) SaveSnapshot(snapshot *domain.RateLimitSnapshot) error {
	query := squirrel.StatementBuilder.
		Insert("meta_rate_limits").
		Columns(
			"account_id", "endpoint", "usage_percent", "call_count",
			"total_cputime", "total_time", "estimated_time_to_regain_access",
			"business_use_case", "reset_time_duration", "tier", "last_updated",
		).
		Values(
			snapshot.AccountID,
			snapshot.Endpoint,
			snapshot.UsagePercent,
			snapshot.CallCount,
			snapshot.TotalCPUTime,
			snapshot.TotalTime,
			snapshot.EstimatedTimeToRegainAccess,
			snapshot.BusinessUseCase,
			snapshot.ResetTimeDuration,
			snapshot.Tier,
			snapshot.LastUpdated,
		).
		Suffix(`
			ON CONFLICT (account_id, endpoint) DO UPDATE SET
				usage_percent = EXCLUDED.usage_percent,
				call_count = EXCLUDED.call_count,
				total_cputime = EXCLUDED.total_cputime,
				total_time = EXCLUDED.total_time,
				estimated_time_to_regain_access = EXCLUDED.estimated_time_to_regain_access,
				business_use_case = EXCLUDED.business_use_case,
				reset_time_duration = EXCLUDED.reset_time_duration,
				tier = EXCLUDED.tier,
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

func (r *rateLimitRepository) GetByAccountIDAndEndpoint(accountID, endpoint string) (*domain.RateLimitSnapshot, error) {
	query, args, err := squirrel.
		Select(`rl.account_id, rl.endpoint, rl.usage_percent, rl.call_count,
			rl.total_cputime, rl.total_time, rl.estimated_time_to_regain_access,
			rl.business_use_case, rl.reset_time_duration, rl.tier, rl.last_updated`).
		From("meta_rate_limits rl").
		Where(squirrel.Eq{"rl.account_id": accountID, "rl.endpoint": endpoint}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot := &domain.RateLimitSnapshot{}
	row := r.conn.QueryRow(query, args...)
	err = row.Scan(
		&snapshot.AccountID,
		&snapshot.Endpoint,
		&snapshot.UsagePercent,
		&snapshot.CallCount,
		&snapshot.TotalCPUTime,
		&snapshot.TotalTime,
		&snapshot.EstimatedTimeToRegainAccess,
		&snapshot.BusinessUseCase,
		&snapshot.ResetTimeDuration,
		&snapshot.Tier,
		&snapshot.LastUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear rate limit: %w", err)
	}

	return snapshot, nil
}
