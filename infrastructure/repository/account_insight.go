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

const (
	accountInsightsTable = "meta_account_insights ai"
)

type AccountInsightRepository interface {
	GetByAccountID(accountID string) (*domain.AdAccountInsight, error)
	SaveOrUpdate(insight *domain.AdAccountInsight) error
	ListAccountIDs() ([]string, error)
}

type accountInsightRepository struct {
	conn *postgres.Connection
}

func NewAccountInsightRepository(conn *postgres.Connection) AccountInsightRepository {
	return &accountInsightRepository{
		conn: conn,
	}
}

func (r *accountInsightRepository) GetByAccountID(accountID string) (*domain.AdAccountInsight, error) {
	query, args, err := squirrel.
		Select(`ai.account_id, ai.name, ai.account_status, ai.amount_spent, ai.balance,
			ai.currency, ai.spend_cap, ai.timezone_name, ai.timezone_offset_hours_utc,
			ai.business_country_code, ai.disable_reason, ai.is_prepay_account, ai.tax_id_status,
			ai.insights_start_date, ai.insights_end_date,
			ai.total_impressions, ai.total_clicks, ai.total_reach, ai.total_spend,
			ai.average_cpc, ai.average_cpm, ai.average_ctr, ai.average_frequency,
			ai.cost_per_unique_click, ai.outbound_clicks_ctr, ai.website_purchase_roas,
			ai.actions, ai.action_values, ai.cost_per_action_type, ai.outbound_clicks, ai.website_ctr,
			ai.is_data_complete, ai.last_updated`).
		From(accountInsightsTable).
		Where(squirrel.Eq{"ai.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	insight, err := r.scanInsight(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear insight da conta: %w", err)
	}

	return insight, nil
}

func (r *accountInsightRepository) ListAccountIDs() ([]string, error) {
	query, args, err := squirrel.
		Select("ai.account_id").
		From(accountInsightsTable).
		OrderBy("ai.account_id ASC").
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

	accountIDs := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear account_id: %w", err)
		}
		accountIDs = append(accountIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accountIDs, nil
}

func (r *accountInsightRepository) SaveOrUpdate(insight *domain.AdAccountInsight) error {
	actionsJSON, err := marshalNullable(insight.Actions)
	if err != nil {
		return fmt.Errorf("erro ao serializar actions para JSON: %w", err)
	}

	actionValuesJSON, err := marshalNullable(insight.ActionValues)
	if err != nil {
		return fmt.Errorf("erro ao serializar action_values para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("meta_account_insights").
		Columns(
			"account_id", "name", "account_status", "amount_spent", "balance",
			"currency", "spend_cap", "timezone_name", "timezone_offset_hours_utc",
			"business_country_code", "disable_reason", "is_prepay_account", "tax_id_status",
			"insights_start_date", "insights_end_date",
			"total_impressions", "total_clicks", "total_reach", "total_spend",
			"average_cpc", "average_cpm", "average_ctr", "average_frequency",
			"cost_per_unique_click", "outbound_clicks_ctr", "website_purchase_roas",
			"actions", "action_values", "cost_per_action_type", "outbound_clicks", "website_ctr",
			"is_data_complete", "last_updated",
		).
		Values(
			insight.AccountID,
			insight.Name,
			insight.AccountStatus,
			insight.AmountSpent,
			insight.Balance,
			insight.Currency,
			insight.SpendCap,
			insight.TimezoneName,
			insight.TimezoneOffsetHoursUTC,
			insight.BusinessCountryCode,
			insight.DisableReason,
			insight.IsPrepayAccount,
			insight.TaxIDStatus,
			insight.InsightsStartDate.Format("2006-01-02"),
			insight.InsightsEndDate.Format("2006-01-02"),
			insight.TotalImpressions,
			insight.TotalClicks,
			insight.TotalReach,
			insight.TotalSpend,
			insight.AverageCPC,
			insight.AverageCPM,
			insight.AverageCTR,
			insight.AverageFrequency,
			insight.CostPerUniqueClick,
			insight.OutboundClicksCTR,
			insight.WebsitePurchaseROAS,
			actionsJSON,
			actionValuesJSON,
			rawMessageOrNil(insight.CostPerActionType),
			rawMessageOrNil(insight.OutboundClicks),
			rawMessageOrNil(insight.WebsiteCTR),
			insight.IsDataComplete,
			insight.LastUpdated,
		).
		Suffix(`
			ON CONFLICT (account_id) DO UPDATE SET
				name = EXCLUDED.name,
				account_status = EXCLUDED.account_status,
				amount_spent = EXCLUDED.amount_spent,
				balance = EXCLUDED.balance,
				currency = EXCLUDED.currency,
				spend_cap = EXCLUDED.spend_cap,
				timezone_name = EXCLUDED.timezone_name,
				timezone_offset_hours_utc = EXCLUDED.timezone_offset_hours_utc,
				business_country_code = EXCLUDED.business_country_code,
				disable_reason = EXCLUDED.disable_reason,
				is_prepay_account = EXCLUDED.is_prepay_account,
				tax_id_status = EXCLUDED.tax_id_status,
				insights_start_date = EXCLUDED.insights_start_date,
				insights_end_date = EXCLUDED.insights_end_date,
				total_impressions = EXCLUDED.total_impressions,
				total_clicks = EXCLUDED.total_clicks,
				total_reach = EXCLUDED.total_reach,
				total_spend = EXCLUDED.total_spend,
				average_cpc = EXCLUDED.average_cpc,
				average_cpm = EXCLUDED.average_cpm,
				average_ctr = EXCLUDED.average_ctr,
				average_frequency = EXCLUDED.average_frequency,
				cost_per_unique_click = EXCLUDED.cost_per_unique_click,
				outbound_clicks_ctr = EXCLUDED.outbound_clicks_ctr,
				website_purchase_roas = EXCLUDED.website_purchase_roas,
				actions = EXCLUDED.actions,
				action_values = EXCLUDED.action_values,
				cost_per_action_type = EXCLUDED.cost_per_action_type,
				outbound_clicks = EXCLUDED.outbound_clicks,
				website_ctr = EXCLUDED.website_ctr,
				is_data_complete = EXCLUDED.is_data_complete,
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

func (r *accountInsightRepository) scanInsight(row *sql.Row) (*domain.AdAccountInsight, error) {
	insight := &domain.AdAccountInsight{}
	var actionsJSON, actionValuesJSON []byte
	var costPerActionType, outboundClicks, websiteCTR []byte

	err := row.Scan(
		&insight.AccountID,
		&insight.Name,
		&insight.AccountStatus,
		&insight.AmountSpent,
		&insight.Balance,
		&insight.Currency,
		&insight.SpendCap,
		&insight.TimezoneName,
		&insight.TimezoneOffsetHoursUTC,
		&insight.BusinessCountryCode,
		&insight.DisableReason,
		&insight.IsPrepayAccount,
		&insight.TaxIDStatus,
		&insight.InsightsStartDate,
		&insight.InsightsEndDate,
		&insight.TotalImpressions,
		&insight.TotalClicks,
		&insight.TotalReach,
		&insight.TotalSpend,
		&insight.AverageCPC,
		&insight.AverageCPM,
		&insight.AverageCTR,
		&insight.AverageFrequency,
		&insight.CostPerUniqueClick,
		&insight.OutboundClicksCTR,
		&insight.WebsitePurchaseROAS,
		&actionsJSON,
		&actionValuesJSON,
		&costPerActionType,
		&outboundClicks,
		&websiteCTR,
		&insight.IsDataComplete,
		&insight.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if actionsJSON != nil {
		if err := json.Unmarshal(actionsJSON, &insight.Actions); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de actions: %w", err)
		}
	}
	if actionValuesJSON != nil {
		if err := json.Unmarshal(actionValuesJSON, &insight.ActionValues); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de action_values: %w", err)
		}
	}
	insight.CostPerActionType = costPerActionType
	insight.OutboundClicks = outboundClicks
	insight.WebsiteCTR = websiteCTR

	return insight, nil
}
