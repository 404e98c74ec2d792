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
	campaignsTable = "meta_campaigns c"
)

type CampaignRepository interface {
	GetByCampaignID(campaignID string) (*domain.Campaign, error)
	ListByAccountID(accountID string) ([]*domain.Campaign, error)
	SaveOrUpdate(campaign *domain.Campaign) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

const campaignColumns = `c.campaign_id, c.account_id, c.name, c.status, c.objective,
	c.special_ad_categories, c.bid_strategy, c.budget_remaining, c.buying_type,
	c.daily_budget, c.lifetime_budget, c.spend_cap, c.configured_status, c.effective_status,
	c.source_campaign_id, c.promoted_object, c.recommendations, c.pacing_type,
	c.start_time, c.end_time,
	c.impressions, c.clicks, c.reach, c.spend, c.conversions, c.cost_per_conversion,
	c.last_updated`

func (r *campaignRepository) GetByCampaignID(campaignID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.campaign_id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	campaign, err := scanCampaign(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListByAccountID(accountID string) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.account_id": accountID}).
		OrderBy("c.campaign_id ASC").
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanhas: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) SaveOrUpdate(campaign *domain.Campaign) error {
	conversionsJSON, err := marshalNullable(campaign.Conversions)
	if err != nil {
		return fmt.Errorf("erro ao serializar conversions para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("meta_campaigns").
		Columns(
			"campaign_id", "account_id", "name", "status", "objective",
			"special_ad_categories", "bid_strategy", "budget_remaining", "buying_type",
			"daily_budget", "lifetime_budget", "spend_cap", "configured_status", "effective_status",
			"source_campaign_id", "promoted_object", "recommendations", "pacing_type",
			"start_time", "end_time",
			"impressions", "clicks", "reach", "spend", "conversions", "cost_per_conversion",
			"last_updated",
		).
		Values(
			campaign.CampaignID,
			campaign.AccountID,
			campaign.Name,
			campaign.Status,
			campaign.Objective,
			pq.Array(campaign.SpecialAdCategories),
			campaign.BidStrategy,
			campaign.BudgetRemaining,
			campaign.BuyingType,
			campaign.DailyBudget,
			campaign.LifetimeBudget,
			campaign.SpendCap,
			campaign.ConfiguredStatus,
			campaign.EffectiveStatus,
			campaign.SourceCampaignID,
			rawMessageOrNil(campaign.PromotedObject),
			rawMessageOrNil(campaign.Recommendations),
			pq.Array(campaign.PacingType),
			campaign.StartTime,
			campaign.EndTime,
			campaign.Impressions,
			campaign.Clicks,
			campaign.Reach,
			campaign.Spend,
			conversionsJSON,
			campaign.CostPerConversion,
			campaign.LastUpdated,
		).
		Suffix(`
			ON CONFLICT (campaign_id) DO UPDATE SET
				account_id = EXCLUDED.account_id,
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				objective = EXCLUDED.objective,
				special_ad_categories = EXCLUDED.special_ad_categories,
				bid_strategy = EXCLUDED.bid_strategy,
				budget_remaining = EXCLUDED.budget_remaining,
				buying_type = EXCLUDED.buying_type,
				daily_budget = EXCLUDED.daily_budget,
				lifetime_budget = EXCLUDED.lifetime_budget,
				spend_cap = EXCLUDED.spend_cap,
				configured_status = EXCLUDED.configured_status,
				effective_status = EXCLUDED.effective_status,
				source_campaign_id = EXCLUDED.source_campaign_id,
				promoted_object = EXCLUDED.promoted_object,
				recommendations = EXCLUDED.recommendations,
				pacing_type = EXCLUDED.pacing_type,
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				reach = EXCLUDED.reach,
				spend = EXCLUDED.spend,
				conversions = EXCLUDED.conversions,
				cost_per_conversion = EXCLUDED.cost_per_conversion,
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var conversionsJSON, promotedObject, recommendations []byte

	err := row.Scan(
		&campaign.CampaignID,
		&campaign.AccountID,
		&campaign.Name,
		&campaign.Status,
		&campaign.Objective,
		pq.Array(&campaign.SpecialAdCategories),
		&campaign.BidStrategy,
		&campaign.BudgetRemaining,
		&campaign.BuyingType,
		&campaign.DailyBudget,
		&campaign.LifetimeBudget,
		&campaign.SpendCap,
		&campaign.ConfiguredStatus,
		&campaign.EffectiveStatus,
		&campaign.SourceCampaignID,
		&promotedObject,
		&recommendations,
		pq.Array(&campaign.PacingType),
		&campaign.StartTime,
		&campaign.EndTime,
		&campaign.Impressions,
		&campaign.Clicks,
		&campaign.Reach,
		&campaign.Spend,
		&conversionsJSON,
		&campaign.CostPerConversion,
		&campaign.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if conversionsJSON != nil {
		if err := json.Unmarshal(conversionsJSON, &campaign.Conversions); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de conversions: %w", err)
		}
	}
	campaign.PromotedObject = promotedObject
	campaign.Recommendations = recommendations

	return campaign, nil
}
