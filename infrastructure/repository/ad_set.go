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
	adSetsTable = "meta_ad_sets s"
)

type AdSetRepository interface {
	GetByAdSetID(adSetID string) (*domain.AdSet, error)
	ListByCampaignID(campaignID string) ([]*domain.AdSet, error)
	SaveOrUpdate(adSet *domain.AdSet) error
}

type adSetRepository struct {
	conn *postgres.Connection
}

func NewAdSetRepository(conn *postgres.Connection) AdSetRepository {
	return &adSetRepository{
		conn: conn,
	}
}

const adSetColumns = `s.ad_set_id, s.campaign_id, s.account_id, s.name, s.status,
	s.daily_budget, s.lifetime_budget, s.bid_amount, s.billing_event, s.optimization_goal,
	s.targeting, s.bid_strategy, s.attribution_spec, s.promoted_object, s.pacing_type,
	s.configured_status, s.effective_status, s.destination_type, s.frequency_control_specs,
	s.is_dynamic_creative, s.issues_info, s.learning_stage_info, s.source_adset_id,
	s.targeting_optimization_types, s.use_new_app_click, s.start_time, s.end_time,
	s.impressions, s.clicks, s.reach, s.spend, s.conversions, s.cost_per_conversion,
	s.last_updated`

func (r *adSetRepository) GetByAdSetID(adSetID string) (*domain.AdSet, error) {
	query, args, err := squirrel.
		Select(adSetColumns).
		From(adSetsTable).
		Where(squirrel.Eq{"s.ad_set_id": adSetID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	adSet, err := scanAdSet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conjunto de anúncios: %w", err)
	}

	return adSet, nil
}

func (r *adSetRepository) ListByCampaignID(campaignID string) ([]*domain.AdSet, error) {
	query, args, err := squirrel.
		Select(adSetColumns).
		From(adSetsTable).
		Where(squirrel.Eq{"s.campaign_id": campaignID}).
		OrderBy("s.ad_set_id ASC").
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

	adSets := make([]*domain.AdSet, 0)
	for rows.Next() {
		adSet, err := scanAdSet(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conjuntos de anúncios: %w", err)
		}
		adSets = append(adSets, adSet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return adSets, nil
}

func (r *adSetRepository) SaveOrUpdate(adSet *domain.AdSet) error {
	conversionsJSON, err := marshalNullable(adSet.Conversions)
	if err != nil {
		return fmt.Errorf("erro ao serializar conversions para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("meta_ad_sets").
		Columns(
			"ad_set_id", "campaign_id", "account_id", "name", "status",
			"daily_budget", "lifetime_budget", "bid_amount", "billing_event", "optimization_goal",
			"targeting", "bid_strategy", "attribution_spec", "promoted_object", "pacing_type",
			"configured_status", "effective_status", "destination_type", "frequency_control_specs",
			"is_dynamic_creative", "issues_info", "learning_stage_info", "source_adset_id",
			"targeting_optimization_types", "use_new_app_click", "start_time", "end_time",
			"impressions", "clicks", "reach", "spend", "conversions", "cost_per_conversion",
			"last_updated",
		).
		Values(
			adSet.AdSetID,
			adSet.CampaignID,
			adSet.AccountID,
			adSet.Name,
			adSet.Status,
			adSet.DailyBudget,
			adSet.LifetimeBudget,
			adSet.BidAmount,
			adSet.BillingEvent,
			adSet.OptimizationGoal,
			rawMessageOrNil(adSet.Targeting),
			adSet.BidStrategy,
			rawMessageOrNil(adSet.AttributionSpec),
			rawMessageOrNil(adSet.PromotedObject),
			pq.Array(adSet.PacingType),
			adSet.ConfiguredStatus,
			adSet.EffectiveStatus,
			adSet.DestinationType,
			rawMessageOrNil(adSet.FrequencyControlSpecs),
			adSet.IsDynamicCreative,
			rawMessageOrNil(adSet.IssuesInfo),
			rawMessageOrNil(adSet.LearningStageInfo),
			adSet.SourceAdSetID,
			rawMessageOrNil(adSet.TargetingOptimizationTypes),
			adSet.UseNewAppClick,
			adSet.StartTime,
			adSet.EndTime,
			adSet.Impressions,
			adSet.Clicks,
			adSet.Reach,
			adSet.Spend,
			conversionsJSON,
			adSet.CostPerConversion,
			adSet.LastUpdated,
		).
		Suffix(`
			ON CONFLICT (ad_set_id) DO UPDATE SET
				campaign_id = EXCLUDED.campaign_id,
				account_id = EXCLUDED.account_id,
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				daily_budget = EXCLUDED.daily_budget,
				lifetime_budget = EXCLUDED.lifetime_budget,
				bid_amount = EXCLUDED.bid_amount,
				billing_event = EXCLUDED.billing_event,
				optimization_goal = EXCLUDED.optimization_goal,
				targeting = EXCLUDED.targeting,
				bid_strategy = EXCLUDED.bid_strategy,
				attribution_spec = EXCLUDED.attribution_spec,
				promoted_object = EXCLUDED.promoted_object,
				pacing_type = EXCLUDED.pacing_type,
				configured_status = EXCLUDED.configured_status,
				effective_status = EXCLUDED.effective_status,
				destination_type = EXCLUDED.destination_type,
				frequency_control_specs = EXCLUDED.frequency_control_specs,
				is_dynamic_creative = EXCLUDED.is_dynamic_creative,
				issues_info = EXCLUDED.issues_info,
				learning_stage_info = EXCLUDED.learning_stage_info,
				source_adset_id = EXCLUDED.source_adset_id,
				targeting_optimization_types = EXCLUDED.targeting_optimization_types,
				use_new_app_click = EXCLUDED.use_new_app_click,
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

func scanAdSet(row rowScanner) (*domain.AdSet, error) {
	adSet := &domain.AdSet{}
	var conversionsJSON []byte
	var targeting, attributionSpec, promotedObject, frequencyControlSpecs []byte
	var issuesInfo, learningStageInfo, targetingOptimizationTypes []byte

	err := row.Scan(
		&adSet.AdSetID,
		&adSet.CampaignID,
		&adSet.AccountID,
		&adSet.Name,
		&adSet.Status,
		&adSet.DailyBudget,
		&adSet.LifetimeBudget,
		&adSet.BidAmount,
		&adSet.BillingEvent,
		&adSet.OptimizationGoal,
		&targeting,
		&adSet.BidStrategy,
		&attributionSpec,
		&promotedObject,
		pq.Array(&adSet.PacingType),
		&adSet.ConfiguredStatus,
		&adSet.EffectiveStatus,
		&adSet.DestinationType,
		&frequencyControlSpecs,
		&adSet.IsDynamicCreative,
		&issuesInfo,
		&learningStageInfo,
		&adSet.SourceAdSetID,
		&targetingOptimizationTypes,
		&adSet.UseNewAppClick,
		&adSet.StartTime,
		&adSet.EndTime,
		&adSet.Impressions,
		&adSet.Clicks,
		&adSet.Reach,
		&adSet.Spend,
		&conversionsJSON,
		&adSet.CostPerConversion,
		&adSet.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if conversionsJSON != nil {
		if err := json.Unmarshal(conversionsJSON, &adSet.Conversions); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de conversions: %w", err)
		}
	}
	adSet.Targeting = targeting
	adSet.AttributionSpec = attributionSpec
	adSet.PromotedObject = promotedObject
	adSet.FrequencyControlSpecs = frequencyControlSpecs
	adSet.IssuesInfo = issuesInfo
	adSet.LearningStageInfo = learningStageInfo
	adSet.TargetingOptimizationTypes = targetingOptimizationTypes

	return adSet, nil
}
