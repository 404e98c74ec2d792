package domain

import (
	"encoding/json"
	"time"
)

// AdSet representa um conjunto de anúncios espelhado da API do Meta.
// O account_id é desnormalizado para facilitar as consultas do painel.
// Chave: ad_set_id.
type AdSet struct {
	AdSetID                    string          `json:"ad_set_id"`
	CampaignID                 string          `json:"campaign_id"`
	AccountID                  string          `json:"account_id"`
	Name                       string          `json:"name"`
	Status                     string          `json:"status"`
	DailyBudget                float64         `json:"daily_budget"`
	LifetimeBudget             float64         `json:"lifetime_budget"`
	BidAmount                  float64         `json:"bid_amount"`
	BillingEvent               string          `json:"billing_event"`
	OptimizationGoal           string          `json:"optimization_goal"`
	Targeting                  json.RawMessage `json:"targeting,omitempty"`
	BidStrategy                string          `json:"bid_strategy"`
	AttributionSpec            json.RawMessage `json:"attribution_spec,omitempty"`
	PromotedObject             json.RawMessage `json:"promoted_object,omitempty"`
	PacingType                 []string        `json:"pacing_type"`
	ConfiguredStatus           string          `json:"configured_status"`
	EffectiveStatus            string          `json:"effective_status"`
	DestinationType            string          `json:"destination_type"`
	FrequencyControlSpecs      json.RawMessage `json:"frequency_control_specs,omitempty"`
	IsDynamicCreative          bool            `json:"is_dynamic_creative"`
	IssuesInfo                 json.RawMessage `json:"issues_info,omitempty"`
	LearningStageInfo          json.RawMessage `json:"learning_stage_info,omitempty"`
	SourceAdSetID              string          `json:"source_adset_id"`
	TargetingOptimizationTypes json.RawMessage `json:"targeting_optimization_types,omitempty"`
	UseNewAppClick             bool            `json:"use_new_app_click"`
	StartTime                  *time.Time      `json:"start_time"`
	EndTime                    *time.Time      `json:"end_time"`

	Impressions       int64       `json:"impressions"`
	Clicks            int64       `json:"clicks"`
	Reach             int64       `json:"reach"`
	Spend             float64     `json:"spend"`
	Conversions       Conversions `json:"conversions"`
	CostPerConversion *float64    `json:"cost_per_conversion"`

	LastUpdated time.Time `json:"last_updated"`
}
