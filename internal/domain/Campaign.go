package domain

import (
	"encoding/json"
	"time"
)

// Campaign representa uma campanha espelhada da API do Meta, com os atributos
// estruturais e as métricas de insights do período buscado. Chave: campaign_id.
type Campaign struct {
	CampaignID          string          `json:"campaign_id"`
	AccountID           string          `json:"account_id"`
	Name                string          `json:"name"`
	Status              string          `json:"status"`
	Objective           string          `json:"objective"`
	SpecialAdCategories []string        `json:"special_ad_categories"`
	BidStrategy         string          `json:"bid_strategy"`
	BudgetRemaining     float64         `json:"budget_remaining"`
	BuyingType          string          `json:"buying_type"`
	DailyBudget         float64         `json:"daily_budget"`
	LifetimeBudget      float64         `json:"lifetime_budget"`
	SpendCap            *float64        `json:"spend_cap"`
	ConfiguredStatus    string          `json:"configured_status"`
	EffectiveStatus     string          `json:"effective_status"`
	SourceCampaignID    string          `json:"source_campaign_id"`
	PromotedObject      json.RawMessage `json:"promoted_object,omitempty"`
	Recommendations     json.RawMessage `json:"recommendations,omitempty"`
	PacingType          []string        `json:"pacing_type"`
	StartTime           *time.Time      `json:"start_time"`
	EndTime             *time.Time      `json:"end_time"`

	Impressions       int64       `json:"impressions"`
	Clicks            int64       `json:"clicks"`
	Reach             int64       `json:"reach"`
	Spend             float64     `json:"spend"`
	Conversions       Conversions `json:"conversions"`
	CostPerConversion *float64    `json:"cost_per_conversion"`

	LastUpdated time.Time `json:"last_updated"`
}
