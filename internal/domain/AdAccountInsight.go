package domain

import (
	"encoding/json"
	"time"
)

// AdAccountInsight representa a linha consolidada de uma conta de anúncios,
// combinando atributos da conta com os totais de insights do período buscado.
// Existe exatamente uma linha por account_id (upsert por conflito).
type AdAccountInsight struct {
	AccountID              string          `json:"account_id"`
	Name                   string          `json:"name"`
	AccountStatus          int             `json:"account_status"`
	AmountSpent            float64         `json:"amount_spent"`
	Balance                float64         `json:"balance"`
	Currency               string          `json:"currency"`
	SpendCap               *float64        `json:"spend_cap"`
	TimezoneName           string          `json:"timezone_name"`
	TimezoneOffsetHoursUTC float64         `json:"timezone_offset_hours_utc"`
	BusinessCountryCode    string          `json:"business_country_code"`
	DisableReason          int             `json:"disable_reason"`
	IsPrepayAccount        bool            `json:"is_prepay_account"`
	TaxIDStatus            string          `json:"tax_id_status"`
	InsightsStartDate      time.Time       `json:"insights_start_date"`
	InsightsEndDate        time.Time       `json:"insights_end_date"`
	TotalImpressions       int64           `json:"total_impressions"`
	TotalClicks            int64           `json:"total_clicks"`
	TotalReach             int64           `json:"total_reach"`
	TotalSpend             float64         `json:"total_spend"`
	AverageCPC             *float64        `json:"average_cpc"`
	AverageCPM             *float64        `json:"average_cpm"`
	AverageCTR             *float64        `json:"average_ctr"`
	AverageFrequency       float64         `json:"average_frequency"`
	CostPerUniqueClick     *float64        `json:"cost_per_unique_click"`
	OutboundClicksCTR      *float64        `json:"outbound_clicks_ctr"`
	WebsitePurchaseROAS    *float64        `json:"website_purchase_roas"`
	Actions                []Action        `json:"actions"`
	ActionValues           []Action        `json:"action_values"`
	CostPerActionType      json.RawMessage `json:"cost_per_action_type,omitempty"`
	OutboundClicks         json.RawMessage `json:"outbound_clicks,omitempty"`
	WebsiteCTR             json.RawMessage `json:"website_ctr,omitempty"`

	// IsDataComplete indica se a conta possui o histórico completo de 12 meses
	// (contas novas são buscadas com a janela longa na primeira sincronização)
	IsDataComplete bool      `json:"is_data_complete"`
	LastUpdated    time.Time `json:"last_updated"`
}
