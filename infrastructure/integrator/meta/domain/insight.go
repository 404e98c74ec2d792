package metadomain

import "encoding/json"

// Níveis de agregação da API de insights
const (
	LevelAccount  = "account"
	LevelCampaign = "campaign"
	LevelAdSet    = "adset"
	LevelAd       = "ad"
)

// Action é uma entrada da lista de actions (tipo de conversão -> valor).
// O valor chega como string, como toda métrica da API.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é o registro bruto de métricas agregadas retornado pela API para um
// intervalo de datas e uma entidade. Os campos numéricos são strings e podem
// estar ausentes; a coerção acontece na camada de sincronização.
type Insight struct {
	Impressions        string          `json:"impressions"`
	Clicks             string          `json:"clicks"`
	Reach              string          `json:"reach"`
	Spend              string          `json:"spend"`
	CPC                string          `json:"cpc"`
	CPM                string          `json:"cpm"`
	CTR                string          `json:"ctr"`
	Frequency          string          `json:"frequency"`
	Objective          string          `json:"objective"`
	Actions            []Action        `json:"actions"`
	ActionValues       []Action        `json:"action_values"`
	CostPerActionType  json.RawMessage `json:"cost_per_action_type,omitempty"`
	CostPerUniqueClick string          `json:"cost_per_unique_click"`
	OutboundClicks     json.RawMessage `json:"outbound_clicks,omitempty"`
	OutboundClicksCTR  string          `json:"outbound_clicks_ctr"`
	WebsiteCTR         json.RawMessage `json:"website_ctr,omitempty"`
	WebsitePurchaseROAS string         `json:"website_purchase_roas"`
	DateStart          string          `json:"date_start"`
	DateStop           string          `json:"date_stop"`
}

// InsightFields é a lista completa de métricas solicitadas em cada consulta
var InsightFields = []string{
	"impressions",
	"clicks",
	"reach",
	"spend",
	"cpc",
	"cpm",
	"ctr",
	"frequency",
	"objective",
	"action_values",
	"actions",
	"cost_per_action_type",
	"cost_per_unique_click",
	"outbound_clicks",
	"outbound_clicks_ctr",
	"website_ctr",
	"website_purchase_roas",
}
