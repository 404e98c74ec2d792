package domain

import "time"

// DailyMetric representa as métricas agregadas de uma conta em um único dia,
// alimentadas pela sincronização diária. Chave composta: (account_id, date).
type DailyMetric struct {
	AccountID   string    `json:"account_id"`
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Spend       float64   `json:"spend"`
	Reach       int64     `json:"reach"`
	Conversions []Action  `json:"conversions"`
	LastUpdated time.Time `json:"last_updated"`
}
