package domain

import "time"

// Tipos de chamada registrados em meta_api_metrics
const (
	CallTypeRead     = "READ"
	CallTypeWrite    = "WRITE"
	CallTypeInsights = "INSIGHTS"
)

// APICallMetric registra cada tentativa de chamada à API externa (sucesso ou
// falha), com o custo em pontos da operação. Tabela insert-only.
type APICallMetric struct {
	AccountID    string    `json:"account_id"`
	Endpoint     string    `json:"endpoint"`
	CallType     string    `json:"call_type"`
	PointsUsed   int       `json:"points_used"`
	Success      bool      `json:"success"`
	ErrorCode    string    `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
