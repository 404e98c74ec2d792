package domain

import "time"

// RateLimitSnapshot guarda o uso mais recente reportado pela API para um par
// (conta, endpoint). A linha é sobrescrita a cada atualização, nunca acumulada.
type RateLimitSnapshot struct {
	AccountID                   string    `json:"account_id"`
	Endpoint                    string    `json:"endpoint"`
	UsagePercent                float64   `json:"usage_percent"`
	CallCount                   int       `json:"call_count"`
	TotalCPUTime                float64   `json:"total_cputime"`
	TotalTime                   float64   `json:"total_time"`
	EstimatedTimeToRegainAccess float64   `json:"estimated_time_to_regain_access"`
	BusinessUseCase             string    `json:"business_use_case,omitempty"`
	ResetTimeDuration           float64   `json:"reset_time_duration,omitempty"`
	Tier                        string    `json:"tier"`
	LastUpdated                 time.Time `json:"last_updated"`
}
