package domain

import "time"

// Tipos de execução registrados em meta_sync_logs
const (
	SyncLogTypeDailyMetrics  = "daily_metrics"
	SyncLogTypeWeeklyDetails = "weekly_details"
	SyncLogTypeManual        = "manual"
)

// SyncError registra a falha de uma entidade individual durante uma execução
type SyncError struct {
	AccountID  string `json:"account_id"`
	EntityType string `json:"entity_type,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
	Message    string `json:"error"`
}

// SyncLog é o registro de uma execução de sincronização em lote. É append-only:
// serve apenas para visibilidade operacional e nunca é lido pelo loop de sync.
type SyncLog struct {
	ID                int64       `json:"id,omitempty"`
	RunID             string      `json:"run_id"`
	Type              string      `json:"type"`
	Date              time.Time   `json:"date"`
	TotalAccounts     int         `json:"total_accounts"`
	ProcessedAccounts int         `json:"processed_accounts"`
	SuccessfulUpdates int         `json:"successful_updates"`
	FailedUpdates     int         `json:"failed_updates"`
	Errors            []SyncError `json:"errors"`
	Success           bool        `json:"success"`
	CompletedAt       time.Time   `json:"completed_at"`
}

// RecordError acumula o erro de uma entidade sem interromper a execução
func (s *SyncLog) RecordError(accountID, entityType, entityID, message string) {
	s.FailedUpdates++
	s.Errors = append(s.Errors, SyncError{
		AccountID:  accountID,
		EntityType: entityType,
		EntityID:   entityID,
		Message:    message,
	})
}

// Finish fecha o registro da execução. O sucesso é parcial por definição:
// qualquer erro de entidade registrado marca a execução como success=false.
func (s *SyncLog) Finish() {
	s.Success = len(s.Errors) == 0
	s.CompletedAt = time.Now()
}
