package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sync-api/internal/scheduler"
	"github.com/vfg2006/meta-sync-api/pkg/apiErrors"
)

// CronJobServices contém os agendadores disparáveis manualmente
type CronJobServices struct {
	DailyMetricsSyncService  *scheduler.DailyMetricsSyncService
	WeeklyDetailsSyncService *scheduler.WeeklyDetailsSyncService
}

// RunDailyMetricsSync dispara manualmente a sincronização diária de métricas.
// A resposta é imediata: a sincronização roda em segundo plano.
func RunDailyMetricsSync(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunDailyMetricsSync")

		if services.DailyMetricsSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização diária não disponível", nil)
			return
		}

		force := r.URL.Query().Get("force") == "true"
		services.DailyMetricsSyncService.TriggerManualSync(force)

		// A resposta traz o que já está em cache: a sincronização disparada
		// acima segue em segundo plano
		date := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
		metrics, totalAccounts, err := services.DailyMetricsSyncService.CachedMetricsForDate(date)
		if err != nil {
			logrus.WithError(err).Error("Erro ao consultar métricas em cache para a resposta do cron")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar métricas em cache", nil)
			return
		}

		needingUpdate := totalAccounts - len(metrics)
		if needingUpdate < 0 {
			needingUpdate = 0
		}

		response := map[string]any{
			"success": true,
			"data": map[string]any{
				"metrics": metrics,
				"date":    date.Format(time.DateOnly),
			},
			"meta": map[string]any{
				"total_accounts":          totalAccounts,
				"accounts_needing_update": needingUpdate,
				"is_updating":             services.DailyMetricsSyncService.IsRunning(),
				"last_updated":            services.DailyMetricsSyncService.LastCompletedAt(),
				"force":                   force,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// RunWeeklyDetailsSync dispara manualmente a sincronização completa da hierarquia
func RunWeeklyDetailsSync(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunWeeklyDetailsSync")

		if services.WeeklyDetailsSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização semanal não disponível", nil)
			return
		}

		services.WeeklyDetailsSyncService.TriggerManualSync()

		totalAccounts, err := services.WeeklyDetailsSyncService.TotalAccounts()
		if err != nil {
			logrus.WithError(err).Error("Erro ao contar contas para a resposta do cron")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao contar contas", nil)
			return
		}

		response := map[string]any{
			"success": true,
			"message": "Sincronização semanal de detalhes iniciada com sucesso",
			"meta": map[string]any{
				"total_accounts": totalAccounts,
				"is_updating":    services.WeeklyDetailsSyncService.IsRunning(),
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status dos agendadores
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"daily-metrics":  services.DailyMetricsSyncService.GetStatus(),
			"weekly-details": services.WeeklyDetailsSyncService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
