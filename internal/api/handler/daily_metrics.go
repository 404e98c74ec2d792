package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/meta-sync-api/infrastructure/repository"
	"github.com/vfg2006/meta-sync-api/pkg/apiErrors"
	"github.com/vfg2006/meta-sync-api/pkg/log"
	"github.com/vfg2006/meta-sync-api/pkg/utils"
)

// Janela padrão quando a consulta não informa o intervalo
const defaultDailyMetricsWindowDays = 30

// GetDailyMetrics retorna as métricas diárias já sincronizadas de uma conta no
// intervalo solicitado. Lê apenas do banco: nunca dispara chamadas à API externa.
func GetDailyMetrics(dailyMetricRepo repository.DailyMetricRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "O identificador da conta é obrigatório", nil)
			return
		}

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"start_date": r.URL.Query().Get("start_date"),
				"error":      err.Error(),
			}).Warn("metrics: parâmetro start_date inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválido, use o formato AAAA-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"end_date":   r.URL.Query().Get("end_date"),
				"error":      err.Error(),
			}).Warn("metrics: parâmetro end_date inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválido, use o formato AAAA-MM-DD", nil)
			return
		}

		// Intervalo ausente cai para os últimos 30 dias
		if endDate.IsZero() {
			yesterday := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
			endDate = &yesterday
		}
		if startDate.IsZero() {
			start := endDate.AddDate(0, 0, -defaultDailyMetricsWindowDays)
			startDate = &start
		}

		logger.WithFields(log.Fields{
			"account_id": id,
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Info("metrics: consultando métricas diárias da conta")

		metrics, err := dailyMetricRepo.GetByDateRange(id, *startDate, *endDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("metrics: erro ao consultar métricas diárias")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar métricas diárias", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(metrics); err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("metrics: erro ao serializar resposta")
		}
	})
}
