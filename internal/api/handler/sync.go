package handler

import (
	"encoding/json"
	"net/http"
	"time"

	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/ratelimit"
	"github.com/vfg2006/meta-sync-api/internal/domain"
	"github.com/vfg2006/meta-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/meta-sync-api/pkg/apiErrors"
	"github.com/vfg2006/meta-sync-api/pkg/log"
)

// Ações aceitas pelo endpoint de sincronização sob demanda
const (
	SyncActionGetAccountInfo = "getAccountInfo"
	SyncActionGetCampaigns   = "getCampaigns"
)

// syncResponse é o envelope comum das respostas de sincronização sob demanda
type syncResponse struct {
	Result    any               `json:"result"`
	Cached    bool              `json:"cached"`
	DateRange *domain.DateRange `json:"dateRange,omitempty"`
}

// Sync atende a sincronização sob demanda de uma conta: getAccountInfo retorna
// os dados consolidados (do cache quando frescos) e getCampaigns percorre a
// hierarquia completa da conta
func Sync(service syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		accountID := r.URL.Query().Get("accountId")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro accountId é obrigatório", nil)
			return
		}

		action := r.URL.Query().Get("action")
		force := r.URL.Query().Get("force") == "true"

		logger.WithFields(log.Fields{
			"account_id": accountID,
			"action":     action,
			"force":      force,
		}).Info("sync: requisição de sincronização sob demanda")

		switch action {
		case SyncActionGetAccountInfo, "":
			info, err := service.GetAccountInfo(r.Context(), accountID, force)
			if err != nil {
				writeSyncError(w, logger, accountID, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(syncResponse{
				Result:    info.Result,
				Cached:    info.Cached,
				DateRange: info.DateRange,
			})

		case SyncActionGetCampaigns:
			// Sob demanda a travessia é sempre completa, sem filtro de alteração
			result, err := service.SyncCampaignHierarchy(r.Context(), accountID, force, time.Time{})
			if err != nil {
				writeSyncError(w, logger, accountID, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(syncResponse{
				Result:    result,
				Cached:    result.Cached,
				DateRange: result.DateRange,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"Ação inválida. Valores aceitos: getAccountInfo, getCampaigns", nil)
		}
	})
}

// writeSyncError traduz falhas do motor de sincronização para a resposta HTTP:
// rate limit esgotado vira 429 com sugestão de espera, o resto vira 500
func writeSyncError(w http.ResponseWriter, logger log.Logger, accountID string, err error) {
	logger.WithFields(log.Fields{
		"account_id": accountID,
		"error":      err.Error(),
	}).Error("sync: erro ao sincronizar conta")

	if metadomain.IsRateLimitError(err) {
		retryAfter := int(ratelimit.RetryAfterHint.Seconds())
		apiErrors.WriteError(w, apiErrors.ErrRateLimited,
			"Limite de chamadas da API externa esgotado, tente novamente mais tarde",
			map[string]any{"retryAfter": retryAfter})
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
}
