package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/meta-sync-api/internal/domain"
)

// Syncer define a interface do motor de sincronização da hierarquia do Meta
type Syncer interface {
	// GetAccountInfo retorna os dados consolidados da conta, servindo do cache
	// quando os dados ainda são frescos e buscando da API caso contrário
	GetAccountInfo(ctx context.Context, accountID string, force bool) (*AccountInfo, error)

	// SyncCampaignHierarchy percorre campanhas -> conjuntos -> anúncios da conta,
	// persistindo cada entidade com suas métricas de insights. Com updatedSince
	// preenchido a travessia cobre apenas as entidades alteradas desde o
	// instante dado; o valor zero percorre a hierarquia completa.
	SyncCampaignHierarchy(ctx context.Context, accountID string, force bool, updatedSince time.Time) (*HierarchyResult, error)

	// SyncDailyMetrics busca as métricas agregadas da conta para um único dia
	SyncDailyMetrics(ctx context.Context, accountID string, date time.Time) (*domain.DailyMetric, error)
}

// AccountInfo é o resultado da sincronização sob demanda de uma conta: os
// dados consolidados mais a origem deles (cache ou API) e, quando houve busca,
// a janela de datas usada
type AccountInfo struct {
	Result    *domain.AdAccountInsight `json:"result"`
	Cached    bool                     `json:"cached"`
	DateRange *domain.DateRange        `json:"dateRange,omitempty"`
}

// HierarchyResult resume uma passada completa pela hierarquia de uma conta.
// Os erros por entidade são acumulados: uma entidade com falha não interrompe
// as demais.
type HierarchyResult struct {
	AccountID string             `json:"account_id"`
	Campaigns int                `json:"campaigns"`
	AdSets    int                `json:"ad_sets"`
	Ads       int                `json:"ads"`
	Errors    []domain.SyncError `json:"errors,omitempty"`

	// Metadados da passada, expostos no envelope da resposta HTTP
	Cached    bool              `json:"-"`
	DateRange *domain.DateRange `json:"-"`
}

// RecordError acumula a falha de uma entidade individual
func (r *HierarchyResult) RecordError(entityType, entityID string, err error) {
	r.Errors = append(r.Errors, domain.SyncError{
		AccountID:  r.AccountID,
		EntityType: entityType,
		EntityID:   entityID,
		Message:    err.Error(),
	})
}
