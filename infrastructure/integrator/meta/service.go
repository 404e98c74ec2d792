package meta

import (
	"context"
	"time"

	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/ratelimit"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

// Custo em pontos de cada tipo de chamada, usado pelo Governor para
// dimensionar o atraso preventivo
const (
	pointsRead     = 1
	pointsInsights = 2
)

// Integrator é a fachada de alto nível sobre a Graph API usada pelo motor de
// sincronização: toda chamada passa pelo Executor e as coleções são esgotadas
// pelo paginador.
type Integrator interface {
	FetchAccount(ctx context.Context, accountID string) (*metadomain.AdAccount, error)
	FetchInsights(ctx context.Context, accountID, objectID, level string, rng domain.DateRange) (*metadomain.Insight, error)
	FetchCampaigns(ctx context.Context, accountID string, updatedSince time.Time) ([]metadomain.Campaign, error)
	FetchAdSets(ctx context.Context, accountID, campaignID string, updatedSince time.Time) ([]metadomain.AdSet, error)
	FetchAds(ctx context.Context, accountID, adSetID string, updatedSince time.Time) ([]metadomain.Ad, error)
	FetchCreative(ctx context.Context, accountID, creativeID string) (*metadomain.AdCreative, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
	exec   *ratelimit.Executor

	pageDelay time.Duration
}

func New(cfg *config.Config, client metaclient.Client, exec *ratelimit.Executor) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:       cfg,
		Client:    client,
		exec:      exec,
		pageDelay: time.Duration(cfg.Sync.APICallDelaySeconds) * time.Second,
	}
}

func (s *MetaIntegrator) FetchAccount(ctx context.Context, accountID string) (*metadomain.AdAccount, error) {
	call := ratelimit.CallContext{
		AccountID: accountID,
		Endpoint:  "account_info",
		CallType:  domain.CallTypeRead,
		Points:    pointsRead,
	}

	return ratelimit.Execute(ctx, s.exec, call, func() (*metadomain.AdAccount, error) {
		return s.Client.GetAdAccountByID(ctx, accountID)
	})
}

func (s *MetaIntegrator) FetchInsights(ctx context.Context, accountID, objectID, level string, rng domain.DateRange) (*metadomain.Insight, error) {
	call := ratelimit.CallContext{
		AccountID: accountID,
		Endpoint:  "insights",
		CallType:  domain.CallTypeInsights,
		Points:    pointsInsights,
	}

	return ratelimit.Execute(ctx, s.exec, call, func() (*metadomain.Insight, error) {
		return s.Client.GetInsights(ctx, accountID, objectID, level, rng)
	})
}

func (s *MetaIntegrator) FetchCampaigns(ctx context.Context, accountID string, updatedSince time.Time) ([]metadomain.Campaign, error) {
	call := ratelimit.CallContext{
		AccountID: accountID,
		Endpoint:  "campaigns",
		CallType:  domain.CallTypeRead,
		Points:    pointsRead,
	}

	return DrainPages(ctx, s.exec, call, s.pageDelay, func(after string) (metadomain.Page[metadomain.Campaign], error) {
		return s.Client.GetCampaignsPage(ctx, accountID, after, updatedSince)
	})
}

func (s *MetaIntegrator) FetchAdSets(ctx context.Context, accountID, campaignID string, updatedSince time.Time) ([]metadomain.AdSet, error) {
	call := ratelimit.CallContext{
		AccountID: accountID,
		Endpoint:  "adsets",
		CallType:  domain.CallTypeRead,
		Points:    pointsRead,
	}

	return DrainPages(ctx, s.exec, call, s.pageDelay, func(after string) (metadomain.Page[metadomain.AdSet], error) {
		return s.Client.GetAdSetsPage(ctx, accountID, campaignID, after, updatedSince)
	})
}

func (s *MetaIntegrator) FetchAds(ctx context.Context, accountID, adSetID string, updatedSince time.Time) ([]metadomain.Ad, error) {
	call := ratelimit.CallContext{
		AccountID: accountID,
		Endpoint:  "ads",
		CallType:  domain.CallTypeRead,
		Points:    pointsRead,
	}

	return DrainPages(ctx, s.exec, call, s.pageDelay, func(after string) (metadomain.Page[metadomain.Ad], error) {
		return s.Client.GetAdsPage(ctx, accountID, adSetID, after, updatedSince)
	})
}

func (s *MetaIntegrator) FetchCreative(ctx context.Context, accountID, creativeID string) (*metadomain.AdCreative, error) {
	call := ratelimit.CallContext{
		AccountID: accountID,
		Endpoint:  "creative",
		CallType:  domain.CallTypeRead,
		Points:    pointsRead,
	}

	return ratelimit.Execute(ctx, s.exec, call, func() (*metadomain.AdCreative, error) {
		return s.Client.GetAdCreativeByID(ctx, accountID, creativeID)
	})
}
