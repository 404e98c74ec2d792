package syncing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sync-api/infrastructure/repository"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

// Service implementa o motor de sincronização: decide quando buscar da API,
// percorre a hierarquia da conta e persiste cada entidade normalizada
type Service struct {
	cfg                      *config.Config
	metaService              meta.Integrator
	accountInsightRepository repository.AccountInsightRepository
	campaignRepository       repository.CampaignRepository
	adSetRepository          repository.AdSetRepository
	adRepository             repository.AdRepository
	dailyMetricRepository    repository.DailyMetricRepository
}

func NewService(
	cfg *config.Config,
	metaService meta.Integrator,
	accountInsightRepo repository.AccountInsightRepository,
	campaignRepo repository.CampaignRepository,
	adSetRepo repository.AdSetRepository,
	adRepo repository.AdRepository,
	dailyMetricRepo repository.DailyMetricRepository,
) Syncer {
	return &Service{
		cfg:                      cfg,
		metaService:              metaService,
		accountInsightRepository: accountInsightRepo,
		campaignRepository:       campaignRepo,
		adSetRepository:          adSetRepo,
		adRepository:             adRepo,
		dailyMetricRepository:    dailyMetricRepo,
	}
}

// GetAccountInfo retorna os dados consolidados da conta. Dados com menos de
// SYNC_FRESHNESS_THRESHOLD_DAYS são servidos do cache sem nenhuma chamada à
// API; force=true ignora o cache e busca sempre.
func (s *Service) GetAccountInfo(ctx context.Context, accountID string, force bool) (*AccountInfo, error) {
	cached, err := s.accountInsightRepository.GetByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conta no cache: %w", err)
	}

	if cached != nil && !force && s.isFresh(cached.LastUpdated) {
		logrus.WithFields(logrus.Fields{
			"account_id":   accountID,
			"last_updated": cached.LastUpdated,
		}).Debug("Dados da conta ainda frescos, servindo do cache")
		return &AccountInfo{Result: cached, Cached: true}, nil
	}

	dateRange, isDataComplete := s.resolveDateRange(cached)

	account, err := s.metaService.FetchAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar dados da conta na API: %w", err)
	}

	// O timeout dos insights não derruba a sincronização da conta: os
	// atributos são persistidos e os totais ficam para a próxima passada
	insight := s.fetchInsightsBestEffort(ctx, accountID, "act_"+accountID, metadomain.LevelAccount, dateRange)

	row := buildAccountInsight(account, insight, dateRange, isDataComplete)
	if err := s.accountInsightRepository.SaveOrUpdate(row); err != nil {
		return nil, fmt.Errorf("erro ao persistir dados da conta: %w", err)
	}

	return &AccountInfo{Result: row, DateRange: &dateRange}, nil
}

// SyncCampaignHierarchy percorre campanhas -> conjuntos -> anúncios,
// persistindo cada entidade com suas métricas. A falha de uma entidade é
// registrada e a travessia continua nas demais. updatedSince não-zero limita a
// travessia às entidades alteradas desde o instante dado, via filtro na API.
func (s *Service) SyncCampaignHierarchy(ctx context.Context, accountID string, force bool, updatedSince time.Time) (*HierarchyResult, error) {
	result := &HierarchyResult{AccountID: accountID}

	cached, err := s.accountInsightRepository.GetByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conta no cache: %w", err)
	}

	if cached != nil && !force && s.isFresh(cached.LastUpdated) {
		logrus.WithField("account_id", accountID).Debug("Hierarquia ainda fresca, nada a sincronizar")
		result.Cached = true
		return result, nil
	}

	dateRange, _ := s.resolveDateRange(cached)
	result.DateRange = &dateRange

	campaigns, err := s.metaService.FetchCampaigns(ctx, accountID, updatedSince)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas: %w", err)
	}

	for _, rawCampaign := range campaigns {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := s.syncCampaign(ctx, accountID, rawCampaign, dateRange, updatedSince, result); err != nil {
			result.RecordError("campaign", rawCampaign.ID, err)
			logrus.WithFields(logrus.Fields{
				"account_id":  accountID,
				"campaign_id": rawCampaign.ID,
				"error":       err,
			}).Error("Erro ao sincronizar campanha, seguindo para a próxima")
		}
	}

	return result, nil
}

func (s *Service) syncCampaign(
	ctx context.Context,
	accountID string,
	rawCampaign metadomain.Campaign,
	dateRange domain.DateRange,
	updatedSince time.Time,
	result *HierarchyResult,
) error {
	insight := s.fetchInsightsBestEffort(ctx, accountID, rawCampaign.ID, metadomain.LevelCampaign, dateRange)

	campaign := buildCampaign(accountID, rawCampaign, insight)
	if err := s.campaignRepository.SaveOrUpdate(campaign); err != nil {
		return fmt.Errorf("erro ao persistir campanha: %w", err)
	}
	result.Campaigns++

	adSets, err := s.metaService.FetchAdSets(ctx, accountID, rawCampaign.ID, updatedSince)
	if err != nil {
		return fmt.Errorf("erro ao listar conjuntos de anúncios: %w", err)
	}

	for _, rawAdSet := range adSets {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.syncAdSet(ctx, accountID, rawCampaign.ID, rawAdSet, dateRange, updatedSince, result); err != nil {
			result.RecordError("ad_set", rawAdSet.ID, err)
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"ad_set_id":  rawAdSet.ID,
				"error":      err,
			}).Error("Erro ao sincronizar conjunto de anúncios, seguindo para o próximo")
		}
	}

	return nil
}

func (s *Service) syncAdSet(
	ctx context.Context,
	accountID, campaignID string,
	rawAdSet metadomain.AdSet,
	dateRange domain.DateRange,
	updatedSince time.Time,
	result *HierarchyResult,
) error {
	insight := s.fetchInsightsBestEffort(ctx, accountID, rawAdSet.ID, metadomain.LevelAdSet, dateRange)

	adSet := buildAdSet(accountID, campaignID, rawAdSet, insight)
	if err := s.adSetRepository.SaveOrUpdate(adSet); err != nil {
		return fmt.Errorf("erro ao persistir conjunto de anúncios: %w", err)
	}
	result.AdSets++

	ads, err := s.metaService.FetchAds(ctx, accountID, rawAdSet.ID, updatedSince)
	if err != nil {
		return fmt.Errorf("erro ao listar anúncios: %w", err)
	}

	for _, rawAd := range ads {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.syncAd(ctx, accountID, campaignID, rawAdSet.ID, rawAd, dateRange); err != nil {
			result.RecordError("ad", rawAd.ID, err)
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"ad_id":      rawAd.ID,
				"error":      err,
			}).Error("Erro ao sincronizar anúncio, seguindo para o próximo")
			continue
		}
		result.Ads++
	}

	return nil
}

func (s *Service) syncAd(
	ctx context.Context,
	accountID, campaignID, adSetID string,
	rawAd metadomain.Ad,
	dateRange domain.DateRange,
) error {
	insight := s.fetchInsightsBestEffort(ctx, accountID, rawAd.ID, metadomain.LevelAd, dateRange)

	ad := buildAd(accountID, campaignID, adSetID, rawAd, insight)

	if ad.CreativeID != "" {
		creative, err := s.metaService.FetchCreative(ctx, accountID, ad.CreativeID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id":  accountID,
				"ad_id":       rawAd.ID,
				"creative_id": ad.CreativeID,
				"error":       err,
			}).Warn("Erro ao enriquecer criativo, persistindo anúncio sem os campos estendidos")
		} else {
			applyCreative(ad, creative)
		}
	}

	if err := s.adRepository.SaveOrUpdate(ad); err != nil {
		return fmt.Errorf("erro ao persistir anúncio: %w", err)
	}

	return nil
}

// SyncDailyMetrics busca as métricas agregadas da conta para um único dia e
// grava a linha correspondente em meta_daily_metrics
func (s *Service) SyncDailyMetrics(ctx context.Context, accountID string, date time.Time) (*domain.DailyMetric, error) {
	dateRange := domain.DateRange{Since: date, Until: date}

	insight, err := s.metaService.FetchInsights(ctx, accountID, "act_"+accountID, metadomain.LevelAccount, dateRange)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar métricas diárias: %w", err)
	}

	metric := buildDailyMetric(accountID, date, insight)
	if err := s.dailyMetricRepository.SaveOrUpdate(metric); err != nil {
		return nil, fmt.Errorf("erro ao persistir métricas diárias: %w", err)
	}

	return metric, nil
}

// fetchInsightsBestEffort consulta insights com timeout próprio. Timeout ou
// erro retornam nil: a entidade é persistida sem métricas.
func (s *Service) fetchInsightsBestEffort(
	ctx context.Context,
	accountID, objectID, level string,
	dateRange domain.DateRange,
) *metadomain.Insight {
	timeout := time.Duration(s.cfg.Sync.InsightsTimeoutSeconds) * time.Second
	insightsCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	insight, err := s.metaService.FetchInsights(insightsCtx, accountID, objectID, level, dateRange)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"object_id":  objectID,
			"level":      level,
			"error":      err,
		}).Warn("Erro ao buscar insights, entidade será persistida sem métricas")
		return nil
	}

	return insight
}

func (s *Service) isFresh(lastUpdated time.Time) bool {
	threshold := time.Duration(s.cfg.Sync.FreshnessThresholdDays) * 24 * time.Hour
	return time.Since(lastUpdated) < threshold
}

// resolveDateRange decide a janela de busca: contas novas recebem o histórico
// longo de meses; contas já conhecidas voltam apenas o suficiente para cobrir
// o período desde a última atualização, com um piso mínimo de dias
func (s *Service) resolveDateRange(cached *domain.AdAccountInsight) (domain.DateRange, bool) {
	today := time.Now().Truncate(24 * time.Hour)

	if cached == nil {
		since := today.AddDate(0, -s.cfg.Sync.NewAccountLookbackMonths, 0)
		return domain.DateRange{Since: since, Until: today}, true
	}

	daysSince := int(math.Ceil(time.Since(cached.LastUpdated).Hours() / 24))
	if daysSince < s.cfg.Sync.MinLookbackDays {
		daysSince = s.cfg.Sync.MinLookbackDays
	}

	since := today.AddDate(0, 0, -daysSince)
	return domain.DateRange{Since: since, Until: today}, cached.IsDataComplete
}
