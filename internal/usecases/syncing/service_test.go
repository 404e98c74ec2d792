package syncing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/meta-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	meta           *metamocks.MockIntegrator
	accountInsight *mocks.MockAccountInsightRepository
	campaign       *mocks.MockCampaignRepository
	adSet          *mocks.MockAdSetRepository
	ad             *mocks.MockAdRepository
	dailyMetric    *mocks.MockDailyMetricRepository
}

func newTestService(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		meta:           metamocks.NewMockIntegrator(ctrl),
		accountInsight: mocks.NewMockAccountInsightRepository(ctrl),
		campaign:       mocks.NewMockCampaignRepository(ctrl),
		adSet:          mocks.NewMockAdSetRepository(ctrl),
		ad:             mocks.NewMockAdRepository(ctrl),
		dailyMetric:    mocks.NewMockDailyMetricRepository(ctrl),
	}

	cfg := &config.Config{
		Sync: config.Sync{
			FreshnessThresholdDays:   3,
			NewAccountLookbackMonths: 12,
			MinLookbackDays:          4,
			InsightsTimeoutSeconds:   30,
		},
	}

	service := &Service{
		cfg:                      cfg,
		metaService:              m.meta,
		accountInsightRepository: m.accountInsight,
		campaignRepository:       m.campaign,
		adSetRepository:          m.adSet,
		adRepository:             m.ad,
		dailyMetricRepository:    m.dailyMetric,
	}

	return service, m
}

func TestGetAccountInfo(t *testing.T) {
	t.Run("Dados frescos devem ser servidos do cache sem chamadas à API", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		cached := &domain.AdAccountInsight{
			AccountID:   "ACC001",
			Name:        "Conta Teste",
			LastUpdated: time.Now().Add(-1 * time.Hour),
		}
		m.accountInsight.EXPECT().GetByAccountID("ACC001").Return(cached, nil)

		result, err := service.GetAccountInfo(context.Background(), "ACC001", false)

		assert.NoError(t, err)
		assert.True(t, result.Cached)
		assert.Nil(t, result.DateRange)
		assert.Equal(t, cached, result.Result)
	})

	t.Run("Force deve ignorar o cache e aplicar o piso mínimo de lookback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		// Conta atualizada há uma hora: sem force seria servida do cache
		cached := &domain.AdAccountInsight{
			AccountID:      "ACC001",
			LastUpdated:    time.Now().Add(-1 * time.Hour),
			IsDataComplete: true,
		}
		m.accountInsight.EXPECT().GetByAccountID("ACC001").Return(cached, nil)

		account := &metadomain.AdAccount{ID: "ACC001", Name: "Conta Teste"}
		m.meta.EXPECT().FetchAccount(gomock.Any(), "ACC001").Return(account, nil)

		var requestedRange domain.DateRange
		m.meta.EXPECT().
			FetchInsights(gomock.Any(), "ACC001", "act_ACC001", metadomain.LevelAccount, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string, rng domain.DateRange) (*metadomain.Insight, error) {
				requestedRange = rng
				return &metadomain.Insight{Impressions: "100"}, nil
			})

		var saved *domain.AdAccountInsight
		m.accountInsight.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(row *domain.AdAccountInsight) error {
				saved = row
				return nil
			})

		result, err := service.GetAccountInfo(context.Background(), "ACC001", true)

		assert.NoError(t, err)
		assert.False(t, result.Cached)
		assert.Equal(t, int64(100), result.Result.TotalImpressions)

		// Uma hora desde a última atualização arredonda para 1 dia, abaixo do
		// piso de 4 dias: a janela solicitada deve voltar exatamente 4 dias
		today := time.Now().Truncate(24 * time.Hour)
		assert.Equal(t, today.AddDate(0, 0, -4), requestedRange.Since)
		assert.Equal(t, today, requestedRange.Until)

		assert.NotNil(t, saved)
		assert.True(t, saved.IsDataComplete)
	})

	t.Run("Conta nova deve buscar o histórico longo de meses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.accountInsight.EXPECT().GetByAccountID("ACC002").Return(nil, nil)

		account := &metadomain.AdAccount{ID: "ACC002", Name: "Conta Nova"}
		m.meta.EXPECT().FetchAccount(gomock.Any(), "ACC002").Return(account, nil)

		var requestedRange domain.DateRange
		m.meta.EXPECT().
			FetchInsights(gomock.Any(), "ACC002", "act_ACC002", metadomain.LevelAccount, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string, rng domain.DateRange) (*metadomain.Insight, error) {
				requestedRange = rng
				return &metadomain.Insight{}, nil
			})

		var saved *domain.AdAccountInsight
		m.accountInsight.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(row *domain.AdAccountInsight) error {
				saved = row
				return nil
			})

		_, err := service.GetAccountInfo(context.Background(), "ACC002", false)

		assert.NoError(t, err)

		today := time.Now().Truncate(24 * time.Hour)
		assert.Equal(t, today.AddDate(0, -12, 0), requestedRange.Since)
		assert.True(t, saved.IsDataComplete)
	})

	t.Run("Falha nos insights não pode impedir a persistência dos atributos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.accountInsight.EXPECT().GetByAccountID("ACC001").Return(nil, nil)

		account := &metadomain.AdAccount{ID: "ACC001", Name: "Conta Teste", AmountSpent: "500"}
		m.meta.EXPECT().FetchAccount(gomock.Any(), "ACC001").Return(account, nil)

		m.meta.EXPECT().
			FetchInsights(gomock.Any(), "ACC001", "act_ACC001", metadomain.LevelAccount, gomock.Any()).
			Return(nil, context.DeadlineExceeded)

		var saved *domain.AdAccountInsight
		m.accountInsight.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(row *domain.AdAccountInsight) error {
				saved = row
				return nil
			})

		result, err := service.GetAccountInfo(context.Background(), "ACC001", false)

		assert.NoError(t, err)
		assert.Equal(t, 500.0, saved.AmountSpent)
		assert.Equal(t, int64(0), saved.TotalImpressions)
		assert.Equal(t, saved, result.Result)
		assert.NotNil(t, result.DateRange)
	})

	t.Run("Falha ao buscar a conta na API deve ser propagada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.accountInsight.EXPECT().GetByAccountID("ACC001").Return(nil, nil)
		m.meta.EXPECT().FetchAccount(gomock.Any(), "ACC001").Return(nil, errors.New("erro de rede"))

		result, err := service.GetAccountInfo(context.Background(), "ACC001", false)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestSyncCampaignHierarchy(t *testing.T) {
	t.Run("Hierarquia fresca não deve gerar nenhuma chamada à API", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		cached := &domain.AdAccountInsight{
			AccountID:   "ACC001",
			LastUpdated: time.Now().Add(-1 * time.Hour),
		}
		m.accountInsight.EXPECT().GetByAccountID("ACC001").Return(cached, nil)

		result, err := service.SyncCampaignHierarchy(context.Background(), "ACC001", false, time.Time{})

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Campaigns)
		assert.Empty(t, result.Errors)
	})

	t.Run("Travessia completa deve persistir campanha, conjunto e anúncio enriquecido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.accountInsight.EXPECT().GetByAccountID("ACC001").Return(nil, nil)

		m.meta.EXPECT().FetchCampaigns(gomock.Any(), "ACC001", time.Time{}).
			Return([]metadomain.Campaign{{ID: "CMP001", Name: "Campanha"}}, nil)
		m.meta.EXPECT().FetchAdSets(gomock.Any(), "ACC001", "CMP001", time.Time{}).
			Return([]metadomain.AdSet{{ID: "AS001", Name: "Conjunto"}}, nil)
		m.meta.EXPECT().FetchAds(gomock.Any(), "ACC001", "AS001", time.Time{}).
			Return([]metadomain.Ad{{
				ID:       "AD001",
				Name:     "Anúncio",
				Creative: &metadomain.CreativeRef{ID: "CR001"},
			}}, nil)
		m.meta.EXPECT().FetchCreative(gomock.Any(), "ACC001", "CR001").
			Return(&metadomain.AdCreative{ThumbnailURL: "https://cdn.example.com/t.jpg", ObjectType: "VIDEO"}, nil)

		// Insights em melhor esforço para cada nível da hierarquia
		m.meta.EXPECT().
			FetchInsights(gomock.Any(), "ACC001", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&metadomain.Insight{Impressions: "10"}, nil).
			Times(3)

		m.campaign.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		m.adSet.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		var savedAd *domain.Ad
		m.ad.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(ad *domain.Ad) error {
			savedAd = ad
			return nil
		})

		result, err := service.SyncCampaignHierarchy(context.Background(), "ACC001", false, time.Time{})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Campaigns)
		assert.Equal(t, 1, result.AdSets)
		assert.Equal(t, 1, result.Ads)
		assert.Empty(t, result.Errors)

		assert.Equal(t, "https://cdn.example.com/t.jpg", savedAd.ThumbnailURL)
		assert.Equal(t, "VIDEO", savedAd.CreativeType)
	})

	t.Run("Falha em uma campanha não pode interromper as demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.accountInsight.EXPECT().GetByAccountID("ACC001").Return(nil, nil)

		m.meta.EXPECT().FetchCampaigns(gomock.Any(), "ACC001", gomock.Any()).
			Return([]metadomain.Campaign{{ID: "CMP001"}, {ID: "CMP002"}}, nil)

		// Insights indisponíveis: as entidades são persistidas sem métricas
		m.meta.EXPECT().
			FetchInsights(gomock.Any(), "ACC001", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("timeout")).
			AnyTimes()

		m.campaign.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil).Times(2)

		m.meta.EXPECT().FetchAdSets(gomock.Any(), "ACC001", "CMP001", gomock.Any()).
			Return(nil, errors.New("erro de rede"))
		m.meta.EXPECT().FetchAdSets(gomock.Any(), "ACC001", "CMP002", gomock.Any()).
			Return([]metadomain.AdSet{}, nil)

		result, err := service.SyncCampaignHierarchy(context.Background(), "ACC001", false, time.Time{})

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Campaigns)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, "campaign", result.Errors[0].EntityType)
		assert.Equal(t, "CMP001", result.Errors[0].EntityID)
	})

	t.Run("Falha no criativo deve persistir o anúncio sem os campos estendidos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.accountInsight.EXPECT().GetByAccountID("ACC001").Return(nil, nil)

		m.meta.EXPECT().FetchCampaigns(gomock.Any(), "ACC001", gomock.Any()).
			Return([]metadomain.Campaign{{ID: "CMP001"}}, nil)
		m.meta.EXPECT().FetchAdSets(gomock.Any(), "ACC001", "CMP001", gomock.Any()).
			Return([]metadomain.AdSet{{ID: "AS001"}}, nil)
		m.meta.EXPECT().FetchAds(gomock.Any(), "ACC001", "AS001", gomock.Any()).
			Return([]metadomain.Ad{{ID: "AD001", Creative: &metadomain.CreativeRef{ID: "CR001"}}}, nil)
		m.meta.EXPECT().FetchCreative(gomock.Any(), "ACC001", "CR001").
			Return(nil, errors.New("erro de rede"))

		m.meta.EXPECT().
			FetchInsights(gomock.Any(), "ACC001", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("timeout")).
			AnyTimes()

		m.campaign.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		m.adSet.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		var savedAd *domain.Ad
		m.ad.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(ad *domain.Ad) error {
			savedAd = ad
			return nil
		})

		result, err := service.SyncCampaignHierarchy(context.Background(), "ACC001", false, time.Time{})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Ads)
		assert.Empty(t, result.Errors)
		assert.Empty(t, savedAd.ThumbnailURL)
		assert.Equal(t, "CR001", savedAd.CreativeID)
	})

	t.Run("Filtro de alteração deve ser propagado aos três níveis", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		updatedSince := time.Now().AddDate(0, 0, -7)

		m.accountInsight.EXPECT().GetByAccountID("ACC001").Return(nil, nil)

		m.meta.EXPECT().FetchCampaigns(gomock.Any(), "ACC001", updatedSince).
			Return([]metadomain.Campaign{{ID: "CMP001"}}, nil)
		m.meta.EXPECT().FetchAdSets(gomock.Any(), "ACC001", "CMP001", updatedSince).
			Return([]metadomain.AdSet{{ID: "AS001"}}, nil)
		m.meta.EXPECT().FetchAds(gomock.Any(), "ACC001", "AS001", updatedSince).
			Return([]metadomain.Ad{}, nil)

		m.meta.EXPECT().
			FetchInsights(gomock.Any(), "ACC001", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("timeout")).
			AnyTimes()

		m.campaign.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		m.adSet.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		result, err := service.SyncCampaignHierarchy(context.Background(), "ACC001", true, updatedSince)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Campaigns)
		assert.Empty(t, result.Errors)
	})
}

func TestSyncDailyMetrics(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("Deve buscar o dia exato e persistir a linha diária", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		expectedRange := domain.DateRange{Since: date, Until: date}
		m.meta.EXPECT().
			FetchInsights(gomock.Any(), "ACC001", "act_ACC001", metadomain.LevelAccount, expectedRange).
			Return(&metadomain.Insight{Impressions: "2000", Spend: "120.5"}, nil)

		var saved *domain.DailyMetric
		m.dailyMetric.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(metric *domain.DailyMetric) error {
			saved = metric
			return nil
		})

		metric, err := service.SyncDailyMetrics(context.Background(), "ACC001", date)

		assert.NoError(t, err)
		assert.Equal(t, date, metric.Date)
		assert.Equal(t, int64(2000), saved.Impressions)
		assert.Equal(t, 120.5, saved.Spend)
	})

	t.Run("Falha na API deve ser propagada sem persistir nada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.meta.EXPECT().
			FetchInsights(gomock.Any(), "ACC001", "act_ACC001", metadomain.LevelAccount, gomock.Any()).
			Return(nil, errors.New("erro de rede"))

		metric, err := service.SyncDailyMetrics(context.Background(), "ACC001", date)

		assert.Error(t, err)
		assert.Nil(t, metric)
	})
}
