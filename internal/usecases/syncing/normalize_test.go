package syncing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

func TestFoldConversions(t *testing.T) {
	t.Run("Deve agregar ações do mesmo tipo", func(t *testing.T) {
		actions := []metadomain.Action{
			{ActionType: "purchase", Value: "2"},
			{ActionType: "lead", Value: "5"},
			{ActionType: "purchase", Value: "3"},
		}

		conversions := foldConversions(actions)

		assert.Equal(t, 5.0, conversions["purchase"])
		assert.Equal(t, 5.0, conversions["lead"])
		assert.Len(t, conversions, 2)
	})

	t.Run("Lista vazia deve retornar nil", func(t *testing.T) {
		assert.Nil(t, foldConversions(nil))
		assert.Nil(t, foldConversions([]metadomain.Action{}))
	})

	t.Run("Valor inválido deve contar como zero", func(t *testing.T) {
		actions := []metadomain.Action{
			{ActionType: "purchase", Value: "abc"},
			{ActionType: "purchase", Value: "2"},
		}

		conversions := foldConversions(actions)
		assert.Equal(t, 2.0, conversions["purchase"])
	})
}

func TestParseMetaTime(t *testing.T) {
	t.Run("Timestamp válido deve ser convertido", func(t *testing.T) {
		result := parseMetaTime("2025-03-15T10:30:00-0300")
		assert.NotNil(t, result)
		assert.Equal(t, 2025, result.Year())
		assert.Equal(t, time.March, result.Month())
		assert.Equal(t, 15, result.Day())
	})

	t.Run("String vazia deve retornar nil", func(t *testing.T) {
		assert.Nil(t, parseMetaTime(""))
	})

	t.Run("Formato inválido deve retornar nil", func(t *testing.T) {
		assert.Nil(t, parseMetaTime("15/03/2025"))
	})
}

func TestBuildAccountInsight(t *testing.T) {
	account := &metadomain.AdAccount{
		ID:            "123",
		Name:          "Conta Teste",
		AccountStatus: 1,
		AmountSpent:   "1500.50",
		Balance:       "200",
		Currency:      "BRL",
	}
	rng := domain.DateRange{
		Since: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("Insight ausente deve persistir apenas os atributos da conta", func(t *testing.T) {
		row := buildAccountInsight(account, nil, rng, true)

		assert.Equal(t, "123", row.AccountID)
		assert.Equal(t, "Conta Teste", row.Name)
		assert.Equal(t, 1500.50, row.AmountSpent)
		assert.True(t, row.IsDataComplete)
		assert.Equal(t, int64(0), row.TotalImpressions)
		assert.Nil(t, row.AverageCPC)
		assert.False(t, row.LastUpdated.IsZero())
	})

	t.Run("Métricas derivadas devem vir da API quando presentes", func(t *testing.T) {
		insight := &metadomain.Insight{
			Impressions: "1000",
			Clicks:      "50",
			Spend:       "100",
			CPC:         "2.00",
			CPM:         "100.00",
			CTR:         "5.00",
		}

		row := buildAccountInsight(account, insight, rng, false)

		assert.Equal(t, int64(1000), row.TotalImpressions)
		assert.Equal(t, int64(50), row.TotalClicks)
		assert.Equal(t, 100.0, row.TotalSpend)
		assert.Equal(t, 2.0, *row.AverageCPC)
		assert.Equal(t, 100.0, *row.AverageCPM)
		assert.Equal(t, 5.0, *row.AverageCTR)
	})

	t.Run("Métricas derivadas devem ser recalculadas quando ausentes", func(t *testing.T) {
		insight := &metadomain.Insight{
			Impressions: "1000",
			Clicks:      "50",
			Spend:       "100",
		}

		row := buildAccountInsight(account, insight, rng, false)

		// CPC = 100/50, CPM = 100*1000/1000, CTR = 50*100/1000
		assert.Equal(t, 2.0, *row.AverageCPC)
		assert.Equal(t, 100.0, *row.AverageCPM)
		assert.Equal(t, 5.0, *row.AverageCTR)
	})

	t.Run("Divisão por zero deve resultar em métrica nula, nunca NaN", func(t *testing.T) {
		insight := &metadomain.Insight{
			Impressions: "0",
			Clicks:      "0",
			Spend:       "100",
		}

		row := buildAccountInsight(account, insight, rng, false)

		assert.Nil(t, row.AverageCPC)
		assert.Nil(t, row.AverageCPM)
		assert.Nil(t, row.AverageCTR)
	})
}

func TestBuildEntityMetrics(t *testing.T) {
	t.Run("Insight ausente deve zerar as métricas", func(t *testing.T) {
		metrics := buildEntityMetrics(nil)

		assert.Equal(t, int64(0), metrics.Impressions)
		assert.Nil(t, metrics.Conversions)
		assert.Nil(t, metrics.CostPerConversion)
	})

	t.Run("Custo por conversão deve ser derivado do total de conversões", func(t *testing.T) {
		insight := &metadomain.Insight{
			Impressions: "500",
			Clicks:      "20",
			Spend:       "50",
			Actions: []metadomain.Action{
				{ActionType: "purchase", Value: "4"},
				{ActionType: "lead", Value: "6"},
			},
		}

		metrics := buildEntityMetrics(insight)

		assert.Equal(t, 10.0, metrics.Conversions.Total())
		assert.NotNil(t, metrics.CostPerConversion)
		assert.Equal(t, 5.0, *metrics.CostPerConversion)
	})

	t.Run("Sem conversões o custo por conversão deve ser nulo", func(t *testing.T) {
		insight := &metadomain.Insight{Spend: "50"}

		metrics := buildEntityMetrics(insight)
		assert.Nil(t, metrics.CostPerConversion)
	})
}

func TestBuildCampaign(t *testing.T) {
	raw := metadomain.Campaign{
		ID:              "CMP001",
		Name:            "Campanha Verão",
		Status:          "ACTIVE",
		Objective:       "OUTCOME_SALES",
		DailyBudget:     "5000",
		BudgetRemaining: "3250.75",
		StartTime:       "2025-01-10T00:00:00-0300",
	}
	insight := &metadomain.Insight{
		Impressions: "10000",
		Clicks:      "300",
		Spend:       "750",
	}

	campaign := buildCampaign("ACC001", raw, insight)

	assert.Equal(t, "CMP001", campaign.CampaignID)
	assert.Equal(t, "ACC001", campaign.AccountID)
	assert.Equal(t, 5000.0, campaign.DailyBudget)
	assert.Equal(t, 3250.75, campaign.BudgetRemaining)
	assert.Equal(t, int64(10000), campaign.Impressions)
	assert.NotNil(t, campaign.StartTime)
	assert.Nil(t, campaign.EndTime)
}

func TestBuildAd(t *testing.T) {
	t.Run("Referência de criativo deve preencher o CreativeID", func(t *testing.T) {
		raw := metadomain.Ad{
			ID:       "AD001",
			Name:     "Anúncio A",
			Creative: &metadomain.CreativeRef{ID: "CR001"},
		}

		ad := buildAd("ACC001", "CMP001", "AS001", raw, nil)

		assert.Equal(t, "AD001", ad.AdID)
		assert.Equal(t, "AS001", ad.AdSetID)
		assert.Equal(t, "CMP001", ad.CampaignID)
		assert.Equal(t, "CR001", ad.CreativeID)
	})

	t.Run("Anúncio sem criativo deve ficar com CreativeID vazio", func(t *testing.T) {
		raw := metadomain.Ad{ID: "AD002"}

		ad := buildAd("ACC001", "CMP001", "AS001", raw, nil)
		assert.Empty(t, ad.CreativeID)
	})
}

func TestApplyCreative(t *testing.T) {
	t.Run("Deve enriquecer o anúncio com os campos estendidos", func(t *testing.T) {
		ad := &domain.Ad{AdID: "AD001"}
		creative := &metadomain.AdCreative{
			ThumbnailURL:           "https://cdn.example.com/thumb.jpg",
			ObjectType:             "VIDEO",
			URLTags:                "utm_source=meta",
			InstagramPermalinkURL:  "https://instagram.com/p/abc",
			EffectiveObjectStoryID: "123_456",
		}

		applyCreative(ad, creative)

		assert.Equal(t, "https://cdn.example.com/thumb.jpg", ad.ThumbnailURL)
		assert.Equal(t, "VIDEO", ad.CreativeType)
		assert.Equal(t, "utm_source=meta", ad.URLTags)
		assert.Equal(t, "123_456", ad.EffectiveObjectStoryID)
	})

	t.Run("Sem miniatura deve usar a imagem principal do criativo", func(t *testing.T) {
		ad := &domain.Ad{AdID: "AD001"}
		creative := &metadomain.AdCreative{
			ImageURL: "https://cdn.example.com/image.jpg",
		}

		applyCreative(ad, creative)
		assert.Equal(t, "https://cdn.example.com/image.jpg", ad.ThumbnailURL)
	})

	t.Run("Miniatura presente deve ter prioridade sobre a imagem", func(t *testing.T) {
		ad := &domain.Ad{AdID: "AD001"}
		creative := &metadomain.AdCreative{
			ThumbnailURL: "https://cdn.example.com/thumb.jpg",
			ImageURL:     "https://cdn.example.com/image.jpg",
		}

		applyCreative(ad, creative)
		assert.Equal(t, "https://cdn.example.com/thumb.jpg", ad.ThumbnailURL)
	})

	t.Run("Não deve sobrescrever o object story do anúncio", func(t *testing.T) {
		ad := &domain.Ad{AdID: "AD001", EffectiveObjectStoryID: "original"}
		creative := &metadomain.AdCreative{EffectiveObjectStoryID: "do_criativo"}

		applyCreative(ad, creative)
		assert.Equal(t, "original", ad.EffectiveObjectStoryID)
	})

	t.Run("Criativo nulo deve ser ignorado", func(t *testing.T) {
		ad := &domain.Ad{AdID: "AD001"}
		applyCreative(ad, nil)
		assert.Empty(t, ad.ThumbnailURL)
	})
}

func TestBuildDailyMetric(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("Insight presente deve preencher as métricas do dia", func(t *testing.T) {
		insight := &metadomain.Insight{
			Impressions: "2000",
			Clicks:      "80",
			Spend:       "120.5",
			Reach:       "1500",
			Actions: []metadomain.Action{
				{ActionType: "purchase", Value: "3"},
			},
		}

		metric := buildDailyMetric("ACC001", date, insight)

		assert.Equal(t, "ACC001", metric.AccountID)
		assert.Equal(t, date, metric.Date)
		assert.Equal(t, int64(2000), metric.Impressions)
		assert.Equal(t, 120.5, metric.Spend)
		assert.Len(t, metric.Conversions, 1)
	})

	t.Run("Dia sem entrega deve gerar linha zerada", func(t *testing.T) {
		metric := buildDailyMetric("ACC001", date, nil)

		assert.Equal(t, int64(0), metric.Impressions)
		assert.Equal(t, 0.0, metric.Spend)
		assert.Nil(t, metric.Conversions)
	})
}
