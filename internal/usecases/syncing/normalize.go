package syncing

import (
	"time"

	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sync-api/internal/domain"
	"github.com/vfg2006/meta-sync-api/pkg/utils"
)

// Conversão dos tipos brutos da Graph API (métricas em string, campos
// ausentes) para as linhas normalizadas do banco. Toda coerção numérica e
// todos os cálculos derivados acontecem aqui, nunca nos repositórios.

// foldConversions agrega a lista de actions em um mapa tipo -> valor acumulado
func foldConversions(actions []metadomain.Action) domain.Conversions {
	if len(actions) == 0 {
		return nil
	}

	conversions := make(domain.Conversions, len(actions))
	for _, action := range actions {
		conversions[action.ActionType] += utils.ParseFloatOrZero(action.Value)
	}
	return conversions
}

func toDomainActions(actions []metadomain.Action) []domain.Action {
	if len(actions) == 0 {
		return nil
	}

	result := make([]domain.Action, 0, len(actions))
	for _, action := range actions {
		result = append(result, domain.Action{
			ActionType: action.ActionType,
			Value:      utils.ParseFloatOrZero(action.Value),
		})
	}
	return result
}

// parseMetaTime converte os timestamps ISO da API; ausência vira nil
func parseMetaTime(s string) *time.Time {
	if s == "" {
		return nil
	}

	t, err := time.Parse("2006-01-02T15:04:05-0700", s)
	if err != nil {
		return nil
	}
	return &t
}

func buildAccountInsight(
	account *metadomain.AdAccount,
	insight *metadomain.Insight,
	rng domain.DateRange,
	isDataComplete bool,
) *domain.AdAccountInsight {
	row := &domain.AdAccountInsight{
		AccountID:              account.ID,
		Name:                   account.Name,
		AccountStatus:          account.AccountStatus,
		AmountSpent:            utils.ParseFloatOrZero(account.AmountSpent),
		Balance:                utils.ParseFloatOrZero(account.Balance),
		Currency:               account.Currency,
		SpendCap:               utils.ParseFloatOrNil(account.SpendCap),
		TimezoneName:           account.TimezoneName,
		TimezoneOffsetHoursUTC: account.TimezoneOffsetHoursUTC,
		BusinessCountryCode:    account.BusinessCountryCode,
		DisableReason:          account.DisableReason,
		IsPrepayAccount:        account.IsPrepayAccount,
		TaxIDStatus:            account.TaxIDStatus,
		InsightsStartDate:      rng.Since,
		InsightsEndDate:        rng.Until,
		IsDataComplete:         isDataComplete,
		LastUpdated:            time.Now(),
	}

	// A conta é persistida mesmo sem insights (timeout ou erro na consulta):
	// os atributos continuam valendo e a próxima sincronização completa o resto
	if insight == nil {
		return row
	}

	row.TotalImpressions = utils.ParseIntOrZero(insight.Impressions)
	row.TotalClicks = utils.ParseIntOrZero(insight.Clicks)
	row.TotalReach = utils.ParseIntOrZero(insight.Reach)
	row.TotalSpend = utils.ParseFloatOrZero(insight.Spend)
	row.AverageCPC = utils.ParseFloatOrNil(insight.CPC)
	row.AverageCPM = utils.ParseFloatOrNil(insight.CPM)
	row.AverageCTR = utils.ParseFloatOrNil(insight.CTR)
	row.AverageFrequency = utils.ParseFloatOrZero(insight.Frequency)
	row.CostPerUniqueClick = utils.ParseFloatOrNil(insight.CostPerUniqueClick)
	row.OutboundClicksCTR = utils.ParseFloatOrNil(insight.OutboundClicksCTR)
	row.WebsitePurchaseROAS = utils.ParseFloatOrNil(insight.WebsitePurchaseROAS)
	row.Actions = toDomainActions(insight.Actions)
	row.ActionValues = toDomainActions(insight.ActionValues)
	row.CostPerActionType = insight.CostPerActionType
	row.OutboundClicks = insight.OutboundClicks
	row.WebsiteCTR = insight.WebsiteCTR

	// Métricas derivadas recalculadas localmente quando a API não as envia
	if row.AverageCPC == nil {
		row.AverageCPC = utils.SafeDivide(row.TotalSpend, float64(row.TotalClicks))
	}
	if row.AverageCPM == nil {
		row.AverageCPM = utils.SafeDivide(row.TotalSpend*1000, float64(row.TotalImpressions))
	}
	if row.AverageCTR == nil {
		row.AverageCTR = utils.SafeDivide(float64(row.TotalClicks)*100, float64(row.TotalImpressions))
	}

	return row
}

// applyInsightMetrics preenche o bloco comum de métricas de campanha,
// conjunto e anúncio a partir do insight bruto (possivelmente ausente)
type entityMetrics struct {
	Impressions       int64
	Clicks            int64
	Reach             int64
	Spend             float64
	Conversions       domain.Conversions
	CostPerConversion *float64
}

func buildEntityMetrics(insight *metadomain.Insight) entityMetrics {
	if insight == nil {
		return entityMetrics{}
	}

	metrics := entityMetrics{
		Impressions: utils.ParseIntOrZero(insight.Impressions),
		Clicks:      utils.ParseIntOrZero(insight.Clicks),
		Reach:       utils.ParseIntOrZero(insight.Reach),
		Spend:       utils.ParseFloatOrZero(insight.Spend),
		Conversions: foldConversions(insight.Actions),
	}
	metrics.CostPerConversion = utils.SafeDivide(metrics.Spend, metrics.Conversions.Total())

	return metrics
}

func buildCampaign(accountID string, raw metadomain.Campaign, insight *metadomain.Insight) *domain.Campaign {
	metrics := buildEntityMetrics(insight)

	return &domain.Campaign{
		CampaignID:          raw.ID,
		AccountID:           accountID,
		Name:                raw.Name,
		Status:              raw.Status,
		Objective:           raw.Objective,
		SpecialAdCategories: raw.SpecialAdCategories,
		BidStrategy:         raw.BidStrategy,
		BudgetRemaining:     utils.ParseFloatOrZero(raw.BudgetRemaining),
		BuyingType:          raw.BuyingType,
		DailyBudget:         utils.ParseFloatOrZero(raw.DailyBudget),
		LifetimeBudget:      utils.ParseFloatOrZero(raw.LifetimeBudget),
		SpendCap:            utils.ParseFloatOrNil(raw.SpendCap),
		ConfiguredStatus:    raw.ConfiguredStatus,
		EffectiveStatus:     raw.EffectiveStatus,
		SourceCampaignID:    raw.SourceCampaignID,
		PromotedObject:      raw.PromotedObject,
		Recommendations:     raw.Recommendations,
		PacingType:          raw.PacingType,
		StartTime:           parseMetaTime(raw.StartTime),
		EndTime:             parseMetaTime(raw.EndTime),
		Impressions:         metrics.Impressions,
		Clicks:              metrics.Clicks,
		Reach:               metrics.Reach,
		Spend:               metrics.Spend,
		Conversions:         metrics.Conversions,
		CostPerConversion:   metrics.CostPerConversion,
		LastUpdated:         time.Now(),
	}
}

func buildAdSet(accountID, campaignID string, raw metadomain.AdSet, insight *metadomain.Insight) *domain.AdSet {
	metrics := buildEntityMetrics(insight)

	return &domain.AdSet{
		AdSetID:                    raw.ID,
		CampaignID:                 campaignID,
		AccountID:                  accountID,
		Name:                       raw.Name,
		Status:                     raw.Status,
		DailyBudget:                utils.ParseFloatOrZero(raw.DailyBudget),
		LifetimeBudget:             utils.ParseFloatOrZero(raw.LifetimeBudget),
		BidAmount:                  utils.ParseFloatOrZero(raw.BidAmount),
		BillingEvent:               raw.BillingEvent,
		OptimizationGoal:           raw.OptimizationGoal,
		Targeting:                  raw.Targeting,
		BidStrategy:                raw.BidStrategy,
		AttributionSpec:            raw.AttributionSpec,
		PromotedObject:             raw.PromotedObject,
		PacingType:                 raw.PacingType,
		ConfiguredStatus:           raw.ConfiguredStatus,
		EffectiveStatus:            raw.EffectiveStatus,
		DestinationType:            raw.DestinationType,
		FrequencyControlSpecs:      raw.FrequencyControlSpecs,
		IsDynamicCreative:          raw.IsDynamicCreative,
		IssuesInfo:                 raw.IssuesInfo,
		LearningStageInfo:          raw.LearningStageInfo,
		SourceAdSetID:              raw.SourceAdSetID,
		TargetingOptimizationTypes: raw.TargetingOptimizationTypes,
		UseNewAppClick:             raw.UseNewAppClick,
		StartTime:                  parseMetaTime(raw.StartTime),
		EndTime:                    parseMetaTime(raw.EndTime),
		Impressions:                metrics.Impressions,
		Clicks:                     metrics.Clicks,
		Reach:                      metrics.Reach,
		Spend:                      metrics.Spend,
		Conversions:                metrics.Conversions,
		CostPerConversion:          metrics.CostPerConversion,
		LastUpdated:                time.Now(),
	}
}

func buildAd(accountID, campaignID, adSetID string, raw metadomain.Ad, insight *metadomain.Insight) *domain.Ad {
	metrics := buildEntityMetrics(insight)

	ad := &domain.Ad{
		AdID:                   raw.ID,
		AdSetID:                adSetID,
		CampaignID:             campaignID,
		AccountID:              accountID,
		Name:                   raw.Name,
		Status:                 raw.Status,
		TrackingSpecs:          raw.TrackingSpecs,
		ConversionSpecs:        raw.ConversionSpecs,
		PreviewURL:             raw.PreviewShareableLink,
		EffectiveObjectStoryID: raw.EffectiveObjectStoryID,
		ConfiguredStatus:       raw.ConfiguredStatus,
		EffectiveStatus:        raw.EffectiveStatus,
		IssuesInfo:             raw.IssuesInfo,
		SourceAdID:             raw.SourceAdID,
		ObjectStorySpec:        raw.ObjectStorySpec,
		Recommendations:        raw.Recommendations,
		Impressions:            metrics.Impressions,
		Clicks:                 metrics.Clicks,
		Reach:                  metrics.Reach,
		Spend:                  metrics.Spend,
		Conversions:            metrics.Conversions,
		CostPerConversion:      metrics.CostPerConversion,
		LastUpdated:            time.Now(),
	}

	if raw.Creative != nil {
		ad.CreativeID = raw.Creative.ID
	}

	return ad
}

// applyCreative enriquece o anúncio com os campos estendidos do criativo.
// A falha do enriquecimento não impede a persistência do anúncio.
func applyCreative(ad *domain.Ad, creative *metadomain.AdCreative) {
	if creative == nil {
		return
	}

	// Nem todo criativo tem miniatura própria: a imagem principal cobre a falta
	ad.ThumbnailURL = creative.ThumbnailURL
	if ad.ThumbnailURL == "" {
		ad.ThumbnailURL = creative.ImageURL
	}
	ad.CreativeType = creative.ObjectType
	ad.AssetFeedSpec = creative.AssetFeedSpec
	ad.URLTags = creative.URLTags
	ad.TemplateURL = creative.TemplateURL
	ad.InstagramPermalinkURL = creative.InstagramPermalinkURL
	if ad.EffectiveObjectStoryID == "" {
		ad.EffectiveObjectStoryID = creative.EffectiveObjectStoryID
	}
}

func buildDailyMetric(accountID string, date time.Time, insight *metadomain.Insight) *domain.DailyMetric {
	metric := &domain.DailyMetric{
		AccountID:   accountID,
		Date:        date,
		LastUpdated: time.Now(),
	}

	if insight == nil {
		return metric
	}

	metric.Impressions = utils.ParseIntOrZero(insight.Impressions)
	metric.Clicks = utils.ParseIntOrZero(insight.Clicks)
	metric.Spend = utils.ParseFloatOrZero(insight.Spend)
	metric.Reach = utils.ParseIntOrZero(insight.Reach)
	metric.Conversions = toDomainActions(insight.Actions)

	return metric
}
