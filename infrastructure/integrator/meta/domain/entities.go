package metadomain

import "encoding/json"

// Tipos brutos retornados pela Graph API. Todos os valores numéricos de
// atributos e métricas chegam como string (ou ausentes) e são normalizados
// apenas na camada de sincronização, antes de qualquer regra de negócio.

// AdAccount são os atributos de uma conta de anúncios
type AdAccount struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	AccountStatus          int    `json:"account_status"`
	AmountSpent            string `json:"amount_spent"`
	Balance                string `json:"balance"`
	Currency               string `json:"currency"`
	SpendCap               string `json:"spend_cap"`
	TimezoneName           string `json:"timezone_name"`
	TimezoneOffsetHoursUTC float64 `json:"timezone_offset_hours_utc"`
	BusinessCountryCode    string `json:"business_country_code"`
	DisableReason          int    `json:"disable_reason"`
	IsPrepayAccount        bool   `json:"is_prepay_account"`
	TaxIDStatus            string `json:"tax_id_status"`
}

// Campaign são os atributos estruturais de uma campanha
type Campaign struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Status              string          `json:"status"`
	Objective           string          `json:"objective"`
	SpecialAdCategories []string        `json:"special_ad_categories"`
	BidStrategy         string          `json:"bid_strategy"`
	BudgetRemaining     string          `json:"budget_remaining"`
	BuyingType          string          `json:"buying_type"`
	DailyBudget         string          `json:"daily_budget"`
	LifetimeBudget      string          `json:"lifetime_budget"`
	SpendCap            string          `json:"spend_cap"`
	ConfiguredStatus    string          `json:"configured_status"`
	EffectiveStatus     string          `json:"effective_status"`
	SourceCampaignID    string          `json:"source_campaign_id"`
	PromotedObject      json.RawMessage `json:"promoted_object,omitempty"`
	Recommendations     json.RawMessage `json:"recommendations,omitempty"`
	ToplineID           string          `json:"topline_id"`
	PacingType          []string        `json:"pacing_type"`
	StartTime           string          `json:"start_time"`
	EndTime             string          `json:"end_time"`
}

// AdSet são os atributos estruturais de um conjunto de anúncios
type AdSet struct {
	ID                         string          `json:"id"`
	Name                       string          `json:"name"`
	Status                     string          `json:"status"`
	DailyBudget                string          `json:"daily_budget"`
	LifetimeBudget             string          `json:"lifetime_budget"`
	BidAmount                  string          `json:"bid_amount"`
	BillingEvent               string          `json:"billing_event"`
	OptimizationGoal           string          `json:"optimization_goal"`
	Targeting                  json.RawMessage `json:"targeting,omitempty"`
	BidStrategy                string          `json:"bid_strategy"`
	AttributionSpec            json.RawMessage `json:"attribution_spec,omitempty"`
	PromotedObject             json.RawMessage `json:"promoted_object,omitempty"`
	PacingType                 []string        `json:"pacing_type"`
	ConfiguredStatus           string          `json:"configured_status"`
	EffectiveStatus            string          `json:"effective_status"`
	DestinationType            string          `json:"destination_type"`
	FrequencyControlSpecs      json.RawMessage `json:"frequency_control_specs,omitempty"`
	IsDynamicCreative          bool            `json:"is_dynamic_creative"`
	IssuesInfo                 json.RawMessage `json:"issues_info,omitempty"`
	LearningStageInfo          json.RawMessage `json:"learning_stage_info,omitempty"`
	SourceAdSetID              string          `json:"source_adset_id"`
	TargetingOptimizationTypes json.RawMessage `json:"targeting_optimization_types,omitempty"`
	UseNewAppClick             bool            `json:"use_new_app_click"`
	StartTime                  string          `json:"start_time"`
	EndTime                    string          `json:"end_time"`
}

// CreativeRef é a referência de criativo embutida em um anúncio
type CreativeRef struct {
	ID string `json:"id"`
}

// Ad são os atributos estruturais de um anúncio
type Ad struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	Status                 string          `json:"status"`
	Creative               *CreativeRef    `json:"creative,omitempty"`
	TrackingSpecs          json.RawMessage `json:"tracking_specs,omitempty"`
	ConversionSpecs        json.RawMessage `json:"conversion_specs,omitempty"`
	PreviewShareableLink   string          `json:"preview_shareable_link"`
	EffectiveObjectStoryID string          `json:"effective_object_story_id"`
	ConfiguredStatus       string          `json:"configured_status"`
	EffectiveStatus        string          `json:"effective_status"`
	IssuesInfo             json.RawMessage `json:"issues_info,omitempty"`
	SourceAdID             string          `json:"source_ad_id"`
	ObjectStorySpec        json.RawMessage `json:"object_story_spec,omitempty"`
	Recommendations        json.RawMessage `json:"recommendations,omitempty"`
}

// AdCreative são os campos estendidos do criativo, buscados pela consulta
// secundária de enriquecimento
type AdCreative struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	Title                  string          `json:"title"`
	Body                   string          `json:"body"`
	ObjectType             string          `json:"object_type"`
	ThumbnailURL           string          `json:"thumbnail_url"`
	ImageURL               string          `json:"image_url"`
	VideoID                string          `json:"video_id"`
	URLTags                string          `json:"url_tags"`
	TemplateURL            string          `json:"template_url"`
	InstagramPermalinkURL  string          `json:"instagram_permalink_url"`
	EffectiveObjectStoryID string          `json:"effective_object_story_id"`
	AssetFeedSpec          json.RawMessage `json:"asset_feed_spec,omitempty"`
	ObjectStorySpec        json.RawMessage `json:"object_story_spec,omitempty"`
	PlatformCustomizations json.RawMessage `json:"platform_customizations,omitempty"`
}
