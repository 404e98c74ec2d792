package domain

import (
	"encoding/json"
	"time"
)

// Ad representa um anúncio espelhado da API do Meta, incluindo os campos de
// criativo obtidos pela consulta secundária de enriquecimento. A ausência do
// enriquecimento não impede a persistência do anúncio. Chave: ad_id.
type Ad struct {
	AdID                   string          `json:"ad_id"`
	AdSetID                string          `json:"ad_set_id"`
	CampaignID             string          `json:"campaign_id"`
	AccountID              string          `json:"account_id"`
	Name                   string          `json:"name"`
	Status                 string          `json:"status"`
	Creative               json.RawMessage `json:"creative,omitempty"`
	TrackingSpecs          json.RawMessage `json:"tracking_specs,omitempty"`
	ConversionSpecs        json.RawMessage `json:"conversion_specs,omitempty"`
	PreviewURL             string          `json:"preview_url"`
	CreativeID             string          `json:"creative_id"`
	EffectiveObjectStoryID string          `json:"effective_object_story_id"`
	ConfiguredStatus       string          `json:"configured_status"`
	EffectiveStatus        string          `json:"effective_status"`
	IssuesInfo             json.RawMessage `json:"issues_info,omitempty"`
	SourceAdID             string          `json:"source_ad_id"`
	ObjectStorySpec        json.RawMessage `json:"object_story_spec,omitempty"`
	Recommendations        json.RawMessage `json:"recommendations,omitempty"`

	// Campos de enriquecimento do criativo
	ThumbnailURL          string          `json:"thumbnail_url"`
	CreativeType          string          `json:"creative_type"`
	AssetFeedSpec         json.RawMessage `json:"asset_feed_spec,omitempty"`
	URLTags               string          `json:"url_tags"`
	TemplateURL           string          `json:"template_url"`
	InstagramPermalinkURL string          `json:"instagram_permalink_url"`

	Impressions       int64       `json:"impressions"`
	Clicks            int64       `json:"clicks"`
	Reach             int64       `json:"reach"`
	Spend             float64     `json:"spend"`
	Conversions       Conversions `json:"conversions"`
	CostPerConversion *float64    `json:"cost_per_conversion"`

	LastUpdated time.Time `json:"last_updated"`
}
