package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/meta-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

const (
	adsTable = "meta_ads a"
)

type AdRepository interface {
	GetByAdID(adID string) (*domain.Ad, error)
	ListByAdSetID(adSetID string) ([]*domain.Ad, error)
	SaveOrUpdate(ad *domain.Ad) error
}

type adRepository struct {
	conn *postgres.Connection
}

func NewAdRepository(conn *postgres.Connection) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

const adColumns = `a.ad_id, a.ad_set_id, a.campaign_id, a.account_id, a.name, a.status,
	a.creative, a.tracking_specs, a.conversion_specs, a.preview_url, a.creative_id,
	a.effective_object_story_id, a.configured_status, a.effective_status, a.issues_info,
	a.source_ad_id, a.object_story_spec, a.recommendations,
	a.thumbnail_url, a.creative_type, a.asset_feed_spec, a.url_tags, a.template_url,
	a.instagram_permalink_url,
	a.impressions, a.clicks, a.reach, a.spend, a.conversions, a.cost_per_conversion,
	a.last_updated`

func (r *adRepository) GetByAdID(adID string) (*domain.Ad, error) {
	query, args, err := squirrel.
		Select(adColumns).
		From(adsTable).
		Where(squirrel.Eq{"a.ad_id": adID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	ad, err := scanAd(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
	}

	return ad, nil
}

func (r *adRepository) ListByAdSetID(adSetID string) ([]*domain.Ad, error) {
	query, args, err := squirrel.
		Select(adColumns).
		From(adsTable).
		Where(squirrel.Eq{"a.ad_set_id": adSetID}).
		OrderBy("a.ad_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ads := make([]*domain.Ad, 0)
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear anúncios: %w", err)
		}
		ads = append(ads, ad)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ads, nil
}

func (r *adRepository) SaveOrUpdate(ad *domain.Ad) error {
	conversionsJSON, err := marshalNullable(ad.Conversions)
	if err != nil {
		return fmt.Errorf("erro ao serializar conversions para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("meta_ads").
		Columns(
			"ad_id", "ad_set_id", "campaign_id", "account_id", "name", "status",
			"creative", "tracking_specs", "conversion_specs", "preview_url", "creative_id",
			"effective_object_story_id", "configured_status", "effective_status", "issues_info",
			"source_ad_id", "object_story_spec", "recommendations",
			"thumbnail_url", "creative_type", "asset_feed_spec", "url_tags", "template_url",
			"instagram_permalink_url",
			"impressions", "clicks", "reach", "spend", "conversions", "cost_per_conversion",
			"last_updated",
		).
		Values(
			ad.AdID,
			ad.AdSetID,
			ad.CampaignID,
			ad.AccountID,
			ad.Name,
			ad.Status,
			rawMessageOrNil(ad.Creative),
			rawMessageOrNil(ad.TrackingSpecs),
			rawMessageOrNil(ad.ConversionSpecs),
			ad.PreviewURL,
			ad.CreativeID,
			ad.EffectiveObjectStoryID,
			ad.ConfiguredStatus,
			ad.EffectiveStatus,
			rawMessageOrNil(ad.IssuesInfo),
			ad.SourceAdID,
			rawMessageOrNil(ad.ObjectStorySpec),
			rawMessageOrNil(ad.Recommendations),
			ad.ThumbnailURL,
			ad.CreativeType,
			rawMessageOrNil(ad.AssetFeedSpec),
			ad.URLTags,
			ad.TemplateURL,
			ad.InstagramPermalinkURL,
			ad.Impressions,
			ad.Clicks,
			ad.Reach,
			ad.Spend,
			conversionsJSON,
			ad.CostPerConversion,
			ad.LastUpdated,
		).
		Suffix(`
			ON CONFLICT (ad_id) DO UPDATE SET
				ad_set_id = EXCLUDED.ad_set_id,
				campaign_id = EXCLUDED.campaign_id,
				account_id = EXCLUDED.account_id,
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				creative = EXCLUDED.creative,
				tracking_specs = EXCLUDED.tracking_specs,
				conversion_specs = EXCLUDED.conversion_specs,
				preview_url = EXCLUDED.preview_url,
				creative_id = EXCLUDED.creative_id,
				effective_object_story_id = EXCLUDED.effective_object_story_id,
				configured_status = EXCLUDED.configured_status,
				effective_status = EXCLUDED.effective_status,
				issues_info = EXCLUDED.issues_info,
				source_ad_id = EXCLUDED.source_ad_id,
				object_story_spec = EXCLUDED.object_story_spec,
				recommendations = EXCLUDED.recommendations,
				thumbnail_url = EXCLUDED.thumbnail_url,
				creative_type = EXCLUDED.creative_type,
				asset_feed_spec = EXCLUDED.asset_feed_spec,
				url_tags = EXCLUDED.url_tags,
				template_url = EXCLUDED.template_url,
				instagram_permalink_url = EXCLUDED.instagram_permalink_url,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				reach = EXCLUDED.reach,
				spend = EXCLUDED.spend,
				conversions = EXCLUDED.conversions,
				cost_per_conversion = EXCLUDED.cost_per_conversion,
				last_updated = EXCLUDED.last_updated,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func scanAd(row rowScanner) (*domain.Ad, error) {
	ad := &domain.Ad{}
	var conversionsJSON []byte
	var creative, trackingSpecs, conversionSpecs, issuesInfo []byte
	var objectStorySpec, recommendations, assetFeedSpec []byte

	err := row.Scan(
		&ad.AdID,
		&ad.AdSetID,
		&ad.CampaignID,
		&ad.AccountID,
		&ad.Name,
		&ad.Status,
		&creative,
		&trackingSpecs,
		&conversionSpecs,
		&ad.PreviewURL,
		&ad.CreativeID,
		&ad.EffectiveObjectStoryID,
		&ad.ConfiguredStatus,
		&ad.EffectiveStatus,
		&issuesInfo,
		&ad.SourceAdID,
		&objectStorySpec,
		&recommendations,
		&ad.ThumbnailURL,
		&ad.CreativeType,
		&assetFeedSpec,
		&ad.URLTags,
		&ad.TemplateURL,
		&ad.InstagramPermalinkURL,
		&ad.Impressions,
		&ad.Clicks,
		&ad.Reach,
		&ad.Spend,
		&conversionsJSON,
		&ad.CostPerConversion,
		&ad.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if conversionsJSON != nil {
		if err := json.Unmarshal(conversionsJSON, &ad.Conversions); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de conversions: %w", err)
		}
	}
	ad.Creative = creative
	ad.TrackingSpecs = trackingSpecs
	ad.ConversionSpecs = conversionSpecs
	ad.IssuesInfo = issuesInfo
	ad.ObjectStorySpec = objectStorySpec
	ad.Recommendations = recommendations
	ad.AssetFeedSpec = assetFeedSpec

	return ad, nil
}
