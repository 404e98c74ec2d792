package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
)

var campaignFields = []string{
	"name",
	"status",
	"objective",
	"special_ad_categories",
	"bid_strategy",
	"budget_remaining",
	"buying_type",
	"daily_budget",
	"lifetime_budget",
	"configured_status",
	"effective_status",
	"source_campaign_id",
	"promoted_object",
	"recommendations",
	"spend_cap",
	"topline_id",
	"pacing_type",
	"start_time",
	"end_time",
}

var adSetFields = []string{
	"name",
	"status",
	"daily_budget",
	"lifetime_budget",
	"bid_amount",
	"billing_event",
	"optimization_goal",
	"targeting",
	"bid_strategy",
	"attribution_spec",
	"promoted_object",
	"pacing_type",
	"configured_status",
	"effective_status",
	"destination_type",
	"frequency_control_specs",
	"is_dynamic_creative",
	"issues_info",
	"learning_stage_info",
	"source_adset_id",
	"targeting_optimization_types",
	"use_new_app_click",
	"start_time",
	"end_time",
}

var adFields = []string{
	"name",
	"status",
	"creative",
	"tracking_specs",
	"conversion_specs",
	"preview_shareable_link",
	"effective_object_story_id",
	"configured_status",
	"effective_status",
	"issues_info",
	"source_ad_id",
	"object_story_spec",
	"recommendations",
}

// collectionParams monta os parâmetros comuns das coleções paginadas por
// cursor. Com updatedSince preenchido a coleção é filtrada no servidor pelas
// entidades alteradas desde o instante dado.
func (c *MetaClient) collectionParams(fields []string, after string, updatedSince time.Time) url.Values {
	params := url.Values{}
	params.Set("fields", strings.Join(fields, ","))
	params.Set("limit", strconv.Itoa(c.Cfg.Meta.PageLimit))
	if after != "" {
		params.Set("after", after)
	}
	if !updatedSince.IsZero() {
		params.Set("filtering", fmt.Sprintf(
			`[{"field":"updated_time","operator":"GREATER_THAN","value":%d}]`,
			updatedSince.Unix(),
		))
	}
	return params
}

// GetCampaignsPage busca uma página de campanhas da conta
func (c *MetaClient) GetCampaignsPage(ctx context.Context, accountID, after string, updatedSince time.Time) (metadomain.Page[metadomain.Campaign], error) {
	params := c.collectionParams(campaignFields, after, updatedSince)
	requestURL := c.buildURL(fmt.Sprintf("act_%s/campaigns", accountID), params)

	var page metadomain.Page[metadomain.Campaign]
	if err := c.doGet(ctx, accountID, "campaigns", requestURL, &page); err != nil {
		return metadomain.Page[metadomain.Campaign]{}, err
	}
	return page, nil
}

// GetAdSetsPage busca uma página de conjuntos de anúncios da campanha
func (c *MetaClient) GetAdSetsPage(ctx context.Context, accountID, campaignID, after string, updatedSince time.Time) (metadomain.Page[metadomain.AdSet], error) {
	params := c.collectionParams(adSetFields, after, updatedSince)
	requestURL := c.buildURL(fmt.Sprintf("%s/adsets", campaignID), params)

	var page metadomain.Page[metadomain.AdSet]
	if err := c.doGet(ctx, accountID, "adsets", requestURL, &page); err != nil {
		return metadomain.Page[metadomain.AdSet]{}, err
	}
	return page, nil
}

// GetAdsPage busca uma página de anúncios do conjunto
func (c *MetaClient) GetAdsPage(ctx context.Context, accountID, adSetID, after string, updatedSince time.Time) (metadomain.Page[metadomain.Ad], error) {
	params := c.collectionParams(adFields, after, updatedSince)
	requestURL := c.buildURL(fmt.Sprintf("%s/ads", adSetID), params)

	var page metadomain.Page[metadomain.Ad]
	if err := c.doGet(ctx, accountID, "ads", requestURL, &page); err != nil {
		return metadomain.Page[metadomain.Ad]{}, err
	}
	return page, nil
}
