package metaclient

import (
	"context"
	"net/url"
	"strings"

	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
)

var adCreativeFields = []string{
	"id",
	"name",
	"title",
	"body",
	"object_type",
	"thumbnail_url",
	"image_url",
	"video_id",
	"url_tags",
	"template_url",
	"instagram_permalink_url",
	"effective_object_story_id",
	"asset_feed_spec",
	"object_story_spec",
	"platform_customizations",
}

// GetAdCreativeByID busca os campos estendidos de um criativo pelo id direto
func (c *MetaClient) GetAdCreativeByID(ctx context.Context, accountID, creativeID string) (*metadomain.AdCreative, error) {
	params := url.Values{}
	params.Set("fields", strings.Join(adCreativeFields, ","))

	requestURL := c.buildURL(creativeID, params)

	creative := &metadomain.AdCreative{}
	if err := c.doGet(ctx, accountID, "creative", requestURL, creative); err != nil {
		return nil, err
	}

	return creative, nil
}
