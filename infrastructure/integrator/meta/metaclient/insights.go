package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

// GetInsights busca as métricas agregadas de uma entidade (conta, campanha,
// conjunto ou anúncio) para o intervalo de datas dado. A API retorna zero ou
// um registro para o nível pedido; ausência de dados retorna nil, não erro.
func (c *MetaClient) GetInsights(ctx context.Context, accountID, objectID, level string, rng domain.DateRange) (*metadomain.Insight, error) {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", rng.SinceString(), rng.UntilString())

	params := url.Values{}
	params.Set("fields", strings.Join(metadomain.InsightFields, ","))
	params.Set("time_range", timeRange)
	params.Set("level", level)

	requestURL := c.buildURL(fmt.Sprintf("%s/insights", objectID), params)

	var response metadomain.Page[metadomain.Insight]
	if err := c.doGet(ctx, accountID, "insights", requestURL, &response); err != nil {
		return nil, err
	}

	if len(response.Data) == 0 {
		return nil, nil
	}

	return &response.Data[0], nil
}
