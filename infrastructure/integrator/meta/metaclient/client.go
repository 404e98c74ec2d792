package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/ratelimit"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

type Client interface {
	GetAdAccountByID(ctx context.Context, accountID string) (*metadomain.AdAccount, error)
	GetInsights(ctx context.Context, accountID, objectID, level string, rng domain.DateRange) (*metadomain.Insight, error)
	GetCampaignsPage(ctx context.Context, accountID, after string, updatedSince time.Time) (metadomain.Page[metadomain.Campaign], error)
	GetAdSetsPage(ctx context.Context, accountID, campaignID, after string, updatedSince time.Time) (metadomain.Page[metadomain.AdSet], error)
	GetAdsPage(ctx context.Context, accountID, adSetID, after string, updatedSince time.Time) (metadomain.Page[metadomain.Ad], error)
	GetAdCreativeByID(ctx context.Context, accountID, creativeID string) (*metadomain.AdCreative, error)
}

type MetaClient struct {
	Cfg      *config.Config
	governor *ratelimit.Governor
	http     *http.Client

	// limiter impõe o espaçamento mínimo entre chamadas, independente do
	// atraso aconselhado pelo Governor
	limiter *rate.Limiter
}

func NewClient(cfg *config.Config, governor *ratelimit.Governor) Client {
	minDelay := time.Duration(cfg.Meta.MinCallDelayMS) * time.Millisecond
	if minDelay <= 0 {
		minDelay = time.Second
	}

	return &MetaClient{
		Cfg:      cfg,
		governor: governor,
		http:     &http.Client{Timeout: 60 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(minDelay), 1),
	}
}

// doGet executa uma requisição GET na Graph API, registra os headers de uso no
// Governor e decodifica o corpo em out. Erros da API viram APIError.
func (c *MetaClient) doGet(ctx context.Context, accountID, endpoint, requestURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("metaclient: erro ao criar a requisição")
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logrus.WithError(err).Error("metaclient: erro ao fazer a requisição")
		return err
	}
	defer resp.Body.Close()

	if c.governor != nil {
		c.governor.Track(accountID, endpoint, resp.Header)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler o corpo da resposta: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp metadomain.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Code == 0 {
			return fmt.Errorf("erro na requisição: %s status: %s", endpoint, resp.Status)
		}
		return metadomain.NewAPIError(&errResp)
	}

	if err := json.Unmarshal(body, out); err != nil {
		logrus.WithError(err).Error("metaclient: erro ao decodificar JSON")
		return err
	}

	return nil
}

// buildURL monta a URL da Graph API com o access token e os parâmetros dados
func (c *MetaClient) buildURL(path string, params url.Values) string {
	params.Set("access_token", c.Cfg.Meta.AccessToken)
	return fmt.Sprintf("%s/%s?%s", c.Cfg.Meta.URL, path, params.Encode())
}
