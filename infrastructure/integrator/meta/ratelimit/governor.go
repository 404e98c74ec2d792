// Package ratelimit controla o ritmo das chamadas à Graph API: o Governor
// acompanha o uso reportado pela plataforma e aconselha atrasos preventivos,
// e o Executor aplica retry com backoff exponencial limitado para erros de
// limitação de taxa.
package ratelimit

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

const (
	// Limiar de uso a partir do qual o Governor passa a aconselhar atraso
	usageThresholdPercent = 80.0

	minDelay      = 1 * time.Second
	insightsDelay = 3 * time.Second
	maxDelay      = 5 * time.Second
)

// SnapshotStore persiste o snapshot mais recente de uso por (conta, endpoint)
type SnapshotStore interface {
	SaveSnapshot(snapshot *domain.RateLimitSnapshot) error
}

// businessUseCaseUsage espelha o header x-business-use-case-usage da API
type businessUseCaseUsage struct {
	UsagePercent                float64 `json:"acc_id_util_pct"`
	CallCount                   int     `json:"call_count"`
	TotalCPUTime                float64 `json:"total_cputime"`
	TotalTime                   float64 `json:"total_time"`
	EstimatedTimeToRegainAccess float64 `json:"estimated_time_to_regain_access"`
	BusinessUseCase             string  `json:"business_use_case"`
}

// adAccountUsage espelha o header x-ad-account-usage da API
type adAccountUsage struct {
	ResetTimeDuration float64 `json:"reset_time_duration"`
}

// Governor acompanha o uso de pontos reportado pela API dentro da janela
// deslizante da plataforma e decide quanto esperar antes da próxima chamada.
// Nunca produz erro: apenas aconselha atraso.
type Governor struct {
	store SnapshotStore
	tier  string

	mu    sync.Mutex
	usage map[string]*domain.RateLimitSnapshot
}

func NewGovernor(store SnapshotStore, tier string) *Governor {
	return &Governor{
		store: store,
		tier:  tier,
		usage: make(map[string]*domain.RateLimitSnapshot),
	}
}

// Track extrai os headers de uso da resposta e persiste o snapshot para
// observabilidade. Falha de persistência é registrada e ignorada: nunca
// aborta a operação chamadora.
func (g *Governor) Track(accountID, endpoint string, header http.Header) {
	snapshot := &domain.RateLimitSnapshot{
		AccountID:   accountID,
		Endpoint:    endpoint,
		Tier:        g.tier,
		LastUpdated: time.Now(),
	}

	if raw := header.Get("x-business-use-case-usage"); raw != "" {
		var usage businessUseCaseUsage
		if err := json.Unmarshal([]byte(raw), &usage); err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"endpoint":   endpoint,
				"error":      err.Error(),
			}).Warn("governor: erro ao decodificar header de uso da API")
		} else {
			snapshot.UsagePercent = usage.UsagePercent
			snapshot.CallCount = usage.CallCount
			snapshot.TotalCPUTime = usage.TotalCPUTime
			snapshot.TotalTime = usage.TotalTime
			snapshot.EstimatedTimeToRegainAccess = usage.EstimatedTimeToRegainAccess
			snapshot.BusinessUseCase = usage.BusinessUseCase
		}
	}

	if raw := header.Get("x-ad-account-usage"); raw != "" {
		var usage adAccountUsage
		if err := json.Unmarshal([]byte(raw), &usage); err == nil {
			snapshot.ResetTimeDuration = usage.ResetTimeDuration
		}
	}

	g.mu.Lock()
	g.usage[snapshotKey(accountID, endpoint)] = snapshot
	g.mu.Unlock()

	if g.store != nil {
		if err := g.store.SaveSnapshot(snapshot); err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"endpoint":   endpoint,
				"error":      err.Error(),
			}).Warn("governor: erro ao persistir snapshot de rate limit")
		}
	}
}

// Delay calcula o atraso artificial antes da próxima chamada. Acima de 80% de
// uso, o atraso cresce com o volume de chamadas acumulado na janela reportada
// pela plataforma (ou com o custo em pontos da operação, se maior), limitado
// a 5s.
func (g *Governor) Delay(accountID, endpoint string, points int) time.Duration {
	g.mu.Lock()
	snapshot, ok := g.usage[snapshotKey(accountID, endpoint)]
	g.mu.Unlock()

	if !ok || snapshot.UsagePercent <= usageThresholdPercent {
		return 0
	}

	base := minDelay
	if isInsightsEndpoint(endpoint) {
		base = insightsDelay
	}

	cost := points
	if snapshot.CallCount > cost {
		cost = snapshot.CallCount
	}

	multiplier := int(math.Ceil(float64(cost) / 10))
	if multiplier < 1 {
		multiplier = 1
	}

	delay := base * time.Duration(multiplier)
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func snapshotKey(accountID, endpoint string) string {
	return accountID + ":" + endpoint
}

func isInsightsEndpoint(endpoint string) bool {
	return strings.Contains(endpoint, "insights")
}
