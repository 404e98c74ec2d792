package ratelimit

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sync-api/internal/domain"
)

const (
	// MaxRetries é o número máximo de novas tentativas após um erro de rate limit
	MaxRetries = 5

	backoffBase = 1 * time.Second
	backoffMax  = 5 * time.Minute

	// RetryAfterHint é a sugestão de espera devolvida aos clientes quando as
	// tentativas se esgotam, igual ao teto do backoff
	RetryAfterHint = backoffMax

	// Atraso extra aplicado após um rate limit em endpoints de insights
	insightsRetryDelay = 3 * time.Second
)

// MetricStore registra cada tentativa de chamada na tabela de métricas
type MetricStore interface {
	Record(metric *domain.APICallMetric) error
}

// CallContext identifica a chamada para fins de métricas e cálculo de atraso
type CallContext struct {
	AccountID string
	Endpoint  string
	CallType  string
	Points    int
}

// Executor envolve chamadas individuais à API externa com retry limitado.
// O estado de backoff (erros consecutivos, janela de cool-down) é único por
// processo e compartilhado entre todas as contas: um rate limit em uma conta
// desacelera as demais. Esse acoplamento é conservadorismo intencional para
// manter o processo inteiro dentro do orçamento da plataforma.
type Executor struct {
	governor *Governor
	metrics  MetricStore

	// sleep é substituível em testes
	sleep func(time.Duration)

	mu                sync.Mutex
	consecutiveErrors int
	lastErrorAt       time.Time
	waitTime          time.Duration
}

func NewExecutor(governor *Governor, metrics MetricStore) *Executor {
	return &Executor{
		governor: governor,
		metrics:  metrics,
		sleep:    time.Sleep,
	}
}

// Execute executa a operação com consciência de rate limit. Erros do conjunto
// de códigos de limitação são repetidos com backoff exponencial limitado até
// MaxRetries; qualquer outro erro é propagado imediatamente. Toda tentativa,
// com sucesso ou falha, é registrada na tabela de métricas.
func Execute[T any](ctx context.Context, e *Executor, call CallContext, op func() (T, error)) (T, error) {
	var zero T

	for retries := 0; ; retries++ {
		if remaining := e.cooldownRemaining(); remaining > 0 {
			logrus.WithFields(logrus.Fields{
				"endpoint":     call.Endpoint,
				"remaining_ms": remaining.Milliseconds(),
			}).Info("executor: aguardando cool-down de rate limit")
			e.sleep(remaining)
		}

		if e.governor != nil {
			if delay := e.governor.Delay(call.AccountID, call.Endpoint, call.Points); delay > 0 {
				e.sleep(delay)
			}
		}

		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op()
		if err == nil {
			e.reset()
			e.record(call, true, nil)
			return result, nil
		}

		e.record(call, false, err)

		if !metadomain.IsRateLimitError(err) {
			return zero, err
		}

		wait := e.registerRateLimitHit(retries)

		if retries >= MaxRetries {
			logrus.WithFields(logrus.Fields{
				"endpoint":    call.Endpoint,
				"max_retries": MaxRetries,
			}).Error("executor: limite de tentativas atingido para rate limit")
			return zero, err
		}

		logrus.WithFields(logrus.Fields{
			"endpoint":           call.Endpoint,
			"consecutive_errors": e.consecutive(),
			"wait_ms":            wait.Milliseconds(),
			"retry":              retries + 1,
		}).Warn("executor: rate limit atingido, aguardando antes de repetir")

		e.sleep(wait)

		if isInsightsEndpoint(call.Endpoint) {
			e.sleep(insightsRetryDelay)
		}
	}
}

// cooldownRemaining retorna quanto ainda falta da janela de espera registrada
// por um rate limit anterior (possivelmente de outra chamada concorrente)
func (e *Executor) cooldownRemaining() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.waitTime == 0 {
		return 0
	}

	elapsed := time.Since(e.lastErrorAt)
	if elapsed >= e.waitTime {
		return 0
	}
	return e.waitTime - elapsed
}

// registerRateLimitHit atualiza o estado compartilhado e retorna o tempo de
// espera: exponencial com jitter na primeira ocorrência, exponencial puro e
// limitado a 5 minutos enquanto houver erros consecutivos.
func (e *Executor) registerRateLimitHit(retry int) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	wait := backoffDelay(retry, e.consecutiveErrors)

	e.consecutiveErrors++
	e.lastErrorAt = time.Now()
	e.waitTime = wait

	return wait
}

func (e *Executor) reset() {
	e.mu.Lock()
	e.consecutiveErrors = 0
	e.waitTime = 0
	e.mu.Unlock()
}

func (e *Executor) consecutive() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.consecutiveErrors
}

// backoffDelay calcula a espera para uma nova tentativa.
func backoffDelay(retry, consecutiveErrors int) time.Duration {
	if consecutiveErrors > 0 {
		wait := backoffBase << uint(min(consecutiveErrors, 20))
		if wait > backoffMax {
			wait = backoffMax
		}
		return wait
	}

	wait := backoffBase << uint(min(retry, 20))
	jitter := time.Duration(rand.Int63n(int64(time.Second)))
	if wait+jitter > backoffMax {
		return backoffMax
	}
	return wait + jitter
}

func (e *Executor) record(call CallContext, success bool, callErr error) {
	if e.metrics == nil {
		return
	}

	metric := &domain.APICallMetric{
		AccountID:  call.AccountID,
		Endpoint:   call.Endpoint,
		CallType:   call.CallType,
		PointsUsed: call.Points,
		Success:    success,
		CreatedAt:  time.Now(),
	}

	if callErr != nil {
		metric.ErrorMessage = callErr.Error()
		if code := metadomain.ErrorCode(callErr); code != 0 {
			metric.ErrorCode = strconv.Itoa(code)
		}
	}

	// O registro de métricas nunca pode derrubar a operação chamadora
	if err := e.metrics.Record(metric); err != nil {
		logrus.WithFields(logrus.Fields{
			"endpoint": call.Endpoint,
			"error":    err.Error(),
		}).Warn("executor: erro ao registrar métrica de chamada")
	}
}
