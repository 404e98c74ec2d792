package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sync-api/infrastructure/repository"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/internal/domain"
	"github.com/vfg2006/meta-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/meta-sync-api/pkg/utils"
)

// DailyMetricsSyncConfig representa a configuração do agendador de métricas diárias
type DailyMetricsSyncConfig struct {
	CronSchedule      string
	BatchSize         int
	BatchDelaySeconds int
	CallDelaySeconds  int
	SyncEnabled       bool
}

// DailyMetricsSyncService agenda e executa a sincronização diária de métricas
// de todas as contas conhecidas, em lotes espaçados para respeitar os limites
// da API
type DailyMetricsSyncService struct {
	scheduler           *gocron.Scheduler
	config              DailyMetricsSyncConfig
	appConfig           *config.Config
	accountInsightRepo  repository.AccountInsightRepository
	dailyMetricRepo     repository.DailyMetricRepository
	syncLogRepo         repository.SyncLogRepository
	syncService         syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewDailyMetricsSyncService cria uma nova instância do serviço de sincronização diária
func NewDailyMetricsSyncService(
	accountInsightRepo repository.AccountInsightRepository,
	dailyMetricRepo repository.DailyMetricRepository,
	syncLogRepo repository.SyncLogRepository,
	syncService syncing.Syncer,
	appConfig *config.Config,
) *DailyMetricsSyncService {
	syncConfig := DailyMetricsSyncConfig{
		CronSchedule:      appConfig.DailyMetricsSync.CronSchedule,
		BatchSize:         appConfig.Sync.BatchSize,
		BatchDelaySeconds: appConfig.Sync.BatchDelaySeconds,
		CallDelaySeconds:  appConfig.Sync.APICallDelaySeconds,
		SyncEnabled:       appConfig.DailyMetricsSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"batch_size":          syncConfig.BatchSize,
		"batch_delay_seconds": syncConfig.BatchDelaySeconds,
		"call_delay_seconds":  syncConfig.CallDelaySeconds,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de métricas diárias carregada")

	return &DailyMetricsSyncService{
		scheduler:          scheduler,
		config:             syncConfig,
		appConfig:          appConfig,
		accountInsightRepo: accountInsightRepo,
		dailyMetricRepo:    dailyMetricRepo,
		syncLogRepo:        syncLogRepo,
		syncService:        syncService,
		syncRunning:        false,
	}
}

// Start inicia o agendador
func (s *DailyMetricsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização diária de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de métricas diárias")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(context.Background(), false)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização diária de métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de métricas diárias")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAccounts sincroniza as métricas do dia anterior de todas as contas,
// em lotes, gravando o resultado consolidado em meta_sync_logs
func (s *DailyMetricsSyncService) syncAllAccounts(ctx context.Context, force bool) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização diária de métricas já em andamento, ignorando")
		return
	}
	startTime := time.Now()
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	runID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar run_id para sincronização diária")
		return
	}

	// Sempre o dia anterior completo: o dia corrente ainda está em andamento
	date := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	syncLog := &domain.SyncLog{
		RunID: runID,
		Type:  domain.SyncLogTypeDailyMetrics,
		Date:  date,
	}

	accountIDs, err := s.accountInsightRepo.ListAccountIDs()
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar contas para sincronização diária de métricas")
		return
	}

	if len(accountIDs) == 0 {
		logrus.Info("Nenhuma conta encontrada para sincronização diária de métricas")
		return
	}

	syncLog.TotalAccounts = len(accountIDs)

	logrus.WithFields(logrus.Fields{
		"run_id":   runID,
		"accounts": len(accountIDs),
		"date":     date.Format(time.DateOnly),
		"force":    force,
	}).Info("Iniciando sincronização diária de métricas")

	batches := chunkAccounts(accountIDs, s.config.BatchSize)
	for batchIndex, batch := range batches {
		if err := ctx.Err(); err != nil {
			logrus.WithField("run_id", runID).Warn("Sincronização diária interrompida pelo contexto")
			break
		}

		s.processBatch(ctx, batch, date, force, syncLog)

		// Pausa entre lotes para não saturar os limites da API
		if batchIndex < len(batches)-1 {
			time.Sleep(time.Duration(s.config.BatchDelaySeconds) * time.Second)
		}
	}

	syncLog.Finish()
	if err := s.syncLogRepo.Save(syncLog); err != nil {
		logrus.WithError(err).Error("Erro ao gravar log da sincronização diária")
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"run_id":    runID,
		"duration":  time.Since(startTime).String(),
		"processed": syncLog.ProcessedAccounts,
		"succeeded": syncLog.SuccessfulUpdates,
		"failed":    syncLog.FailedUpdates,
		"success":   syncLog.Success,
	}).Info("Sincronização diária de métricas concluída")
}

func (s *DailyMetricsSyncService) processBatch(ctx context.Context, batch []string, date time.Time, force bool, syncLog *domain.SyncLog) {
	for _, accountID := range batch {
		syncLog.ProcessedAccounts++

		// Contas que já têm a linha do dia são puladas, poupando chamadas à API
		if !force && s.hasMetricsForDate(accountID, date) {
			syncLog.SuccessfulUpdates++
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"date":       date.Format(time.DateOnly),
			}).Debug("Métricas do dia já sincronizadas, pulando conta")
			continue
		}

		_, err := s.syncService.SyncDailyMetrics(ctx, accountID, date)
		if err != nil {
			syncLog.RecordError(accountID, "account", accountID, err.Error())
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"date":       date.Format(time.DateOnly),
				"error":      err,
			}).Error("Erro ao sincronizar métricas diárias da conta, seguindo para a próxima")
		} else {
			syncLog.SuccessfulUpdates++
		}

		// Pausa entre contas do mesmo lote
		time.Sleep(time.Duration(s.config.CallDelaySeconds) * time.Second)
	}
}

// hasMetricsForDate verifica se a conta já tem a linha do dia persistida.
// Falha na consulta conta como ausência: a conta é sincronizada de novo.
func (s *DailyMetricsSyncService) hasMetricsForDate(accountID string, date time.Time) bool {
	metric, err := s.dailyMetricRepo.GetByAccountIDAndDate(accountID, date)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"date":       date.Format(time.DateOnly),
			"error":      err,
		}).Warn("Erro ao verificar métricas do dia, a conta será sincronizada")
		return false
	}
	return metric != nil
}

// CachedMetricsForDate retorna as métricas já persistidas do dia e o total de
// contas conhecidas, para a resposta imediata do gatilho manual
func (s *DailyMetricsSyncService) CachedMetricsForDate(date time.Time) ([]*domain.DailyMetric, int, error) {
	accountIDs, err := s.accountInsightRepo.ListAccountIDs()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar contas: %w", err)
	}

	metrics, err := s.dailyMetricRepo.ListByDate(date)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar métricas do dia: %w", err)
	}

	return metrics, len(accountIDs), nil
}

// IsRunning informa se há uma sincronização em andamento
func (s *DailyMetricsSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// LastCompletedAt retorna o instante da última sincronização concluída
func (s *DailyMetricsSyncService) LastCompletedAt() time.Time {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.lastSyncCompletedAt
}

// TriggerManualSync inicia manualmente uma sincronização diária de métricas
func (s *DailyMetricsSyncService) TriggerManualSync(force bool) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização diária de métricas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.WithField("force", force).Info("Iniciando sincronização manual de métricas diárias")
	go s.syncAllAccounts(context.Background(), force)
}

// GetStatus retorna o status atual do agendador
func (s *DailyMetricsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	running := s.syncRunning
	startedAt := s.lastSyncStartedAt
	completedAt := s.lastSyncCompletedAt
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_batch_size":        s.config.BatchSize,
		"sync_batch_delay_s":     s.config.BatchDelaySeconds,
		"sync_call_delay_s":      s.config.CallDelaySeconds,
		"sync_running":           running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}
}
