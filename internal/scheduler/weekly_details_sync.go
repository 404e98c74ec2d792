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

// WeeklyDetailsSyncConfig representa a configuração do agendador da hierarquia completa
type WeeklyDetailsSyncConfig struct {
	CronSchedule      string
	BatchSize         int
	BatchDelaySeconds int
	LookbackDays      int
	SyncEnabled       bool
}

// WeeklyDetailsSyncService agenda a travessia completa da hierarquia
// (campanhas, conjuntos e anúncios) de todas as contas conhecidas. É a
// sincronização mais cara em chamadas, por isso roda com frequência menor.
type WeeklyDetailsSyncService struct {
	scheduler           *gocron.Scheduler
	config              WeeklyDetailsSyncConfig
	appConfig           *config.Config
	accountInsightRepo  repository.AccountInsightRepository
	syncLogRepo         repository.SyncLogRepository
	syncService         syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewWeeklyDetailsSyncService cria uma nova instância do serviço de sincronização semanal
func NewWeeklyDetailsSyncService(
	accountInsightRepo repository.AccountInsightRepository,
	syncLogRepo repository.SyncLogRepository,
	syncService syncing.Syncer,
	appConfig *config.Config,
) *WeeklyDetailsSyncService {
	syncConfig := WeeklyDetailsSyncConfig{
		CronSchedule:      appConfig.WeeklyDetailsSync.CronSchedule,
		BatchSize:         appConfig.Sync.BatchSize,
		BatchDelaySeconds: appConfig.Sync.BatchDelaySeconds,
		LookbackDays:      appConfig.WeeklyDetailsSync.LookbackDays,
		SyncEnabled:       appConfig.WeeklyDetailsSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"batch_size":          syncConfig.BatchSize,
		"batch_delay_seconds": syncConfig.BatchDelaySeconds,
		"lookback_days":       syncConfig.LookbackDays,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de detalhes semanais carregada")

	return &WeeklyDetailsSyncService{
		scheduler:          scheduler,
		config:             syncConfig,
		appConfig:          appConfig,
		accountInsightRepo: accountInsightRepo,
		syncLogRepo:        syncLogRepo,
		syncService:        syncService,
		syncRunning:        false,
	}
}

// Start inicia o agendador
func (s *WeeklyDetailsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização semanal de detalhes desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de detalhes semanais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização semanal de detalhes: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de detalhes semanais")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAccounts percorre a hierarquia completa de cada conta, em lotes
func (s *WeeklyDetailsSyncService) syncAllAccounts(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização semanal de detalhes já em andamento, ignorando")
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
		logrus.WithError(err).Error("Erro ao gerar run_id para sincronização semanal")
		return
	}

	syncLog := &domain.SyncLog{
		RunID: runID,
		Type:  domain.SyncLogTypeWeeklyDetails,
		Date:  time.Now().Truncate(24 * time.Hour),
	}

	accountIDs, err := s.accountInsightRepo.ListAccountIDs()
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar contas para sincronização semanal de detalhes")
		return
	}

	if len(accountIDs) == 0 {
		logrus.Info("Nenhuma conta encontrada para sincronização semanal de detalhes")
		return
	}

	syncLog.TotalAccounts = len(accountIDs)

	// A passada semanal cobre apenas o que mudou desde a última janela: a
	// travessia completa só acontece na primeira sincronização de cada conta
	updatedSince := s.updatedSinceFloor(startTime)

	logrus.WithFields(logrus.Fields{
		"run_id":        runID,
		"accounts":      len(accountIDs),
		"updated_since": updatedSince.Format(time.DateOnly),
	}).Info("Iniciando sincronização semanal de detalhes")

	batches := chunkAccounts(accountIDs, s.config.BatchSize)
	for batchIndex, batch := range batches {
		if err := ctx.Err(); err != nil {
			logrus.WithField("run_id", runID).Warn("Sincronização semanal interrompida pelo contexto")
			break
		}

		for _, accountID := range batch {
			s.processAccount(ctx, accountID, updatedSince, syncLog)
		}

		if batchIndex < len(batches)-1 {
			time.Sleep(time.Duration(s.config.BatchDelaySeconds) * time.Second)
		}
	}

	syncLog.Finish()
	if err := s.syncLogRepo.Save(syncLog); err != nil {
		logrus.WithError(err).Error("Erro ao gravar log da sincronização semanal")
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
	}).Info("Sincronização semanal de detalhes concluída")
}

// updatedSinceFloor calcula o início da janela de alterações da passada
func (s *WeeklyDetailsSyncService) updatedSinceFloor(now time.Time) time.Time {
	lookback := s.config.LookbackDays
	if lookback <= 0 {
		lookback = 7
	}
	return now.AddDate(0, 0, -lookback)
}

func (s *WeeklyDetailsSyncService) processAccount(ctx context.Context, accountID string, updatedSince time.Time, syncLog *domain.SyncLog) {
	syncLog.ProcessedAccounts++

	// A conta é atualizada antes da hierarquia para renovar a janela de datas
	if _, err := s.syncService.GetAccountInfo(ctx, accountID, true); err != nil {
		syncLog.RecordError(accountID, "account", accountID, err.Error())
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err,
		}).Error("Erro ao atualizar conta na sincronização semanal, pulando hierarquia")
		return
	}

	result, err := s.syncService.SyncCampaignHierarchy(ctx, accountID, true, updatedSince)
	if err != nil {
		syncLog.RecordError(accountID, "account", accountID, err.Error())
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err,
		}).Error("Erro ao sincronizar hierarquia da conta, seguindo para a próxima")
		return
	}

	for _, entityError := range result.Errors {
		syncLog.RecordError(entityError.AccountID, entityError.EntityType, entityError.EntityID, entityError.Message)
	}

	if len(result.Errors) == 0 {
		syncLog.SuccessfulUpdates++
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"campaigns":  result.Campaigns,
		"ad_sets":    result.AdSets,
		"ads":        result.Ads,
		"errors":     len(result.Errors),
	}).Info("Hierarquia da conta sincronizada")
}

// TotalAccounts retorna quantas contas serão cobertas por uma passada completa
func (s *WeeklyDetailsSyncService) TotalAccounts() (int, error) {
	accountIDs, err := s.accountInsightRepo.ListAccountIDs()
	if err != nil {
		return 0, fmt.Errorf("erro ao listar contas: %w", err)
	}
	return len(accountIDs), nil
}

// IsRunning informa se há uma sincronização em andamento
func (s *WeeklyDetailsSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// TriggerManualSync inicia manualmente uma sincronização semanal de detalhes
func (s *WeeklyDetailsSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização semanal de detalhes já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de detalhes semanais")
	go s.syncAllAccounts(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *WeeklyDetailsSyncService) GetStatus() map[string]any {
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
		"sync_running":           running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}
}
