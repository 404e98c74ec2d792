package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meta-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/internal/domain"
	syncingmocks "github.com/vfg2006/meta-sync-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

// Configuração sem atrasos para os testes não dormirem de verdade
func testAppConfig() *config.Config {
	return &config.Config{
		Sync: config.Sync{
			BatchSize:           2,
			BatchDelaySeconds:   0,
			APICallDelaySeconds: 0,
		},
		DailyMetricsSync: config.DailyMetricsSync{
			CronSchedule: "0 3 * * *",
			Enabled:      false,
		},
		WeeklyDetailsSync: config.WeeklyDetailsSync{
			CronSchedule: "0 4 * * 0",
			Enabled:      false,
			LookbackDays: 7,
		},
	}
}

func TestDailyMetricsSyncAllAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountInsightRepository(ctrl)
	mockDailyMetricRepo := mocks.NewMockDailyMetricRepository(ctrl)
	mockSyncLogRepo := mocks.NewMockSyncLogRepository(ctrl)
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	service := NewDailyMetricsSyncService(mockAccountRepo, mockDailyMetricRepo, mockSyncLogRepo, mockSyncer, testAppConfig())

	yesterday := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	mockAccountRepo.EXPECT().ListAccountIDs().Return([]string{"ACC001", "ACC002", "ACC003"}, nil)

	// Nenhuma conta tem a linha do dia ainda
	mockDailyMetricRepo.EXPECT().
		GetByAccountIDAndDate(gomock.Any(), yesterday).
		Return(nil, nil).
		Times(3)

	// ACC002 falha: a execução continua e o erro é registrado no log consolidado
	mockSyncer.EXPECT().SyncDailyMetrics(gomock.Any(), "ACC001", yesterday).Return(&domain.DailyMetric{}, nil)
	mockSyncer.EXPECT().SyncDailyMetrics(gomock.Any(), "ACC002", yesterday).Return(nil, errors.New("erro de rede"))
	mockSyncer.EXPECT().SyncDailyMetrics(gomock.Any(), "ACC003", yesterday).Return(&domain.DailyMetric{}, nil)

	var savedLog *domain.SyncLog
	mockSyncLogRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(log *domain.SyncLog) error {
		savedLog = log
		return nil
	})

	service.syncAllAccounts(context.Background(), false)

	assert.NotNil(t, savedLog)
	assert.Equal(t, domain.SyncLogTypeDailyMetrics, savedLog.Type)
	assert.Equal(t, yesterday, savedLog.Date)
	assert.Equal(t, 3, savedLog.TotalAccounts)
	assert.Equal(t, 3, savedLog.ProcessedAccounts)
	assert.Equal(t, 2, savedLog.SuccessfulUpdates)
	assert.Equal(t, 1, savedLog.FailedUpdates)
	assert.False(t, savedLog.Success)
	assert.NotEmpty(t, savedLog.RunID)
	assert.Len(t, savedLog.Errors, 1)
	assert.Equal(t, "ACC002", savedLog.Errors[0].AccountID)
}

func TestDailyMetricsSyncAllAccountsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountInsightRepository(ctrl)
	mockDailyMetricRepo := mocks.NewMockDailyMetricRepository(ctrl)
	mockSyncLogRepo := mocks.NewMockSyncLogRepository(ctrl)
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	service := NewDailyMetricsSyncService(mockAccountRepo, mockDailyMetricRepo, mockSyncLogRepo, mockSyncer, testAppConfig())

	mockAccountRepo.EXPECT().ListAccountIDs().Return([]string{"ACC001"}, nil)
	mockDailyMetricRepo.EXPECT().GetByAccountIDAndDate("ACC001", gomock.Any()).Return(nil, nil)
	mockSyncer.EXPECT().SyncDailyMetrics(gomock.Any(), "ACC001", gomock.Any()).Return(&domain.DailyMetric{}, nil)

	var savedLog *domain.SyncLog
	mockSyncLogRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(log *domain.SyncLog) error {
		savedLog = log
		return nil
	})

	service.syncAllAccounts(context.Background(), false)

	assert.True(t, savedLog.Success)
	assert.False(t, savedLog.CompletedAt.IsZero())

	// Os carimbos de execução ficam visíveis pelo status após a passada
	assert.False(t, service.IsRunning())
	assert.False(t, service.LastCompletedAt().IsZero())

	status := service.GetStatus()
	assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestDailyMetricsSyncSkipsAccountsAlreadySynced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountInsightRepository(ctrl)
	mockDailyMetricRepo := mocks.NewMockDailyMetricRepository(ctrl)
	mockSyncLogRepo := mocks.NewMockSyncLogRepository(ctrl)
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	service := NewDailyMetricsSyncService(mockAccountRepo, mockDailyMetricRepo, mockSyncLogRepo, mockSyncer, testAppConfig())

	yesterday := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	mockAccountRepo.EXPECT().ListAccountIDs().Return([]string{"ACC001", "ACC002"}, nil)

	// ACC001 já tem a linha do dia: nenhuma chamada à API deve acontecer para ela
	mockDailyMetricRepo.EXPECT().
		GetByAccountIDAndDate("ACC001", yesterday).
		Return(&domain.DailyMetric{AccountID: "ACC001", Date: yesterday}, nil)
	mockDailyMetricRepo.EXPECT().
		GetByAccountIDAndDate("ACC002", yesterday).
		Return(nil, nil)

	mockSyncer.EXPECT().SyncDailyMetrics(gomock.Any(), "ACC002", yesterday).Return(&domain.DailyMetric{}, nil)

	var savedLog *domain.SyncLog
	mockSyncLogRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(log *domain.SyncLog) error {
		savedLog = log
		return nil
	})

	service.syncAllAccounts(context.Background(), false)

	assert.Equal(t, 2, savedLog.ProcessedAccounts)
	assert.Equal(t, 2, savedLog.SuccessfulUpdates)
	assert.True(t, savedLog.Success)
}

func TestDailyMetricsSyncForceResyncsAllAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountInsightRepository(ctrl)
	mockDailyMetricRepo := mocks.NewMockDailyMetricRepository(ctrl)
	mockSyncLogRepo := mocks.NewMockSyncLogRepository(ctrl)
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	service := NewDailyMetricsSyncService(mockAccountRepo, mockDailyMetricRepo, mockSyncLogRepo, mockSyncer, testAppConfig())

	mockAccountRepo.EXPECT().ListAccountIDs().Return([]string{"ACC001"}, nil)

	// Com force a verificação de linha existente é ignorada
	mockSyncer.EXPECT().SyncDailyMetrics(gomock.Any(), "ACC001", gomock.Any()).Return(&domain.DailyMetric{}, nil)

	mockSyncLogRepo.EXPECT().Save(gomock.Any()).Return(nil)

	service.syncAllAccounts(context.Background(), true)
}

func TestDailyMetricsSyncWithoutAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountInsightRepository(ctrl)
	mockDailyMetricRepo := mocks.NewMockDailyMetricRepository(ctrl)
	mockSyncLogRepo := mocks.NewMockSyncLogRepository(ctrl)
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	service := NewDailyMetricsSyncService(mockAccountRepo, mockDailyMetricRepo, mockSyncLogRepo, mockSyncer, testAppConfig())

	// Sem contas não há nada a sincronizar nem log a gravar
	mockAccountRepo.EXPECT().ListAccountIDs().Return([]string{}, nil)

	service.syncAllAccounts(context.Background(), false)
}

func TestDailyMetricsGetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountInsightRepository(ctrl)
	mockDailyMetricRepo := mocks.NewMockDailyMetricRepository(ctrl)
	mockSyncLogRepo := mocks.NewMockSyncLogRepository(ctrl)
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	service := NewDailyMetricsSyncService(mockAccountRepo, mockDailyMetricRepo, mockSyncLogRepo, mockSyncer, testAppConfig())

	status := service.GetStatus()

	assert.Equal(t, false, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 2, status["sync_batch_size"])
	assert.Equal(t, false, status["sync_running"])
}
