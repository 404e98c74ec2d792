package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meta-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/internal/domain"
	"github.com/vfg2006/meta-sync-api/internal/scheduler"
	syncingmocks "github.com/vfg2006/meta-sync-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func cronHandlerConfig() *config.Config {
	return &config.Config{
		Sync: config.Sync{BatchSize: 5},
		DailyMetricsSync: config.DailyMetricsSync{
			CronSchedule: "0 3 * * *",
			Enabled:      false,
		},
		WeeklyDetailsSync: config.WeeklyDetailsSync{
			CronSchedule: "0 4 * * 0",
			Enabled:      false,
		},
	}
}

func TestRunDailyMetricsSyncHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	yesterday := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	mockAccountRepo := mocks.NewMockAccountInsightRepository(ctrl)
	mockDailyMetricRepo := mocks.NewMockDailyMetricRepository(ctrl)
	mockSyncLogRepo := mocks.NewMockSyncLogRepository(ctrl)
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	// A sincronização disparada roda em segundo plano: as expectativas abaixo
	// cobrem tanto a resposta imediata quanto a execução destacada
	mockAccountRepo.EXPECT().ListAccountIDs().Return([]string{"ACC001", "ACC002"}, nil).AnyTimes()
	mockDailyMetricRepo.EXPECT().GetByAccountIDAndDate(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mockSyncer.EXPECT().SyncDailyMetrics(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.DailyMetric{}, nil).AnyTimes()

	// A gravação do log marca o fim da execução destacada
	saved := make(chan struct{})
	mockSyncLogRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(*domain.SyncLog) error {
		close(saved)
		return nil
	})

	mockDailyMetricRepo.EXPECT().
		ListByDate(yesterday).
		Return([]*domain.DailyMetric{{AccountID: "ACC001", Date: yesterday, Impressions: 500}}, nil)

	service := scheduler.NewDailyMetricsSyncService(
		mockAccountRepo, mockDailyMetricRepo, mockSyncLogRepo, mockSyncer, cronHandlerConfig())

	handler := RunDailyMetricsSync(CronJobServices{DailyMetricsSyncService: service})

	request := httptest.NewRequest(http.MethodGet, "/v1/cron/daily-metrics", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Metrics []domain.DailyMetric `json:"metrics"`
			Date    string               `json:"date"`
		} `json:"data"`
		Meta struct {
			TotalAccounts         int  `json:"total_accounts"`
			AccountsNeedingUpdate int  `json:"accounts_needing_update"`
			IsUpdating            bool `json:"is_updating"`
		} `json:"meta"`
	}
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, yesterday.Format(time.DateOnly), response.Data.Date)
	assert.Len(t, response.Data.Metrics, 1)
	assert.Equal(t, 2, response.Meta.TotalAccounts)
	assert.Equal(t, 1, response.Meta.AccountsNeedingUpdate)

	select {
	case <-saved:
	case <-time.After(2 * time.Second):
		t.Fatal("a sincronização em segundo plano não concluiu")
	}
}

func TestRunWeeklyDetailsSyncHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountInsightRepository(ctrl)
	mockSyncLogRepo := mocks.NewMockSyncLogRepository(ctrl)
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	mockAccountRepo.EXPECT().ListAccountIDs().Return([]string{"ACC001", "ACC002", "ACC003"}, nil).AnyTimes()
	mockSyncer.EXPECT().GetAccountInfo(gomock.Any(), gomock.Any(), true).Return(nil, context.DeadlineExceeded).AnyTimes()

	saved := make(chan struct{})
	mockSyncLogRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(*domain.SyncLog) error {
		close(saved)
		return nil
	})

	service := scheduler.NewWeeklyDetailsSyncService(
		mockAccountRepo, mockSyncLogRepo, mockSyncer, cronHandlerConfig())

	handler := RunWeeklyDetailsSync(CronJobServices{WeeklyDetailsSyncService: service})

	request := httptest.NewRequest(http.MethodGet, "/v1/cron/weekly-details", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Meta    struct {
			TotalAccounts int `json:"total_accounts"`
		} `json:"meta"`
	}
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, 3, response.Meta.TotalAccounts)

	select {
	case <-saved:
	case <-time.After(2 * time.Second):
		t.Fatal("a sincronização em segundo plano não concluiu")
	}
}

func TestRunDailyMetricsSyncHandlerWithoutService(t *testing.T) {
	handler := RunDailyMetricsSync(CronJobServices{})

	request := httptest.NewRequest(http.MethodGet, "/v1/cron/daily-metrics", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
