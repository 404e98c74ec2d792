package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meta-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/meta-sync-api/internal/domain"
	"github.com/vfg2006/meta-sync-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

// metricsRequest monta a requisição com o parâmetro de rota :id já resolvido,
// como o httprouter faria em produção
func metricsRequest(accountID, query string) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/v1/accounts/"+accountID+"/metrics/daily"+query, nil)
	params := httprouter.Params{{Key: "id", Value: accountID}}
	return request.WithContext(context.WithValue(request.Context(), httprouter.ParamsKey, params))
}

func TestGetDailyMetricsHandler(t *testing.T) {
	t.Run("Intervalo explícito deve ser repassado ao repositório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

		mockRepo := mocks.NewMockDailyMetricRepository(ctrl)
		mockRepo.EXPECT().
			GetByDateRange("ACC001", start, end).
			Return([]*domain.DailyMetric{
				{AccountID: "ACC001", Date: start, Impressions: 1000, Clicks: 50, Spend: 123.45},
			}, nil)

		handler := GetDailyMetrics(mockRepo)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, metricsRequest("ACC001", "?start_date=2026-08-01&end_date=2026-08-15"))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var metrics []*domain.DailyMetric
		assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&metrics))
		assert.Len(t, metrics, 1)
		assert.Equal(t, "ACC001", metrics[0].AccountID)
		assert.Equal(t, int64(1000), metrics[0].Impressions)
	})

	t.Run("Sem intervalo deve consultar os últimos 30 dias", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var gotStart, gotEnd time.Time
		mockRepo := mocks.NewMockDailyMetricRepository(ctrl)
		mockRepo.EXPECT().
			GetByDateRange("ACC001", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ string, start, end time.Time) ([]*domain.DailyMetric, error) {
				gotStart = start
				gotEnd = end
				return []*domain.DailyMetric{}, nil
			})

		handler := GetDailyMetrics(mockRepo)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, metricsRequest("ACC001", ""))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.False(t, gotEnd.IsZero())
		assert.Equal(t, gotEnd.AddDate(0, 0, -30), gotStart)
	})

	t.Run("Data em formato inválido deve retornar 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockDailyMetricRepository(ctrl)

		handler := GetDailyMetrics(mockRepo)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, metricsRequest("ACC001", "?start_date=01-08-2026"))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, recorder).Code)
	})

	t.Run("Requisição sem conta deve retornar 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockDailyMetricRepository(ctrl)

		handler := GetDailyMetrics(mockRepo)
		recorder := httptest.NewRecorder()

		request := httptest.NewRequest(http.MethodGet, "/v1/accounts//metrics/daily", nil)
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, recorder).Code)
	})

	t.Run("Falha do repositório deve retornar 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockDailyMetricRepository(ctrl)
		mockRepo.EXPECT().
			GetByDateRange("ACC001", gomock.Any(), gomock.Any()).
			Return(nil, errors.New("conexão recusada"))

		handler := GetDailyMetrics(mockRepo)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, metricsRequest("ACC001", ""))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeAPIError(t, recorder).Code)
	})
}
