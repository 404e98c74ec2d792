package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meta-sync-api/internal/config"
)

func cronTestConfig() *config.Config {
	return &config.Config{
		Cron: config.Cron{Secret: "segredo-forte"},
	}
}

func nextHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestCronSecret(t *testing.T) {
	t.Run("Secret correto deve liberar a requisição", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")

		called := false
		handler := CronSecret(cronTestConfig())(nextHandler(&called))

		request := httptest.NewRequest(http.MethodGet, "/v1/cron/daily-metrics?secret=segredo-forte", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Secret incorreto deve retornar 401 sem chamar o handler", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")

		called := false
		handler := CronSecret(cronTestConfig())(nextHandler(&called))

		request := httptest.NewRequest(http.MethodGet, "/v1/cron/daily-metrics?secret=chute", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Secret ausente deve retornar 401", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")

		called := false
		handler := CronSecret(cronTestConfig())(nextHandler(&called))

		request := httptest.NewRequest(http.MethodGet, "/v1/cron/daily-metrics", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Ambiente de desenvolvimento deve relaxar o gate", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")

		called := false
		handler := CronSecret(cronTestConfig())(nextHandler(&called))

		request := httptest.NewRequest(http.MethodGet, "/v1/cron/daily-metrics", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
