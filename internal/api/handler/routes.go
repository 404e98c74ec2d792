package handler

import (
	"net/http"

	"github.com/vfg2006/meta-sync-api/infrastructure/repository"
	"github.com/vfg2006/meta-sync-api/internal/api/handler/router"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/meta-sync-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Syncing(service syncing.Syncer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync",
			Method:  http.MethodGet,
			Handler: Sync(service),
		},
	}
}

func Metrics(dailyMetricRepo repository.DailyMetricRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/:id/metrics/daily",
			Method:  http.MethodGet,
			Handler: GetDailyMetrics(dailyMetricRepo),
		},
	}
}

func CronJobs(cfg *config.Config, services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/daily-metrics",
			Method:      http.MethodGet,
			Handler:     RunDailyMetricsSync(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.CronSecret(cfg)},
		},
		{
			Path:        "/v1/cron/weekly-details",
			Method:      http.MethodGet,
			Handler:     RunWeeklyDetailsSync(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.CronSecret(cfg)},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.CronSecret(cfg)},
		},
	}
}
