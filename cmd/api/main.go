package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/ratelimit"
	"github.com/vfg2006/meta-sync-api/infrastructure/repository"
	"github.com/vfg2006/meta-sync-api/internal/api"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/internal/scheduler"
	"github.com/vfg2006/meta-sync-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountInsightRepo := repository.NewAccountInsightRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	adSetRepo := repository.NewAdSetRepository(pgConn)
	adRepo := repository.NewAdRepository(pgConn)
	dailyMetricRepo := repository.NewDailyMetricRepository(pgConn)
	apiMetricRepo := repository.NewAPIMetricRepository(pgConn)
	syncLogRepo := repository.NewSyncLogRepository(pgConn)
	rateLimitRepo := repository.NewRateLimitRepository(pgConn)

	// Camada de acesso à Graph API: governor + executor + cliente HTTP
	governor := ratelimit.NewGovernor(rateLimitRepo, cfg.Meta.Tier)
	executor := ratelimit.NewExecutor(governor, apiMetricRepo)
	metaClient := metaclient.NewClient(cfg, governor)
	metaIntegrator := meta.New(cfg, metaClient, executor)

	syncService := syncing.NewService(
		cfg,
		metaIntegrator,
		accountInsightRepo,
		campaignRepo,
		adSetRepo,
		adRepo,
		dailyMetricRepo,
	)

	// Agendadores de sincronização em lote
	dailyMetricsSyncService := scheduler.NewDailyMetricsSyncService(
		accountInsightRepo,
		dailyMetricRepo,
		syncLogRepo,
		syncService,
		cfg,
	)

	weeklyDetailsSyncService := scheduler.NewWeeklyDetailsSyncService(
		accountInsightRepo,
		syncLogRepo,
		syncService,
		cfg,
	)

	if err := dailyMetricsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de métricas diárias")
	} else {
		logrus.Info("Agendador de métricas diárias iniciado com sucesso")
	}

	if err := weeklyDetailsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de detalhes semanais")
	} else {
		logrus.Info("Agendador de detalhes semanais iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		syncService,
		dailyMetricRepo,
		dailyMetricsSyncService,
		weeklyDetailsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
