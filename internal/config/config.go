package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Meta              Meta              `mapstructure:",squash"`
	Cron              Cron              `mapstructure:",squash"`
	Sync              Sync              `mapstructure:",squash"`
	DailyMetricsSync  DailyMetricsSync  `mapstructure:",squash"`
	WeeklyDetailsSync WeeklyDetailsSync `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL        string `mapstructure:"meta_base_url"`
	URL            string `mapstructure:"meta_url"`
	Version        string `mapstructure:"meta_version"`
	AccessToken    string `mapstructure:"meta_access_token"`
	AppID          string `mapstructure:"meta_app_id"`
	AppSecret      string `mapstructure:"meta_app_secret"`
	Tier           string `mapstructure:"meta_api_tier"`
	PageLimit      int    `mapstructure:"meta_page_limit"`
	MinCallDelayMS int    `mapstructure:"meta_min_call_delay_ms"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Cron protege os endpoints de disparo manual das sincronizações
type Cron struct {
	Secret string `mapstructure:"cron_secret"`
}

// Sync concentra as políticas do motor de sincronização
type Sync struct {
	FreshnessThresholdDays   int `mapstructure:"sync_freshness_threshold_days"`
	NewAccountLookbackMonths int `mapstructure:"sync_new_account_lookback_months"`
	MinLookbackDays          int `mapstructure:"sync_min_lookback_days"`
	InsightsTimeoutSeconds   int `mapstructure:"sync_insights_timeout_seconds"`
	APICallDelaySeconds      int `mapstructure:"sync_api_call_delay_seconds"`
	BatchSize                int `mapstructure:"sync_batch_size"`
	BatchDelaySeconds        int `mapstructure:"sync_batch_delay_seconds"`
}

type DailyMetricsSync struct {
	CronSchedule string `mapstructure:"daily_metrics_sync_cron"`
	Enabled      bool   `mapstructure:"daily_metrics_sync_enabled"`
}

type WeeklyDetailsSync struct {
	CronSchedule string `mapstructure:"weekly_details_sync_cron"`
	Enabled      bool   `mapstructure:"weekly_details_sync_enabled"`
	LookbackDays int    `mapstructure:"weekly_details_sync_lookback_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/metasync")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_API_TIER", "development")
	viper.SetDefault("META_PAGE_LIMIT", 100)
	viper.SetDefault("META_MIN_CALL_DELAY_MS", 1000) // 1 segundo entre chamadas

	viper.SetDefault("CRON_SECRET", "your_cron_secret")

	// Defaults do motor de sincronização
	viper.SetDefault("SYNC_FRESHNESS_THRESHOLD_DAYS", 3)    // dados com menos de 3 dias são servidos do cache
	viper.SetDefault("SYNC_NEW_ACCOUNT_LOOKBACK_MONTHS", 12) // contas novas buscam 12 meses de histórico
	viper.SetDefault("SYNC_MIN_LOOKBACK_DAYS", 4)            // janela mínima de refresh para contas existentes
	viper.SetDefault("SYNC_INSIGHTS_TIMEOUT_SECONDS", 30)    // timeout por consulta de insights
	viper.SetDefault("SYNC_API_CALL_DELAY_SECONDS", 2)       // 2 segundos entre chamadas/páginas
	viper.SetDefault("SYNC_BATCH_SIZE", 5)                   // 5 contas por lote
	viper.SetDefault("SYNC_BATCH_DELAY_SECONDS", 60)         // 1 minuto entre lotes

	viper.SetDefault("DAILY_METRICS_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("DAILY_METRICS_SYNC_ENABLED", false)

	viper.SetDefault("WEEKLY_DETAILS_SYNC_CRON", "0 4 * * 0")  // Todo domingo às 4h da manhã
	viper.SetDefault("WEEKLY_DETAILS_SYNC_ENABLED", false)
	viper.SetDefault("WEEKLY_DETAILS_SYNC_LOOKBACK_DAYS", 7) // apenas entidades alteradas na última semana

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

// IsDevelopment retorna verdadeiro quando a aplicação roda em ambiente de
// desenvolvimento, onde o gate de secret das crons é relaxado
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}
