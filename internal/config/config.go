package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	RollupSync RollupSync `mapstructure:",squash"`
	Risk       Risk       `mapstructure:",squash"`
	Analytics  Analytics  `mapstructure:",squash"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"cors_allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"server_shutdown_timeout"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"database_auto_migrate"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type RollupSync struct {
	CronSchedule      string `mapstructure:"rollup_sync_cron"`
	LookbackDays      int    `mapstructure:"rollup_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"rollup_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"rollup_sync_enabled"`
}

// Risk sobrescreve os limiares dos detectores de risco
type Risk struct {
	StockoutHighDaysLeft     float64 `mapstructure:"risk_stockout_high_days_left"`
	RefundSpikeMedium        float64 `mapstructure:"risk_refund_spike_medium"`
	RefundSpikeHigh          float64 `mapstructure:"risk_refund_spike_high"`
	FeeSpikeMedium           float64 `mapstructure:"risk_fee_spike_medium"`
	FeeSpikeHigh             float64 `mapstructure:"risk_fee_spike_high"`
	MarginHigh               float64 `mapstructure:"risk_margin_high"`
	MarginMedium             float64 `mapstructure:"risk_margin_medium"`
	DefaultHorizonDays       int     `mapstructure:"risk_default_horizon_days"`
	DefaultLowStockThreshold int     `mapstructure:"risk_default_low_stock_threshold"`
	OrderIssuesSampleSize    int     `mapstructure:"risk_order_issues_sample_size"`
}

// Analytics define os limites de linhas das consultas de leitura
type Analytics struct {
	DefaultLimit int `mapstructure:"analytics_default_limit"`
	MaxLimit     int `mapstructure:"analytics_max_limit"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "15s")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/analytics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", false)

	viper.SetDefault("AUTH_SECRET", "")

	// Defaults para materialização dos rollups diários
	viper.SetDefault("ROLLUP_SYNC_CRON", "15 0 * * *")     // Todos os dias às 00:15
	viper.SetDefault("ROLLUP_SYNC_LOOKBACK_DAYS", 2)       // Hoje e ontem
	viper.SetDefault("ROLLUP_SYNC_MAX_CONCURRENT_JOBS", 3) // 3 workspaces em paralelo
	viper.SetDefault("ROLLUP_SYNC_ENABLED", false)         // Habilitar materialização agendada

	// Limiares dos detectores de risco
	viper.SetDefault("RISK_STOCKOUT_HIGH_DAYS_LEFT", 3)      // daysLeft <= 3 é risco alto
	viper.SetDefault("RISK_REFUND_SPIKE_MEDIUM", 0.02)       // +2pp na taxa de reembolso
	viper.SetDefault("RISK_REFUND_SPIKE_HIGH", 0.05)         // +5pp na taxa de reembolso
	viper.SetDefault("RISK_FEE_SPIKE_MEDIUM", 0.01)          // +1pp na taxa de tarifas
	viper.SetDefault("RISK_FEE_SPIKE_HIGH", 0.03)            // +3pp na taxa de tarifas
	viper.SetDefault("RISK_MARGIN_HIGH", 0.40)               // margem abaixo de 40% é risco alto
	viper.SetDefault("RISK_MARGIN_MEDIUM", 0.60)             // margem abaixo de 60% é risco médio
	viper.SetDefault("RISK_DEFAULT_HORIZON_DAYS", 14)        // horizonte padrão de ruptura
	viper.SetDefault("RISK_DEFAULT_LOW_STOCK_THRESHOLD", 10) // limite padrão de estoque baixo
	viper.SetDefault("RISK_ORDER_ISSUES_SAMPLE_SIZE", 5)     // ids de exemplo por issue

	viper.SetDefault("ANALYTICS_DEFAULT_LIMIT", 25)
	viper.SetDefault("ANALYTICS_MAX_LIMIT", 200)

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

	if config.Auth.Secret == "" {
		logrus.Warn("AUTH_SECRET não configurado: tokens Bearer serão rejeitados")
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a URL de conexão a partir dos campos de Database
func BuildDSN(db Database) string {
	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
