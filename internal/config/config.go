package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Stract        Stract        `mapstructure:",squash"`
	Pagination    Pagination    `mapstructure:",squash"`
	UpstreamProbe UpstreamProbe `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port" validate:"required"`
}

// Stract reúne os parâmetros de acesso à API agregadora
type Stract struct {
	BaseURL        string        `mapstructure:"api_base" validate:"required,url"`
	AuthToken      string        `mapstructure:"auth_token" validate:"required"`
	TimeoutSeconds int           `mapstructure:"http_timeout" validate:"min=1"`
	RetryAttempts  int           `mapstructure:"retry_attempts" validate:"min=0"`
	RetryBackoff   time.Duration `mapstructure:"retry_backoff" validate:"min=0"`
}

func (s Stract) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Pagination controla as heurísticas de paginação da API
type Pagination struct {
	MaxPages           int  `mapstructure:"pagination_max_pages" validate:"min=1"`
	KeepUnlistedObject bool `mapstructure:"pagination_keep_unlisted_object"`
}

type UpstreamProbe struct {
	CronSchedule string `mapstructure:"upstream_probe_cron" validate:"required_if=Enabled true"`
	Enabled      bool   `mapstructure:"upstream_probe_enabled"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "5000")

	v.SetDefault("API_BASE", "https://sidebar.stract.to/api")
	v.SetDefault("AUTH_TOKEN", "")
	v.SetDefault("HTTP_TIMEOUT", 12)
	v.SetDefault("RETRY_ATTEMPTS", 2)
	v.SetDefault("RETRY_BACKOFF", "500ms")

	v.SetDefault("PAGINATION_MAX_PAGES", 50)
	v.SetDefault("PAGINATION_KEEP_UNLISTED_OBJECT", true)

	v.SetDefault("UPSTREAM_PROBE_CRON", "*/5 * * * *")
	v.SetDefault("UPSTREAM_PROBE_ENABLED", false)

	v.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	config := &Config{}

	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("config: error decoding configuration: %w", err)
	}

	config.Stract.BaseURL = strings.TrimRight(config.Stract.BaseURL, "/")

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
