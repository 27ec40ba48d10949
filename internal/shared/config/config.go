package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/radieske/sports-bet-clients/pkg/contracts/topics"
)

const (
	ServiceAdmin  = "admin-backoffice"
	ServiceBetApp = "bet-app"
)

// Config centraliza variáveis de ambiente e parâmetros de execução dos clientes
// Inclui URL da API, sessão, portas e tópicos
type Config struct {
	Env         string `env:"ENV" envDefault:"local"` // "local", "dev", "prod"
	ServiceName string `env:"SERVICE_NAME"`           // "admin-backoffice" | "bet-app"

	// API remota de carteira/apostas
	APIBaseURL  string        `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s"` // 0 = default do transporte

	// Sessão: "file", "redis" ou "memory"
	SessionBackend string `env:"SESSION_BACKEND"`
	SessionFile    string `env:"SESSION_FILE"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// Eventos de revisão do backoffice (vazio = desligado)
	KafkaBrokers       string `env:"KAFKA_BROKERS"`
	TopicReviewDecided string `env:"KAFKA_TOPIC_REVIEWS"`

	Locale string `env:"LOCALE" envDefault:"es"`

	// Portas do serviço atual
	HTTPPort    string `env:"HTTP_PORT"`    // Porta pública do backoffice
	MetricsPort string `env:"METRICS_PORT"` // /metrics e /healthz, vazio = desligado
}

// Load carrega variáveis de ambiente e define defaults para cada aplicação
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.ServiceName {
	case ServiceAdmin:
		cfg.HTTPPort = orDefault(cfg.HTTPPort, "8090")
		cfg.MetricsPort = orDefault(cfg.MetricsPort, "9190")
		cfg.SessionBackend = orDefault(cfg.SessionBackend, "redis")
	case ServiceBetApp:
		// app de terminal não expõe HTTP público
		cfg.SessionBackend = orDefault(cfg.SessionBackend, "file")
	default:
		cfg.SessionBackend = orDefault(cfg.SessionBackend, "memory")
	}

	cfg.TopicReviewDecided = orDefault(cfg.TopicReviewDecided, topics.ReviewDecided)

	if cfg.SessionBackend == "file" && cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// defaultSessionFile resolve $XDG_CONFIG_HOME/sports-bet/session.json
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "sports-bet", "session.json")
}
