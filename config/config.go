package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del optimizador.
type Config struct {
	Optimizer OptimizerConfig `yaml:"optimizer"`
	GoogleAds GoogleAdsConfig `yaml:"google_ads"`
	Traffic   TrafficConfig   `yaml:"traffic"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// OptimizerConfig controla la atribución y las decisiones de puja.
type OptimizerConfig struct {
	Strategy              string   `yaml:"strategy"`                // roas | cpa | manual
	AttributionWindowDays int      `yaml:"attribution_window_days"` // días de retraso de conversión a cubrir
	MaxCPA                float64  `yaml:"max_cpa"`                 // coste máximo tolerado por conversión
	MinConversionRate     float64  `yaml:"min_conversion_rate"`     // p.ej. 0.05 para 5%
	ConversionTags        []string `yaml:"conversion_tags"`         // tags del log que cuentan como conversión
	ResolverBatchSize     int      `yaml:"resolver_batch_size"`     // identificadores por consulta externa (máx 50)
	ResolutionMode        string   `yaml:"resolution_mode"`         // direct | adgroup
	BidStepPct            float64  `yaml:"bid_step_pct"`            // nudge por paso (0.10 = ±10%)
}

// GoogleAdsConfig contiene el endpoint y las cuentas de la API.
// Los secretos (developer token, access token) vienen SOLO de variables de
// entorno; nunca del YAML.
type GoogleAdsConfig struct {
	APIBase         string `yaml:"api_base"`
	CustomerID      string `yaml:"customer_id"`
	LoginCustomerID string `yaml:"login_customer_id"`
	DeveloperToken  string `yaml:"-"`
	AccessToken     string `yaml:"-"`
}

// TrafficConfig apunta al log transaccional de clicks.
type TrafficConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// StorageConfig controla dónde se persiste el historial de runs.
type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del entorno sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Validate comprueba que las credenciales externas requeridas estén presentes.
// Su ausencia es fatal: el run debe abortar antes de cualquier agregación.
func (c *Config) Validate() error {
	if c.GoogleAds.CustomerID == "" {
		return fmt.Errorf("config.Validate: google_ads.customer_id is required")
	}
	if c.GoogleAds.DeveloperToken == "" {
		return fmt.Errorf("config.Validate: GOOGLE_ADS_DEVELOPER_TOKEN is required")
	}
	if c.GoogleAds.AccessToken == "" {
		return fmt.Errorf("config.Validate: GOOGLE_ADS_ACCESS_TOKEN is required")
	}
	return nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOOGLE_ADS_DEVELOPER_TOKEN"); v != "" {
		cfg.GoogleAds.DeveloperToken = v
	}
	if v := os.Getenv("GOOGLE_ADS_ACCESS_TOKEN"); v != "" {
		cfg.GoogleAds.AccessToken = v
	}
	if v := os.Getenv("GOOGLE_ADS_CUSTOMER_ID"); v != "" {
		cfg.GoogleAds.CustomerID = v
	}
	if v := os.Getenv("GOOGLE_ADS_LOGIN_CUSTOMER_ID"); v != "" {
		cfg.GoogleAds.LoginCustomerID = v
	}
	if v := os.Getenv("TRAFFIC_DSN"); v != "" {
		cfg.Traffic.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Optimizer.Strategy == "" {
		cfg.Optimizer.Strategy = "cpa"
	}
	if cfg.Optimizer.AttributionWindowDays <= 0 {
		cfg.Optimizer.AttributionWindowDays = 30
	}
	if len(cfg.Optimizer.ConversionTags) == 0 {
		// El set exacto es política de dominio, no lógica del engine;
		// estos son los valores históricos del log.
		cfg.Optimizer.ConversionTags = []string{"registr", "order"}
	}
	if cfg.Optimizer.ResolverBatchSize <= 0 || cfg.Optimizer.ResolverBatchSize > 50 {
		cfg.Optimizer.ResolverBatchSize = 50
	}
	if cfg.Optimizer.ResolutionMode == "" {
		cfg.Optimizer.ResolutionMode = "direct"
	}
	if cfg.Optimizer.BidStepPct <= 0 {
		cfg.Optimizer.BidStepPct = 0.10
	}
	if cfg.Traffic.DSN == "" {
		cfg.Traffic.DSN = "clicks.db"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "adbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
