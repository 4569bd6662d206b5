package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Charts struct {
		Dir         string `yaml:"dir"`          // Директория с <key>.json гидами
		MappingFile string `yaml:"mapping_file"` // products_map.json (product_id -> chart_key)
		Preload     bool   `yaml:"preload"`      // Прогреть кеш гидов при старте
	} `yaml:"charts"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	// Смещения fit применяются аддитивно к измерению клиента.
	// Значения по умолчанию совпадают с историческим поведением каталога.
	Fit struct {
		AdjustmentSlim    float64 `yaml:"adjustment_slim"`
		AdjustmentRegular float64 `yaml:"adjustment_regular"`
		AdjustmentLoose   float64 `yaml:"adjustment_loose"`
	} `yaml:"fit"`
}

// FitAdjustments возвращает таблицу смещений fit -> offset.
// Таблица строится из конфигурации один раз при старте и дальше только читается.
func (c *Config) FitAdjustments() map[string]float64 {
	return map[string]float64{
		"slim":    c.Fit.AdjustmentSlim,
		"regular": c.Fit.AdjustmentRegular,
		"loose":   c.Fit.AdjustmentLoose,
	}
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	// .env не обязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	applyDefaults(&cfg)

	chartsDir := os.Getenv("CHARTS_DIR")

	if chartsDir == "" {
		log.Println("Cargando configuración desde config.yaml")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyEnvOverrides(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("✅ Cargando configuración desde VARIABLES DE ENTORNO")

	cfg.Charts.Dir = chartsDir
	applyEnvOverrides(&cfg)
	AppConfig = &cfg
}

// applyDefaults задает рабочие значения для полей, которые можно не указывать.
// Вызывается ДО декодирования yaml: явно указанные в файле значения
// (включая явный 0) перекрывают эти дефолты.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "production"
	}
	if cfg.Charts.Dir == "" {
		cfg.Charts.Dir = "charts"
	}
	if cfg.Charts.MappingFile == "" {
		cfg.Charts.MappingFile = "mapping/products_map.json"
	}
	if cfg.Fit.AdjustmentSlim == 0 {
		cfg.Fit.AdjustmentSlim = -1.0
	}
	if cfg.Fit.AdjustmentLoose == 0 {
		cfg.Fit.AdjustmentLoose = 1.0
	}
	// AdjustmentRegular остается 0.0 по соглашению
}

// applyEnvOverrides перекрывает конфиг переменными окружения.
// ALLOWED_ORIGINS_STR - ЕДИНАЯ строка "url1,url2", как в историческом .env.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CHARTS_MAPPING_FILE"); v != "" {
		cfg.Charts.MappingFile = v
	}
	if v := os.Getenv("CHARTS_PRELOAD"); v != "" {
		cfg.Charts.Preload = v == "true" || v == "1"
	}
	if v := os.Getenv("ALLOWED_ORIGINS_STR"); v != "" {
		var origins []string
		for _, origin := range strings.Split(v, ",") {
			if o := strings.TrimSpace(origin); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}
	if v := os.Getenv("FIT_ADJUSTMENT_SLIM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Fit.AdjustmentSlim = f
		}
	}
	if v := os.Getenv("FIT_ADJUSTMENT_REGULAR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Fit.AdjustmentRegular = f
		}
	}
	if v := os.Getenv("FIT_ADJUSTMENT_LOOSE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Fit.AdjustmentLoose = f
		}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
