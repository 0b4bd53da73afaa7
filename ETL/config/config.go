package config

import (
	"os"
	"strconv"
	"time"
)

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Конфигурация для подключения к OLTP БД (исходной, игровой)
	OLTPConfig DatabaseConfig `json:"oltp_config"`

	// Конфигурация для подключения к OLAP БД (целевой, аналитической)
	OLAPConfig DatabaseConfig `json:"olap_config"`

	// Интервал запуска ETL
	RunInterval time.Duration `json:"run_interval"`

	// Максимальное количество записей, обрабатываемых за один запуск
	BatchSize int `json:"batch_size"`

	// Включение/отключение детального логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Значения конфигурации по умолчанию
var (
	DefaultOLTPConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "Vjnbkmlf40782",
		DBName:   "figgiedb",
	}

	DefaultOLAPConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "Vjnbkmlf40782",
		DBName:   "figgie_analytics",
	}

	DefaultETLConfig = ETLConfig{
		OLTPConfig:            DefaultOLTPConfig,
		OLAPConfig:            DefaultOLAPConfig,
		RunInterval:           1 * time.Hour,
		BatchSize:             10000,
		EnableDetailedLogging: true,
	}
)

// envOverride заменяет значение, если задана переменная окружения
func envOverride(key string, target *string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

// GetConfig возвращает конфигурацию ETL с учетом переменных окружения
func GetConfig() ETLConfig {
	config := DefaultETLConfig

	envOverride("FIGGIE_DB_HOST", &config.OLTPConfig.Host)
	envOverride("FIGGIE_DB_USER", &config.OLTPConfig.User)
	envOverride("FIGGIE_DB_PASSWORD", &config.OLTPConfig.Password)
	envOverride("FIGGIE_DB_NAME", &config.OLTPConfig.DBName)

	envOverride("FIGGIE_OLAP_HOST", &config.OLAPConfig.Host)
	envOverride("FIGGIE_OLAP_USER", &config.OLAPConfig.User)
	envOverride("FIGGIE_OLAP_PASSWORD", &config.OLAPConfig.Password)
	envOverride("FIGGIE_OLAP_NAME", &config.OLAPConfig.DBName)

	if value := os.Getenv("FIGGIE_ETL_INTERVAL_MINUTES"); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil && minutes > 0 {
			config.RunInterval = time.Duration(minutes) * time.Minute
		}
	}

	return config
}
