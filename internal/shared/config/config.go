package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config — полная конфигурация проекта
type Config struct {
	Database DBConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	FCM      FCMConfig
	Sheets   SheetsConfig
	Cleanup  CleanupConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type HTTPConfig struct {
	Port int

	// DefaultPassword выдается новым учетным записям при провижининге
	DefaultPassword string
}

type JWTConfig struct {
	Secret        string
	ExpiryMinutes int
}

// FCMConfig — учетные данные для push-уведомлений.
// Если CredentialsFile пустой, Wake-Up Notifier работает в режиме disabled.
type FCMConfig struct {
	CredentialsFile string
}

// SheetsConfig — экспорт транзакций в Google Sheets.
// Если SpreadsheetID пустой, экспорт отключен.
type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	Range           string
}

// CleanupConfig — ретенция доставленных заказов.
type CleanupConfig struct {
	RetentionDays int
	Schedule      string // cron-выражение
}

// Load — загрузка из CONFIG_DIR (по умолчанию ./config) + ENV перекрывает
func Load() Config {
	configDir := getEnv("CONFIG_DIR", "./config")
	cfg := Config{}

	// db.yaml
	dbPath := filepath.Join(configDir, "db.yaml")
	if dbKV, err := parseYAML(dbPath); err == nil {
		cfg.Database.Host = getStrWithEnv("DB_HOST", dbKV, "host", "localhost")
		cfg.Database.Port = getIntWithEnv("DB_PORT", dbKV, "port", 5432)
		cfg.Database.User = getStrWithEnv("DB_USER", dbKV, "user", "delivery_user")
		cfg.Database.Password = getStrWithEnv("DB_PASSWORD", dbKV, "password", "delivery_pass")
		cfg.Database.Database = getStrWithEnv("DB_NAME", dbKV, "database", "delivery_db")
		cfg.Database.SSLMode = getStrWithEnv("DB_SSLMODE", dbKV, "sslmode", "disable")
	} else {
		// fallback to defaults + env
		cfg.Database.Host = getEnv("DB_HOST", "localhost")
		cfg.Database.Port = getEnvInt("DB_PORT", 5432)
		cfg.Database.User = getEnv("DB_USER", "delivery_user")
		cfg.Database.Password = getEnv("DB_PASSWORD", "delivery_pass")
		cfg.Database.Database = getEnv("DB_NAME", "delivery_db")
		cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	}

	// server.yaml
	srvPath := filepath.Join(configDir, "server.yaml")
	if srvKV, err := parseYAML(srvPath); err == nil {
		cfg.HTTP.Port = getIntWithEnv("HTTP_PORT", srvKV, "port", 5000)
		cfg.HTTP.DefaultPassword = getStrWithEnv("DEFAULT_PASSWORD", srvKV, "default_password", "123456")
	} else {
		cfg.HTTP.Port = getEnvInt("HTTP_PORT", 5000)
		cfg.HTTP.DefaultPassword = getEnv("DEFAULT_PASSWORD", "123456")
	}

	// jwt.yaml
	jwtPath := filepath.Join(configDir, "jwt.yaml")
	if jwtKV, err := parseYAML(jwtPath); err == nil {
		if sec, ok := jwtKV["jwt"]; ok {
			cfg.JWT.Secret = getStrWithEnvNested("JWT_SECRET", sec, "secret", "dev_secret")
			cfg.JWT.ExpiryMinutes = getIntWithEnvNested("JWT_EXPIRY_MINUTES", sec, "expiry_minutes", 10080)
		} else {
			// плоская структура
			cfg.JWT.Secret = getStrWithEnv("JWT_SECRET", jwtKV, "secret", "dev_secret")
			cfg.JWT.ExpiryMinutes = getIntWithEnv("JWT_EXPIRY_MINUTES", jwtKV, "expiry_minutes", 10080)
		}
	} else {
		cfg.JWT.Secret = getEnv("JWT_SECRET", "dev_secret")
		cfg.JWT.ExpiryMinutes = getEnvInt("JWT_EXPIRY_MINUTES", 10080)
	}

	// fcm.yaml
	fcmPath := filepath.Join(configDir, "fcm.yaml")
	if fcmKV, err := parseYAML(fcmPath); err == nil {
		cfg.FCM.CredentialsFile = getStrWithEnv("FCM_CREDENTIALS_FILE", fcmKV, "credentials_file", "")
	} else {
		cfg.FCM.CredentialsFile = getEnv("FCM_CREDENTIALS_FILE", "")
	}

	// sheets.yaml
	sheetsPath := filepath.Join(configDir, "sheets.yaml")
	if shKV, err := parseYAML(sheetsPath); err == nil {
		cfg.Sheets.CredentialsFile = getStrWithEnv("SHEETS_CREDENTIALS_FILE", shKV, "credentials_file", "")
		cfg.Sheets.SpreadsheetID = getStrWithEnv("SHEETS_SPREADSHEET_ID", shKV, "spreadsheet_id", "")
		cfg.Sheets.Range = getStrWithEnv("SHEETS_RANGE", shKV, "range", "Transactions!A1")
	} else {
		cfg.Sheets.CredentialsFile = getEnv("SHEETS_CREDENTIALS_FILE", "")
		cfg.Sheets.SpreadsheetID = getEnv("SHEETS_SPREADSHEET_ID", "")
		cfg.Sheets.Range = getEnv("SHEETS_RANGE", "Transactions!A1")
	}

	// cleanup.yaml
	clPath := filepath.Join(configDir, "cleanup.yaml")
	if clKV, err := parseYAML(clPath); err == nil {
		cfg.Cleanup.RetentionDays = getIntWithEnv("CLEANUP_RETENTION_DAYS", clKV, "retention_days", 30)
		cfg.Cleanup.Schedule = getStrWithEnv("CLEANUP_SCHEDULE", clKV, "schedule", "0 3 * * *")
	} else {
		cfg.Cleanup.RetentionDays = getEnvInt("CLEANUP_RETENTION_DAYS", 30)
		cfg.Cleanup.Schedule = getEnv("CLEANUP_SCHEDULE", "0 3 * * *")
	}

	return cfg
}

// parseYAML — парсит простые YAML файлы без глубокой вложенности
// Формат: key: value (плоский) либо section: \n  key: value
func parseYAML(path string) (map[string]map[string]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := map[string]map[string]string{}
	section := ""

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Строка-секция: заканчивается на ':' и не содержит пробелов
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			if result[section] == nil {
				result[section] = map[string]string{}
			}
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		val = strings.Trim(val, `"'`)

		if section != "" {
			if result[section] == nil {
				result[section] = map[string]string{}
			}
			result[section][key] = val
		} else {
			if result[""] == nil {
				result[""] = map[string]string{}
			}
			result[""][key] = val
		}
	}

	return result, sc.Err()
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getStrWithEnv(envKey string, yaml map[string]map[string]string, key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if val, ok := yaml[""][key]; ok && val != "" {
		return val
	}
	return def
}

func getIntWithEnv(envKey string, yaml map[string]map[string]string, key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if val, ok := yaml[""][key]; ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func getStrWithEnvNested(envKey string, section map[string]string, key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if val, ok := section[key]; ok && val != "" {
		return val
	}
	return def
}

func getIntWithEnvNested(envKey string, section map[string]string, key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if val, ok := section[key]; ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

// DSN возвращает строку подключения к БД
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
