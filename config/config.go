package config

import (
	"os"
	"strconv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AutomationConfig holds the knobs for the browser automation engine.
type AutomationConfig struct {
	Headless            bool
	DryRun              bool
	AutoSubmit          bool
	Interactive         bool
	MinFitScore         int // 0 disables the fit gate
	JobDelaySeconds     int // pause between jobs in a batch
	ActionDelayMinMs    int // randomized delay between UI actions
	ActionDelayMaxMs    int
	NavigationTimeoutMs float64
	ContentTimeoutMs    float64
	QueueFile           string
	AnswerCacheFile     string
	StorageStatePath    string // persisted browser auth/storage state, optional
	ScreenshotDir       string
	ResumePath          string
	CoverLetterPath     string
}

type AppConfig struct {
	Port         string
	Environment  string
	GeminiAPIKey string
	Database     DatabaseConfig
	Automation   AutomationConfig
}

func GetDatabaseConfig() DatabaseConfig {
	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "jobpilot"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func GetAutomationConfig() AutomationConfig {
	return AutomationConfig{
		Headless:            getEnvBool("AUTOMATION_HEADLESS", true),
		DryRun:              getEnvBool("AUTOMATION_DRY_RUN", true),
		AutoSubmit:          getEnvBool("AUTOMATION_AUTO_SUBMIT", false),
		Interactive:         getEnvBool("AUTOMATION_INTERACTIVE", false),
		MinFitScore:         getEnvInt("AUTOMATION_MIN_FIT_SCORE", 0),
		JobDelaySeconds:     getEnvInt("AUTOMATION_JOB_DELAY_SECONDS", 30),
		ActionDelayMinMs:    getEnvInt("AUTOMATION_ACTION_DELAY_MIN_MS", 300),
		ActionDelayMaxMs:    getEnvInt("AUTOMATION_ACTION_DELAY_MAX_MS", 1200),
		NavigationTimeoutMs: float64(getEnvInt("AUTOMATION_NAV_TIMEOUT_MS", 30000)),
		ContentTimeoutMs:    float64(getEnvInt("AUTOMATION_CONTENT_TIMEOUT_MS", 10000)),
		QueueFile:           getEnv("AUTOMATION_QUEUE_FILE", "./data/queue.json"),
		AnswerCacheFile:     getEnv("AUTOMATION_ANSWER_CACHE_FILE", "./data/answers.json"),
		StorageStatePath:    getEnv("AUTOMATION_STORAGE_STATE", ""),
		ScreenshotDir:       getEnv("AUTOMATION_SCREENSHOT_DIR", "./static"),
		ResumePath:          getEnv("AUTOMATION_RESUME_PATH", ""),
		CoverLetterPath:     getEnv("AUTOMATION_COVER_LETTER_PATH", ""),
	}
}

func GetAppConfig() AppConfig {
	return AppConfig{
		Port:         getEnv("PORT", "8081"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		Database:     GetDatabaseConfig(),
		Automation:   GetAutomationConfig(),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
