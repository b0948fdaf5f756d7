package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	Port           string
	BaseURL        string
	StorageBackend string // "file" or "mongo"
	DataDir        string
	DatabaseURL    string
	DatabaseName   string

	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string

	EventRemindersEnabled bool
}

// New sets up all config related services
func New() *Config {

	// load a local .env if one exists, real env vars win
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Port:           getEnv("PORT", "8080"),
		BaseURL:        os.Getenv("BASE_URL"),
		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		DataDir:        getEnv("DATA_DIR", "data"),
		DatabaseURL:    os.Getenv("DB_URI"),
		DatabaseName:   getEnv("DB_NAME", "church-admin"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@church-admin.local"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Church Admin"),

		EventRemindersEnabled: os.Getenv("EVENT_REMINDERS_ENABLED") == "true",
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
