package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Assembly  AssemblyConfig
	Groq      GroqConfig
	Agenda    AgendaConfig
	OAuth     OAuthConfig
	Auth      AuthConfig
	Calendar  CalendarConfig
	Media     MediaConfig
	Pipeline  PipelineConfig
	RateLimit RateLimitConfig
	Quota     QuotaConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// AssemblyConfig holds speech-to-text configuration
type AssemblyConfig struct {
	APIKey  string
	BaseURL string
	// ChunkThreshold is the media length above which the file is split
	ChunkThreshold time.Duration
	ChunkLength    time.Duration
}

// GroqConfig holds LLM configuration
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Agenda priority classifiers
const (
	ClassifierKeyword  = "keyword"
	ClassifierZeroShot = "zeroshot"
)

// AgendaConfig selects how agenda topics are prioritized. The keyword table is
// the default; zero-shot needs a Groq key.
type AgendaConfig struct {
	Classifier string
}

// OAuthConfig holds OAuth configuration
type OAuthConfig struct {
	Google GoogleOAuthConfig
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Identity providers
const (
	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

// AuthConfig selects how bearer tokens are verified
type AuthConfig struct {
	Provider                string
	FirebaseProjectID       string
	FirebaseCredentialsJSON string
	JWTSecret               string
	JWTPublicKeyPEM         string
	JWTIssuer               string
	DevTokenExpiry          time.Duration
}

// CalendarConfig holds Google Calendar settings
type CalendarConfig struct {
	TimeZone   string
	CalendarID string
	DayStart   int
}

// MediaConfig holds ffmpeg settings
type MediaConfig struct {
	FFmpegPath  string
	FFprobePath string
	ScratchDir  string
}

// PipelineConfig bounds background automation runs
type PipelineConfig struct {
	MaxConcurrent int
	RunTimeout    time.Duration
}

// RateLimitConfig throttles expensive routes per user
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// QuotaConfig holds tier limits. Loaded with envconfig from QUOTA_* variables.
type QuotaConfig struct {
	FreeMeetings       int           `envconfig:"FREE_MEETINGS" default:"5"`
	FreeAutomations    int           `envconfig:"FREE_AUTOMATIONS" default:"5"`
	FreeTranscriptions int           `envconfig:"FREE_TRANSCRIPTIONS" default:"5"`
	FreeMaxVideo       time.Duration `envconfig:"FREE_MAX_VIDEO" default:"15m"`
	FreeMinutesHistory int           `envconfig:"FREE_MINUTES_HISTORY" default:"3"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", "http://localhost:3000"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", DriverPostgres),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "minuteme"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "minuteme"),
			Timeout:  getEnvAsDuration("MONGO_TIMEOUT", "10s"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "minuteme"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Assembly: AssemblyConfig{
			APIKey:         getEnv("ASSEMBLYAI_API_KEY", ""),
			BaseURL:        getEnv("ASSEMBLYAI_BASE_URL", ""),
			ChunkThreshold: getEnvAsDuration("TRANSCRIBE_CHUNK_THRESHOLD", "20m"),
			ChunkLength:    getEnvAsDuration("TRANSCRIBE_CHUNK_LENGTH", "10m"),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com"),
			Model:   getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
			Timeout: getEnvAsDuration("GROQ_TIMEOUT", "60s"),
		},
		Agenda: AgendaConfig{
			Classifier: strings.ToLower(getEnv("AGENDA_CLASSIFIER", ClassifierKeyword)),
		},
		OAuth: OAuthConfig{
			Google: GoogleOAuthConfig{
				ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
				RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3000/calendar/callback"),
			},
		},
		Auth: AuthConfig{
			Provider:                getEnv("AUTH_PROVIDER", AuthJWT),
			FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
			JWTSecret:               getEnv("JWT_SECRET", ""),
			JWTPublicKeyPEM:         getEnv("JWT_PUBLIC_KEY", ""),
			JWTIssuer:               getEnv("JWT_ISSUER", ""),
			DevTokenExpiry:          getEnvAsDuration("DEV_TOKEN_EXPIRY", "24h"),
		},
		Calendar: CalendarConfig{
			TimeZone:   getEnv("CALENDAR_TIMEZONE", "Asia/Colombo"),
			CalendarID: getEnv("CALENDAR_ID", "primary"),
			DayStart:   getEnvAsInt("CALENDAR_DAY_START_HOUR", 9),
		},
		Media: MediaConfig{
			FFmpegPath:  getEnv("FFMPEG_PATH", "ffmpeg"),
			FFprobePath: getEnv("FFPROBE_PATH", "ffprobe"),
			ScratchDir:  getEnv("SCRATCH_DIR", ""),
		},
		Pipeline: PipelineConfig{
			MaxConcurrent: getEnvAsInt("PIPELINE_MAX_CONCURRENT", 4),
			RunTimeout:    getEnvAsDuration("PIPELINE_RUN_TIMEOUT", "30m"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 3),
		},
	}

	if err := envconfig.Process("QUOTA", &config.Quota); err != nil {
		return nil, fmt.Errorf("failed to load quota limits: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the postgres driver")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Auth.Provider {
	case AuthFirebase:
		if c.Auth.FirebaseCredentialsJSON == "" && c.Auth.FirebaseProjectID == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_JSON or FIREBASE_PROJECT_ID is required for firebase auth")
		}
	case AuthJWT:
		if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKeyPEM == "" {
			return fmt.Errorf("JWT_SECRET or JWT_PUBLIC_KEY is required for jwt auth")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}

	switch c.Agenda.Classifier {
	case "", ClassifierKeyword:
	case ClassifierZeroShot:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required for AGENDA_CLASSIFIER=%s", ClassifierZeroShot)
		}
	default:
		return fmt.Errorf("unknown AGENDA_CLASSIFIER %q", c.Agenda.Classifier)
	}

	if c.Pipeline.MaxConcurrent < 1 {
		return fmt.Errorf("PIPELINE_MAX_CONCURRENT must be at least 1")
	}
	if _, err := time.LoadLocation(c.Calendar.TimeZone); err != nil {
		return fmt.Errorf("invalid CALENDAR_TIMEZONE: %w", err)
	}
	return nil
}

// CalendarEnabled reports whether Google OAuth credentials are configured
func (c *Config) CalendarEnabled() bool {
	return c.OAuth.Google.ClientID != "" && c.OAuth.Google.ClientSecret != ""
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
