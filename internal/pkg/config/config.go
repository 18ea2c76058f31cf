package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// BackendURL is the public base URL of this API, handed to the scoring
	// function so it knows where to deliver its callback.
	BackendURL string `env:"BACKEND_URL, default=http://localhost:8080"`

	Mongo   MongoConfig
	Redis   RedisConfig
	AWS     AWSConfig
	Scoring ScoringConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=spotjobs"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AWSConfig struct {
	Region          string `env:"AWS_REGION, default=us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Bucket        string `env:"S3_BUCKET"`
	SESSender       string `env:"SES_SENDER_EMAIL"`
}

type ScoringConfig struct {
	FunctionName  string `env:"SCORING_FUNCTION_NAME, default=resumeScoring"`
	CallbackToken string `env:"SCORING_CALLBACK_TOKEN"`
	Workers       int    `env:"SCORING_WORKERS, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
