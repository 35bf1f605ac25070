package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings.
type Config struct {
	CorpusDir     string
	WorkDir       string
	DBPath        string
	HTTPPort      string
	MetadataFile  string
	OutputDir     string
	LexiconConfig string
	Environment   string
	WorkerCount   int
	QueueSize     int
	EnableWatcher bool
}

// Load reads configuration from environment and optional .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		CorpusDir:     getenv("CORPUS_DIR", "./corpus_data"),
		WorkDir:       getenv("WORK_DIR", "./work"),
		DBPath:        getenv("DB_PATH", "./speechlab.db"),
		HTTPPort:      getenv("PORT", "8080"),
		MetadataFile:  getenv("METADATA_FILE", "./corpus_data/metadata.csv"),
		OutputDir:     getenv("OUTPUT_DIR", "./outputs"),
		LexiconConfig: getenv("LEXICON_CONFIG", ""),
		Environment:   getenv("ENVIRONMENT", "local"),
		WorkerCount:   clampInt(getenvInt("WORKER_COUNT", 4), 1, 64),
		QueueSize:     clampInt(getenvInt("QUEUE_SIZE", 128), 8, 1024),
		EnableWatcher: getenvBool("ENABLE_WATCHER", true),
	}

	log.Printf("config: corpus_dir=%s work_dir=%s db=%s env=%s", cfg.CorpusDir, cfg.WorkDir, cfg.DBPath, cfg.Environment)
	return cfg
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Now returns utc time helper for deterministic timestamps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
