package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	// PubChem PUG REST Endpunkt
	PubChemBaseURL  string        `envconfig:"PUBCHEM_BASE_URL" default:"https://pubchem.ncbi.nlm.nih.gov/rest/pug"`
	PubChemCABundle string        `envconfig:"PUBCHEM_CA_BUNDLE"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`

	// Polling-Protokoll für asynchrone Suchen (ListKey)
	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"2s"`
	MaxPollAttempts int           `envconfig:"MAX_POLL_ATTEMPTS" default:"0"` // 0 = unbegrenzt

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4243"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// Geplante Archivierung einer CID-Watchlist nach S3
	EnableArchive bool   `envconfig:"ENABLE_ARCHIVE" default:"false"`
	CronSchedule  string `envconfig:"CRON_SCHEDULE" default:"0 3 * * *"`
	WatchCIDs     string `envconfig:"WATCH_CIDS"` // kommagetrennte CIDs, z.B. "2244,702,962"
	ArchiveFormat string `envconfig:"ARCHIVE_FORMAT" default:"SDF"`

	StratoS3Key    string `envconfig:"STRATO_S3_KEY"`
	StratoS3Secret string `envconfig:"STRATO_S3_SECRET"`
	StratoS3URL    string `envconfig:"STRATO_S3_URL"`
	StratoS3Region string `envconfig:"STRATO_S3_REGION"`
	StratoS3Bucket string `envconfig:"STRATO_S3_BUCKET"`
}

// WatchList parst die konfigurierte CID-Watchlist in eine Integer-Liste.
// Nicht parsebare Einträge werden übersprungen.
func (c *Config) WatchList() []int {
	var cids []int
	for _, part := range strings.Split(c.WatchCIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cid, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		cids = append(cids, cid)
	}
	return cids
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
