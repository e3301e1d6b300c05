package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// DataDir holds the subject JSON files and settings.json.
	DataDir string
	// AssetDir holds question images and answer sheets.
	AssetDir string
	// HistoryDB is the sqlite file recording answer attempts.
	HistoryDB string

	// Subjects maps each subject id to its section keys.
	Subjects map[string][]string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", "localhost:8080"),
		ShutdownTimeout: getDurationDefault("SHUTDOWN_TIMEOUT", 5*time.Second),
		DataDir:         getenvDefault("DATA_DIR", "sat_data"),
		AssetDir:        getenvDefault("ASSET_DIR", "photos"),
		HistoryDB:       getenvDefault("HISTORY_DB", "history.db"),
		Subjects:        parseSubjects(getenvDefault("SUBJECTS", defaultSubjects)),
	}
}

// defaultSubjects mirrors the shipped question banks: two geometry
// units, the second split into three sections.
const defaultSubjects = "geometry1:sectionA,sectionB;geometry2:sectionA,sectionB,sectionC"

// parseSubjects parses "subject:key1,key2;subject2:key1" into the
// subject map.
func parseSubjects(raw string) map[string][]string {
	subjects := make(map[string][]string)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, keys, ok := strings.Cut(entry, ":")
		if !ok {
			log.Fatalf("config: SUBJECTS entry %q must look like subject:section,section", entry)
		}
		id = strings.TrimSpace(id)
		for _, key := range strings.Split(keys, ",") {
			if key = strings.TrimSpace(key); key != "" {
				subjects[id] = append(subjects[id], key)
			}
		}
		if len(subjects[id]) == 0 {
			log.Fatalf("config: subject %q has no sections", id)
		}
	}
	return subjects
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}
