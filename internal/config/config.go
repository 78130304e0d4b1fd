// Package config loads the service's environment-variable configuration
// once at startup into an immutable struct.
package config

import (
	"fmt"
	"log"
	"os"
)

// Config holds every tunable of the ingestion pipeline. It is read once in
// main and passed down by value; nothing in the service mutates it.
type Config struct {
	Port int

	EngineAPIKey string

	PDFPages string

	MaxDocChars  int
	OverlapChars int

	MaxTextPages int

	MaxHeaderRows int
	MinRows       int
	MinCols       int

	ExtractorWorkers int

	LatticeLineScale int
	StreamEdgeTol    int
	StreamRowTol     int
}

// Load reads the configuration from the environment. ENGINE_API_KEY is
// required; its absence is a fatal startup error.
func Load() Config {
	apiKey := getEnv("ENGINE_API_KEY", "")
	if apiKey == "" {
		log.Fatal("ENGINE_API_KEY is required")
	}

	return Config{
		Port: getEnvInt("PORT", 8080),

		EngineAPIKey: apiKey,

		PDFPages: getEnv("PDF_PAGES", "all"),

		MaxDocChars:  getEnvInt("MAX_DOC_CHARS", 6000),
		OverlapChars: getEnvInt("OVERLAP_CHARS", 800),

		MaxTextPages: getEnvInt("MAX_TEXT_PAGES", 200),

		MaxHeaderRows: getEnvInt("MAX_HEADER_ROWS", 4),
		MinRows:       getEnvInt("MIN_ROWS_FOR_TABLE", 2),
		MinCols:       getEnvInt("MIN_COLS_FOR_TABLE", 2),

		ExtractorWorkers: getEnvInt("EXTRACTOR_WORKERS", 3),

		LatticeLineScale: getEnvInt("CAMELOT_LATTICE_LINE_SCALE", 40),
		StreamEdgeTol:    getEnvInt("CAMELOT_STREAM_EDGE_TOL", 200),
		StreamRowTol:     getEnvInt("CAMELOT_STREAM_ROW_TOL", 10),
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
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
