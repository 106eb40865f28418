package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	PickerGUI    = "gui"
	PickerPrompt = "prompt"
)

type Config struct {
	ModelDir         string
	VesselModelFile  string
	ContentModelFile string
	VesselClasses    []string
	ContentClasses   []string
	InputSize        int     // square network input edge in pixels
	NMSThreshold     float64 // IoU above which overlapping boxes are suppressed
	Picker           string
	JSONLogs         bool
	LogLevel         string
	Debug            bool
}

const DotEnvFile = ".env"

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set in the environment win.
func Load() (*Config, error) {
	return LoadFile(DotEnvFile)
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an
// error; an unreadable or malformed one is.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return FromEnv(), nil
}

func FromEnv() *Config {
	return &Config{
		ModelDir:         getEnv("FORESIGHT_MODEL_DIR", filepath.Join(".", "models")),
		VesselModelFile:  getEnv("FORESIGHT_VESSEL_MODEL", "best_vessel.onnx"),
		ContentModelFile: getEnv("FORESIGHT_CONTENT_MODEL", "best_content.onnx"),
		VesselClasses:    getEnvAsList("FORESIGHT_VESSEL_CLASSES", []string{"Vessel"}),
		ContentClasses:   getEnvAsList("FORESIGHT_CONTENT_CLASSES", []string{"Empty", "Hetero", "Homo", "Residue", "Solid"}),
		InputSize:        getEnvAsInt("FORESIGHT_INPUT_SIZE", 640),
		NMSThreshold:     getEnvAsFloat("FORESIGHT_NMS_IOU", 0.45),
		Picker:           normalizePicker(getEnv("FORESIGHT_PICKER", PickerGUI)),
		JSONLogs:         getEnvAsBool("FORESIGHT_JSON_LOGS", false),
		LogLevel:         getEnv("LOG_LEVEL", ""),
		Debug:            getEnv("DEBUG", "") == "1",
	}
}

func normalizePicker(value string) string {
	if strings.EqualFold(value, PickerPrompt) {
		return PickerPrompt
	}
	return PickerGUI
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
