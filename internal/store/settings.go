package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
)

// Settings are user preferences kept outside the data file, so relocating
// the data file never loses them.
type Settings struct {
	CustomDataPath string `json:"customDataPath,omitempty"`
}

func loadSettings(path string) Settings {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("read settings file: %v", err)
		}
		return Settings{}
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Printf("parse settings file: %v", err)
		return Settings{}
	}
	return s
}

func saveSettings(path string, s Settings) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
