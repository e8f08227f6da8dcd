package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/sadopc/weekplan/internal/plan"
)

const dataFileName = "weekplan.json"

// Store is the file-backed persistence gateway. It keeps a mirror of the
// last-known AppData under a mutex (save calls arrive from debounce timer
// goroutines) and rewrites the whole JSON document on every save.
type Store struct {
	mu           sync.Mutex
	settingsPath string
	defaultDir   string
	dataPath     string
	settings     Settings
	data         plan.AppData
}

// New opens the store rooted at configDir, loading settings.json to decide
// where the data file lives.
func New(configDir string) (*Store, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	s := &Store{
		settingsPath: filepath.Join(configDir, "settings.json"),
		defaultDir:   configDir,
	}
	s.settings = loadSettings(s.settingsPath)
	s.dataPath = s.resolveDataPath()
	return s, nil
}

// DefaultConfigDir returns the per-user config directory for the app.
func DefaultConfigDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "weekplan"), nil
}

func (s *Store) resolveDataPath() string {
	if s.settings.CustomDataPath != "" {
		info, err := os.Stat(s.settings.CustomDataPath)
		if err == nil && info.IsDir() {
			return filepath.Join(s.settings.CustomDataPath, dataFileName)
		}
		log.Printf("custom data path unusable, falling back to default: %s", s.settings.CustomDataPath)
	}
	return filepath.Join(s.defaultDir, dataFileName)
}

// Load reads the data file, returning defaults (empty collections, goal 40)
// when it is absent. Read or parse failures are logged and also yield
// defaults; they are never surfaced to the caller.
func (s *Store) Load() plan.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := plan.DefaultAppData()
	raw, err := os.ReadFile(s.dataPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run.
	case err != nil:
		log.Printf("read data file: %v", err)
	default:
		if err := json.Unmarshal(raw, &data); err != nil {
			log.Printf("parse data file: %v", err)
			data = plan.DefaultAppData()
		}
	}
	s.data = data
	return data
}

func (s *Store) SaveAll(data plan.AppData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return s.write()
}

func (s *Store) SaveProjects(projects []plan.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Projects = projects
	return s.write()
}

// SaveWeek upserts one week by key and rewrites the file.
func (s *Store) SaveWeek(week plan.WeekData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Weeks {
		if s.data.Weeks[i].WeekKey == week.WeekKey {
			s.data.Weeks[i] = week
			return s.write()
		}
	}
	s.data.Weeks = append(s.data.Weeks, week)
	return s.write()
}

func (s *Store) SaveTemplates(templates []plan.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Templates = templates
	return s.write()
}

func (s *Store) write() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.dataPath), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(s.dataPath, raw, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// DataLocation returns the directory currently holding the data file.
func (s *Store) DataLocation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filepath.Dir(s.dataPath)
}

// SetDataLocation moves the backing store to dir, optionally copying the
// current data file there first (only when the destination has none).
// The caller is expected to Load again afterwards to rehydrate.
func (s *Store) SetDataLocation(dir string, copyExisting bool) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dir)
	}

	probe := filepath.Join(dir, ".weekplan_write_test")
	if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	os.Remove(probe)

	s.mu.Lock()
	defer s.mu.Unlock()

	newPath := filepath.Join(dir, dataFileName)
	if copyExisting {
		if err := copyFileIfMissing(s.dataPath, newPath); err != nil {
			return err
		}
	}

	s.settings.CustomDataPath = dir
	if err := saveSettings(s.settingsPath, s.settings); err != nil {
		return err
	}
	s.dataPath = newPath
	return nil
}

// ResetToDefaultLocation moves the backing store back to the config
// directory, optionally copying the current data file there first.
func (s *Store) ResetToDefaultLocation(copyExisting bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	defaultPath := filepath.Join(s.defaultDir, dataFileName)
	if copyExisting {
		if err := os.MkdirAll(s.defaultDir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
		if err := copyFileIfMissing(s.dataPath, defaultPath); err != nil {
			return err
		}
	}

	s.settings.CustomDataPath = ""
	if err := saveSettings(s.settingsPath, s.settings); err != nil {
		return err
	}
	s.dataPath = defaultPath
	return nil
}

// copyFileIfMissing copies src to dst unless src is absent or dst already
// exists. Existing data at the destination always wins.
func copyFileIfMissing(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return nil
	}
	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	raw, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("copy data: %w", err)
	}
	if err := os.WriteFile(dst, raw, 0o644); err != nil {
		return fmt.Errorf("copy data: %w", err)
	}
	return nil
}
