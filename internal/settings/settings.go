// Package settings persists player preferences to settings.json in the
// data directory: randomized session order and the three sound volumes.
package settings

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Settings are the persisted preferences. Missing keys fall back to the
// defaults; volumes are clamped to [0, 1] on load and save.
type Settings struct {
	Randomize bool    `json:"randomize"`
	Click     float64 `json:"click"`
	Correct   float64 `json:"correct"`
	Incorrect float64 `json:"incorrect"`
}

// Default returns randomize off and all volumes at full.
func Default() Settings {
	return Settings{Click: 1.0, Correct: 1.0, Incorrect: 1.0}
}

// Manager loads settings once and serves/persists them thereafter.
type Manager struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	current Settings
}

func NewManager(dataDir string, logger *slog.Logger) *Manager {
	m := &Manager{
		path:    filepath.Join(dataDir, "settings.json"),
		logger:  logger,
		current: Default(),
	}
	m.load()
	return m
}

// Get returns the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Update clamps, persists and applies new settings.
func (m *Manager) Update(s Settings) error {
	s.clampVolumes()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return err
	}
	m.current = s
	return nil
}

// load reads settings.json, keeping defaults for anything missing or
// unreadable. Never an error to the caller.
func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("failed to read settings file", "path", m.path, "error", err)
		}
		return
	}

	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		m.logger.Warn("invalid settings file, using defaults", "path", m.path, "error", err)
		return
	}
	s.clampVolumes()

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
}

func (s *Settings) clampVolumes() {
	for _, v := range []*float64{&s.Click, &s.Correct, &s.Incorrect} {
		if *v < 0 {
			*v = 0
		}
		if *v > 1 {
			*v = 1
		}
	}
}
