package detection

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"foresight/internal/config"
	"foresight/internal/logger"
)

// Manager discovers model files, loads them and hands out the active detector.
type Manager struct {
	mu       sync.Mutex
	cfg      *config.Config
	modelDir string
	detector Detector
	logger   logger.Logger
}

func NewManager(cfg *config.Config, log logger.Logger) *Manager {
	return &Manager{cfg: cfg, modelDir: cfg.ModelDir, logger: log}
}

func (m *Manager) ModelDir() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modelDir
}

// Available reports whether both model files exist in the model directory.
func (m *Manager) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.resolve(m.modelDir)
	return ok
}

func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detector != nil
}

// SetModelDir points the manager at dir, or at dir/models when the weights
// live one level down. The directory is kept only when the weights are found.
func (m *Manager) SetModelDir(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	resolved, ok := m.resolve(dir)
	if !ok {
		return fmt.Errorf("no %s and %s under %s", m.cfg.VesselModelFile, m.cfg.ContentModelFile, dir)
	}
	m.modelDir = resolved
	m.logger.Info("ModelManager", "model directory set", map[string]interface{}{"dir": resolved})
	return nil
}

func (m *Manager) resolve(dir string) (string, bool) {
	for _, candidate := range []string{dir, filepath.Join(dir, "models")} {
		if fileExists(filepath.Join(candidate, m.cfg.VesselModelFile)) &&
			fileExists(filepath.Join(candidate, m.cfg.ContentModelFile)) {
			return candidate, true
		}
	}
	return "", false
}

// Load (re)creates the detector from the model directory. On failure the
// previous detector is already released and none is active.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked()

	dir, ok := m.resolve(m.modelDir)
	if !ok {
		return fmt.Errorf("model files not found in %s", m.modelDir)
	}

	vesselPath := filepath.Join(dir, m.cfg.VesselModelFile)
	contentPath := filepath.Join(dir, m.cfg.ContentModelFile)

	vessel, err := LoadModel(vesselPath, m.cfg.VesselClasses, m.cfg.InputSize, m.cfg.NMSThreshold)
	if err != nil {
		return fmt.Errorf("vessel model: %w", err)
	}
	contents, err := LoadModel(contentPath, m.cfg.ContentClasses, m.cfg.InputSize, m.cfg.NMSThreshold)
	if err != nil {
		vessel.Close()
		return fmt.Errorf("contents model: %w", err)
	}

	m.detector = NewHeinSight(vessel, contents, m.logger)
	m.logger.Info("ModelManager", "models loaded", map[string]interface{}{
		"vessel":   vesselPath,
		"contents": contentPath,
	})
	return nil
}

// Detector returns the active detector or ErrModelsNotLoaded.
func (m *Manager) Detector() (Detector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detector == nil {
		return nil, ErrModelsNotLoaded
	}
	return m.detector, nil
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.detector == nil {
		return
	}
	if err := m.detector.Close(); err != nil {
		m.logger.Error("ModelManager", err, nil)
	}
	m.detector = nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
