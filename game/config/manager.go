package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
)

//go:embed tiers/*.yaml
var embeddedTiers embed.FS

var (
	ErrTierNotFound = service.ErrTierNotFound
	ErrReadOnly     = service.ErrTiersReadOnly
	ErrInvalidTier  = errors.New("invalid tier")
)

var tierIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Manager handles tier loading and caching
type Manager struct {
	fsys  fs.FS
	dir   string // empty when the catalog is read-only
	tiers map[string]*engine.Tier
	mu    sync.RWMutex
}

// NewManager creates a tier manager backed by a directory of YAML files
func NewManager(dir string) (*Manager, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("tier directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tier path is not a directory: %s", dir)
	}

	m := NewFSManager(os.DirFS(dir))
	m.dir = dir
	return m, nil
}

// NewDefaultManager creates a read-only manager over the built-in Easy, Medium and Hard tiers
func NewDefaultManager() (*Manager, error) {
	return NewFSManager(DefaultFS()), nil
}

// NewFSManager creates a read-only manager over any file system
func NewFSManager(fsys fs.FS) *Manager {
	return &Manager{
		fsys:  fsys,
		tiers: make(map[string]*engine.Tier),
	}
}

// DefaultFS returns the built-in tier files
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embeddedTiers, "tiers")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadTier loads a tier by id (file name without extension, case-insensitive)
func (m *Manager) LoadTier(name string) (*engine.Tier, error) {
	id := tierID(name)

	m.mu.RLock()
	// Check cache first
	if tier, exists := m.tiers[id]; exists {
		m.mu.RUnlock()
		return tier.Clone(), nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if tier, exists := m.tiers[id]; exists {
		return tier.Clone(), nil
	}

	file, err := m.findFile(id)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(m.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier file: %w", err)
	}

	tier, err := ParseTier(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	m.tiers[id] = tier
	return tier.Clone(), nil
}

// ListTiers returns information about every valid tier in the catalog
func (m *Manager) ListTiers() ([]*service.TierInfo, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read tier directory: %w", err)
	}

	tiers := []*service.TierInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !isTierFile(entry.Name()) {
			continue
		}

		id := tierID(entry.Name())
		tier, err := m.LoadTier(id)
		if err != nil {
			// Skip invalid tiers
			continue
		}

		names := make([]string, 0, len(tier.Boards))
		for i, b := range tier.Boards {
			if b.Name == "" {
				names = append(names, fmt.Sprintf("%s %d", tier.Name, i+1))
				continue
			}
			names = append(names, b.Name)
		}

		tiers = append(tiers, &service.TierInfo{
			ID:          id,
			Name:        tier.Name,
			Description: tier.Description,
			Boards:      len(tier.Boards),
			BoardNames:  names,
		})
	}

	return tiers, nil
}

// SaveTier validates a tier and writes it to the catalog directory
func (m *Manager) SaveTier(name string, tier *engine.Tier) error {
	if m.dir == "" {
		return ErrReadOnly
	}

	id := tierID(name)
	if !tierIDPattern.MatchString(id) {
		return fmt.Errorf("%w: tier id %q must use lowercase letters, digits, '-' or '_'", ErrInvalidTier, name)
	}
	if err := engine.ValidateTier(tier); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTier, err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tier); err != nil {
		return fmt.Errorf("failed to marshal tier: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal tier: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.WriteFile(filepath.Join(m.dir, id+".yaml"), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write tier file: %w", err)
	}

	m.tiers[id] = tier.Clone()
	return nil
}

// RefreshCache drops every cached tier so the next load reads the files again
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiers = make(map[string]*engine.Tier)
}

// ReadOnly reports whether SaveTier is unavailable
func (m *Manager) ReadOnly() bool {
	return m.dir == ""
}

// ParseTier decodes and validates a YAML tier document
func ParseTier(data []byte) (*engine.Tier, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var tier engine.Tier
	if err := dec.Decode(&tier); err != nil {
		return nil, fmt.Errorf("%w: failed to parse tier: %v", ErrInvalidTier, err)
	}
	if err := engine.ValidateTier(&tier); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTier, err)
	}
	return &tier, nil
}

// findFile locates the tier file whose name matches id, ignoring case.
// Callers hold the lock.
func (m *Manager) findFile(id string) (string, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return "", fmt.Errorf("failed to read tier directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isTierFile(entry.Name()) {
			continue
		}
		if tierID(entry.Name()) == id {
			return entry.Name(), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTierNotFound, id)
}

func tierID(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, ext := range []string{".yaml", ".yml"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func isTierFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
