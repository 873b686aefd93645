package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const logExt = ".jsonl"

// BattleManager bridges configuration settings with local file organization.
type BattleManager struct {
	BattlesDir string
}

// NewBattleManager returns manager localized to the specified battles directory.
func NewBattleManager(battlesDir string) *BattleManager {
	return &BattleManager{BattlesDir: battlesDir}
}

// GetBattlePath produces the log path for a named battle.
func (m *BattleManager) GetBattlePath(name string) string {
	return filepath.Join(m.BattlesDir, name+logExt)
}

// Create starts a new battle log. An existing battle is never overwritten.
func (m *BattleManager) Create(name string) (*Store, error) {
	if err := os.MkdirAll(m.BattlesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", m.BattlesDir, err)
	}

	path := m.GetBattlePath(name)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("battle %q already exists at %s", name, path)
	}
	return NewStore(path)
}

// Load opens an existing battle log.
func (m *BattleManager) Load(name string) (*Store, error) {
	path := m.GetBattlePath(name)
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		return nil, fmt.Errorf("battle log not properly found: %s", path)
	}
	return NewStore(path)
}

// List returns the names of all stored battles, sorted.
func (m *BattleManager) List() ([]string, error) {
	entries, err := os.ReadDir(m.BattlesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), logExt) {
			names = append(names, strings.TrimSuffix(e.Name(), logExt))
		}
	}
	sort.Strings(names)
	return names, nil
}
