package profile

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/chaz8081/typesink/internal/classify"
	"github.com/chaz8081/typesink/internal/window"
)

// Store resolves a window snapshot to its compatibility profile.
// Lookup order: exact process-name override, category default, safe
// default. The table behind it is replaced wholesale on Reload and read
// under a lock, so in-flight injections always see a consistent view.
type Store struct {
	classifier *classify.Classifier

	mu      sync.RWMutex
	tbl     table
	version int
}

type table struct {
	Categories map[classify.Category]Profile `yaml:"categories"`
	Overrides  map[string]Profile            `yaml:"overrides"`
}

// NewStore returns a Store seeded with the built-in category defaults
// and no process overrides.
func NewStore(classifier *classify.Classifier) *Store {
	if classifier == nil {
		panic("profile: NewStore called with nil classifier")
	}
	return &Store{
		classifier: classifier,
		tbl:        builtinTable(),
		version:    1,
	}
}

// Resolve returns the profile for the given window. It always succeeds:
// unknown processes get their category default and an empty or corrupt
// table degrades to SafeDefault.
func (s *Store) Resolve(info window.Info) Profile {
	cat := s.classifier.Classify(info)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.tbl.Overrides[classify.NormalizeProcess(info.ProcessName)]; ok {
		if p.Category == "" {
			p.Category = cat
		}
		return p
	}
	if p, ok := s.tbl.Categories[cat]; ok {
		p.Category = cat
		return p
	}

	p := SafeDefault()
	p.Category = cat
	return p
}

// Version returns the reload generation of the current table. It starts
// at 1 and increments on every successful Reload.
func (s *Store) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Reload reads a settings file and atomically swaps the table, merging
// the file's categories and overrides on top of the built-in defaults.
// On any error the previous table stays in effect. Returns the new
// version number.
func (s *Store) Reload(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("profile: reading table: %w", err)
	}

	var loaded table
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return 0, fmt.Errorf("profile: parsing table: %w", err)
	}

	merged := builtinTable()
	for cat, p := range loaded.Categories {
		if err := validateProfile(p); err != nil {
			return 0, fmt.Errorf("profile: category %q: %w", cat, err)
		}
		p.Category = cat
		merged.Categories[cat] = p
	}
	for proc, p := range loaded.Overrides {
		if err := validateProfile(p); err != nil {
			return 0, fmt.Errorf("profile: override %q: %w", proc, err)
		}
		merged.Overrides[classify.NormalizeProcess(proc)] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tbl = merged
	s.version++
	return s.version, nil
}

func validateProfile(p Profile) error {
	if p.Preferred != "" && !p.Preferred.Valid() {
		return fmt.Errorf("unknown strategy %q", p.Preferred)
	}
	for _, f := range p.Fallbacks {
		if !f.Valid() {
			return fmt.Errorf("unknown fallback strategy %q", f)
		}
	}
	if p.InterCharDelayMS < 0 {
		return fmt.Errorf("negative inter_char_delay_ms %d", p.InterCharDelayMS)
	}
	return nil
}
