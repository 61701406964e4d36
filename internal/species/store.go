package species

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/plantcare-engine/internal/common"
)

//go:embed profiles.yaml
var builtinProfiles []byte

// DefaultCacheSize bounds the number of resolved names kept in memory.
const DefaultCacheSize = 256

var validate = validator.New()

// Table indexes profiles by normalized scientific name.
type Table map[string]Profile

// ParseTable decodes a YAML list of profiles and validates every entry.
func ParseTable(data []byte) (Table, error) {
	var profiles []Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse species table: %w", err)
	}

	t := make(Table, len(profiles))
	for i, p := range profiles {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("species table entry %d (%q): %w", i, p.ScientificName, err)
		}
		t[common.NormalizeName(p.ScientificName)] = p
	}
	return t, nil
}

// BuiltinTable returns the profiles shipped with the binary.
func BuiltinTable() (Table, error) {
	return ParseTable(builtinProfiles)
}

// LoadTable returns the built-in table with entries from path layered on top.
// An empty path yields the built-in table alone.
func LoadTable(path string) (Table, error) {
	t, err := BuiltinTable()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read species file %s: %w", path, err)
	}
	extra, err := ParseTable(data)
	if err != nil {
		return nil, err
	}
	for k, p := range extra {
		t[k] = p
	}
	log.Printf("species: loaded %d profiles from %s", len(extra), path)
	return t, nil
}

// Store resolves species names to profiles. Lookups never fail: unknown names
// resolve to FallbackProfile. Resolved names, fallbacks included, are cached.
type Store struct {
	table      Table
	cache      *lru.Cache[string, Profile]
	onFallback func(name string)
}

// NewStore builds a Store over table. cacheSize <= 0 uses DefaultCacheSize.
func NewStore(table Table, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, Profile](cacheSize)
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = Table{}
	}
	return &Store{table: table, cache: cache}, nil
}

// OnFallback registers fn to be called whenever a name misses the table.
func (s *Store) OnFallback(fn func(name string)) *Store {
	s.onFallback = fn
	return s
}

// Profile returns the profile for a scientific name.
func (s *Store) Profile(name string) Profile {
	key := common.NormalizeName(name)
	if p, ok := s.cache.Get(key); ok {
		return p
	}

	p, ok := s.table[key]
	if !ok {
		p = FallbackProfile(name)
		if s.onFallback != nil {
			s.onFallback(name)
		}
	}
	s.cache.Add(key, p)
	return p
}

// Known reports whether name is in the table.
func (s *Store) Known(name string) bool {
	_, ok := s.table[common.NormalizeName(name)]
	return ok
}

// Names lists the scientific names in the table, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.table))
	for _, p := range s.table {
		names = append(names, p.ScientificName)
	}
	sort.Strings(names)
	return names
}
