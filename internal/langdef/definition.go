package langdef

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

var ErrInvalid = errors.New("invalid language definition")

// Entry is one canonical id to surface spelling pair.
type Entry struct {
	ID       string
	Spelling string
}

// Mapping is an insertion-ordered canonical id to spelling table. Order
// matters: when two ids share a spelling, the later entry wins.
type Mapping struct {
	entries []Entry
}

func NewMapping(pairs ...string) Mapping {
	var m Mapping
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set replaces the spelling of an existing id in place or appends a new entry.
func (m *Mapping) Set(id, spelling string) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Spelling = spelling
			return
		}
	}
	m.entries = append(m.entries, Entry{ID: id, Spelling: spelling})
}

func (m *Mapping) Delete(id string) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}

// Get returns the trimmed spelling for id. Blank spellings count as unset.
func (m Mapping) Get(id string) (string, bool) {
	for _, e := range m.entries {
		if e.ID == id {
			s := strings.TrimSpace(e.Spelling)
			return s, s != ""
		}
	}
	return "", false
}

func (m Mapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m Mapping) Len() int     { return len(m.entries) }
func (m Mapping) IsZero() bool { return len(m.entries) == 0 }

func (m Mapping) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, yaml.MapItem{Key: e.ID, Value: e.Spelling})
	}
	return out, nil
}

func (m *Mapping) UnmarshalYAML(unmarshal func(any) error) error {
	var raw yaml.MapSlice
	if err := unmarshal(&raw); err != nil {
		return err
	}
	m.entries = nil
	for _, item := range raw {
		id := fmt.Sprint(item.Key)
		switch v := item.Value.(type) {
		case nil:
			continue
		case string:
			m.Set(id, v)
		case map[string]any, map[any]any, []any, yaml.MapSlice:
			return fmt.Errorf("spelling for %q must be a string", id)
		default:
			m.Set(id, fmt.Sprint(v))
		}
	}
	return nil
}

// Definition is a user language: canonical ids mapped to surface spellings
// plus cosmetic metadata. It is read-only once handed to a lexer.
type Definition struct {
	Name        string  `yaml:"name"`
	Version     string  `yaml:"version,omitempty"`
	Author      string  `yaml:"author,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Keywords    Mapping `yaml:"keywords"`
	Builtins    Mapping `yaml:"builtins,omitempty"`
	Operators   Mapping `yaml:"operators,omitempty"`
	Errors      Mapping `yaml:"errors,omitempty"`
}

// KeywordSpelling is the surface spelling of k. Keywords have no fallback.
func (d *Definition) KeywordSpelling(k Keyword) (string, bool) {
	return d.Keywords.Get(k.String())
}

// BuiltinSpelling is the surface spelling of b, falling back to its canonical id.
func (d *Definition) BuiltinSpelling(b Builtin) string {
	if s, ok := d.Builtins.Get(b.String()); ok {
		return s
	}
	return b.String()
}

// OperatorAlias is the optional word spelling of op.
func (d *Definition) OperatorAlias(op Operator) (string, bool) {
	return d.Operators.Get(op.String())
}

// ErrorPrefix returns the custom prefix for an error kind (syntax, runtime, type).
func (d *Definition) ErrorPrefix(kind string) (string, bool) {
	if d == nil {
		return "", false
	}
	return d.Errors.Get(kind)
}

// Slug is the lower-case file-name form of the definition name.
func (d *Definition) Slug() string {
	slug := strings.ToLower(strings.Join(strings.Fields(d.Name), "_"))
	if slug == "" {
		return "language"
	}
	return slug
}

// DisplayName is the definition name, or a placeholder for unnamed languages.
func (d *Definition) DisplayName() string {
	if n := strings.TrimSpace(d.Name); n != "" {
		return n
	}
	return "unnamed language"
}

// Parse decodes a definition from YAML or JSON. Unknown keys are ignored.
func Parse(data []byte) (*Definition, error) {
	def := &Definition{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return def, nil
}

func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Marshal encodes d as YAML. Keys keep their insertion order, so equal
// definitions always encode to identical bytes.
func Marshal(d *Definition) ([]byte, error) {
	return yaml.Marshal(d)
}

func MarshalJSON(d *Definition) ([]byte, error) {
	return yaml.MarshalWithOptions(d, yaml.JSON())
}

// Save writes d to path, as JSON when the extension is .json and YAML otherwise.
func Save(d *Definition, path string) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = MarshalJSON(d)
	} else {
		data, err = Marshal(d)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
