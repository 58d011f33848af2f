package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ManifestName is the optional per-directory project file.
const ManifestName = "langgen.project"

// DefinitionNames are the sibling files probed for a language definition,
// in order. Any *.slang file is tried after them.
var DefinitionNames = []string{"language.yaml", "language.yml", "language.json"}

var ErrNoDefinition = errors.New("no language definition found")

// Manifest names a project's entry program and language definition.
// Paths are relative to Dir.
type Manifest struct {
	Name     string
	Entry    string
	Language string
	Dir      string
}

func (m *Manifest) EntryPath() string    { return m.resolve(m.Entry) }
func (m *Manifest) LanguagePath() string { return m.resolve(m.Language) }

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir, p)
}

// LoadManifest reads key = "value" lines; '#' starts a comment line and
// unknown keys are ignored.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Manifest{Dir: filepath.Dir(path)}
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%s:%d: invalid line", path, lineNo)
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		if len(val) < 2 || val[0] != '"' || val[len(val)-1] != '"' {
			return nil, fmt.Errorf("%s:%d: value must be a quoted string", path, lineNo)
		}
		val = val[1 : len(val)-1]

		switch key {
		case "name":
			m.Name = val
		case "entry":
			m.Entry = val
		case "language":
			m.Language = val
		default:
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// FindManifest loads the nearest manifest in dir or one of its parents.
func FindManifest(dir string) (*Manifest, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, false, err
	}
	for {
		path := filepath.Join(dir, ManifestName)
		st, err := os.Stat(path)
		if err == nil && !st.IsDir() {
			m, err := LoadManifest(path)
			if err != nil {
				return nil, false, err
			}
			return m, true, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false, nil
		}
		dir = parent
	}
}

// Entry returns the entry program of the project around dir.
func Entry(dir string) (string, *Manifest, error) {
	m, ok, err := FindManifest(dir)
	if err != nil {
		return "", nil, err
	}
	if !ok || m.Entry == "" {
		return "", nil, fmt.Errorf("no program given and no %s with an entry above %s", ManifestName, dir)
	}
	return m.EntryPath(), m, nil
}

// LocateDefinition finds the language definition of a source file: the
// language entry of the nearest manifest first, then the well-known names
// next to the file, then the alphabetically first *.slang file there.
func LocateDefinition(sourcePath string) (string, error) {
	dir := filepath.Dir(sourcePath)

	m, ok, err := FindManifest(dir)
	if err != nil {
		return "", err
	}
	if ok && m.Language != "" {
		return m.LanguagePath(), nil
	}

	for _, name := range DefinitionNames {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.slang"))
	if err != nil {
		return "", err
	}
	sort.Strings(matches)
	if len(matches) > 0 {
		return matches[0], nil
	}
	return "", fmt.Errorf("%w next to %s", ErrNoDefinition, sourcePath)
}

// ResolveDefinition prefers an explicit path over discovery.
func ResolveDefinition(explicit, sourcePath string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return LocateDefinition(sourcePath)
}
