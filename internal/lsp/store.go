package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"langgen/internal/config"
	"langgen/internal/langdef"
	"langgen/internal/pipeline"
)

// Resolver finds the language definition for a source file path.
type Resolver func(path string) (def *langdef.Definition, defPath string, err error)

// ResolveDefinition looks for a definition next to path. When none can be
// loaded an empty definition is returned together with the error, so the
// document can still be lexed.
func ResolveDefinition(path string) (*langdef.Definition, string, error) {
	defPath, err := config.LocateDefinition(path)
	if err != nil {
		return &langdef.Definition{}, "", err
	}
	def, err := langdef.Load(defPath)
	if err != nil {
		return &langdef.Definition{}, defPath, err
	}
	return def, defPath, nil
}

// Document is an open text with the language it is written in.
type Document struct {
	URI     string
	Text    string
	Def     *langdef.Definition
	DefPath string
	DefErr  error

	once     sync.Once
	analysis *pipeline.Analysis
}

// Analysis lexes, parses and lints the text on first use.
func (d *Document) Analysis() *pipeline.Analysis {
	d.once.Do(func() {
		d.analysis = pipeline.Analyze(d.Def, d.Text)
	})
	return d.analysis
}

type Store struct {
	mu      sync.RWMutex
	docs    map[string]*Document
	resolve Resolver
}

// NewStore keeps open documents. A nil resolver means ResolveDefinition.
func NewStore(resolve Resolver) *Store {
	if resolve == nil {
		resolve = ResolveDefinition
	}
	return &Store{docs: map[string]*Document{}, resolve: resolve}
}

// Set records new text for uri. The definition is looked up again each
// time so edits to the definition file are picked up.
func (s *Store) Set(uri, text string) *Document {
	doc := &Document{URI: uri, Text: text}
	doc.Def, doc.DefPath, doc.DefErr = s.resolve(UriToPath(uri))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = doc
	return doc
}

func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[uri]
	return d, ok
}

func (s *Store) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func UriToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return ""
	}
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return filepath.FromSlash(u.Path)
}

func PathToURI(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
