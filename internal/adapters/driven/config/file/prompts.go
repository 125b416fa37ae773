package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/logger"
)

//go:embed defaults/*.txt
var defaultFS embed.FS

// ErrUnknownPrompt is returned for a name with no embedded default.
var ErrUnknownPrompt = errors.New("unknown prompt")

// placeholders lists the markers each template must keep.
var placeholders = map[string][]string{
	driven.PromptAnswer: {"{context}", "{query}"},
}

var _ driven.PromptStore = (*PromptStore)(nil)

type cachedPrompt struct {
	text    string
	modTime time.Time
}

// PromptStore serves templates from <dir>/<name>.txt. A file is re-read
// whenever its modification time changes, so edits apply without a restart.
// Missing files are seeded from the embedded defaults on first use; a file
// that drops a required placeholder is ignored in favour of the default.
type PromptStore struct {
	dir string

	seedOnce sync.Once
	mu       sync.Mutex
	cache    map[string]cachedPrompt
}

// NewPromptStore creates a store rooted at dir, or ~/.voxrag/prompts when
// dir is empty. Nothing is written until the first Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".voxrag", "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]cachedPrompt)}, nil
}

// Dir returns the directory templates are read from.
func (s *PromptStore) Dir() string {
	return s.dir
}

// Load returns the template called name.
func (s *PromptStore) Load(name string) (string, error) {
	fallback, err := defaultPrompt(name)
	if err != nil {
		return "", err
	}
	s.seedOnce.Do(s.seed)

	path := filepath.Join(s.dir, name+".txt")
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("prompt %s: %v", name, err)
		}
		return fallback, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cache[name]; ok && c.modTime.Equal(info.ModTime()) {
		return c.text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("prompt %s: %v", name, err)
		return fallback, nil
	}
	text := strings.TrimSpace(string(data))
	if missing := missingPlaceholder(name, text); missing != "" {
		logger.Warn("prompt %s is missing %s, using the default", name, missing)
		text = fallback
	}

	s.cache[name] = cachedPrompt{text: text, modTime: info.ModTime()}
	return text, nil
}

// Reload forgets every cached template.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

// seed writes any default template that has no file yet. Failures are
// logged; Load still serves the embedded text.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		logger.Warn("create prompt directory: %v", err)
		return
	}
	for name := range placeholders {
		path := filepath.Join(s.dir, name+".txt")
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		text, _ := defaultPrompt(name)
		if err := os.WriteFile(path, []byte(text+"\n"), 0600); err != nil {
			logger.Warn("seed prompt %s: %v", name, err)
		}
	}
}

func defaultPrompt(name string) (string, error) {
	data, err := defaultFS.ReadFile("defaults/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownPrompt, name)
	}
	return strings.TrimSpace(string(data)), nil
}

func missingPlaceholder(name, text string) string {
	for _, p := range placeholders[name] {
		if !strings.Contains(text, p) {
			return p
		}
	}
	return ""
}
