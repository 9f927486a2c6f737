package translation

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when the user carries no language code.
const DefaultLanguage = "en"

// Translator resolves message keys into localized, formatted strings.
// A missing key or language falls back to the raw key so that callers can
// always render something meaningful.
type Translator struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]string
}

// New creates an empty Translator
func New() *Translator {
	return &Translator{catalogs: make(map[string]map[string]string)}
}

// NewWithCatalogs creates a Translator preloaded with per-language catalogs
func NewWithCatalogs(catalogs map[string]map[string]string) *Translator {
	t := New()
	for lang, messages := range catalogs {
		t.AddCatalog(lang, messages)
	}
	return t
}

// LoadCatalogFile loads a YAML message catalog for one language.
// The file is a flat key: template mapping; templates use fmt verbs for
// positional arguments.
func (t *Translator) LoadCatalogFile(lang, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", path, err)
	}

	messages := make(map[string]string)
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("parse catalog %s: %w", path, err)
	}

	t.AddCatalog(lang, messages)
	return nil
}

// AddCatalog merges a message catalog for one language
func (t *Translator) AddCatalog(lang string, messages map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	catalog, ok := t.catalogs[lang]
	if !ok {
		catalog = make(map[string]string, len(messages))
		t.catalogs[lang] = catalog
	}
	for k, v := range messages {
		catalog[k] = v
	}
}

// Translate resolves a message key for the given language and formats it with
// the positional arguments. Unknown keys pass through unchanged.
func (t *Translator) Translate(lang, key string, args ...any) string {
	if lang == "" {
		lang = DefaultLanguage
	}

	t.mu.RLock()
	template, ok := t.catalogs[lang][key]
	if !ok && lang != DefaultLanguage {
		template, ok = t.catalogs[DefaultLanguage][key]
	}
	t.mu.RUnlock()

	if !ok {
		return key
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}
