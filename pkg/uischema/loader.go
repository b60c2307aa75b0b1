package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when negotiation finds no better match.
const DefaultLocale = "en"

// Store keeps the parsed overlays keyed by locale. It is safe for concurrent
// readers; it is never mutated after LoadFS returns.
type Store struct {
	docs    map[string]Document
	tags    []language.Tag
	matcher language.Matcher
}

// LoadFS walks fsys and parses every JSON/YAML overlay. The locale comes from
// the document's "locale" key or, when absent, from the file name. When fsys
// is nil or holds no overlays the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{docs: make(map[string]Document)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", name, err)
		}
		doc, err := parseDocument(data, name)
		if err != nil {
			return err
		}

		raw := strings.TrimSpace(doc.Locale)
		if raw == "" {
			raw = strings.TrimSuffix(path.Base(name), path.Ext(name))
		}
		tag, err := language.Parse(raw)
		if err != nil {
			return fmt.Errorf("uischema: file %s has invalid locale %q: %w", name, raw, err)
		}
		locale := tag.String()
		if _, exists := store.docs[locale]; exists {
			return fmt.Errorf("uischema: duplicate locale %q (file %s)", locale, name)
		}

		doc.Locale = locale
		store.docs[locale] = sanitizeDocument(doc)
		store.tags = append(store.tags, tag)
		return nil
	})
	if err != nil {
		return nil, err
	}

	store.sortTags()
	if len(store.tags) > 0 {
		store.matcher = language.NewMatcher(store.tags)
	}
	return store, nil
}

// Locales lists the loaded locales, default first and the rest sorted.
func (s *Store) Locales() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.tags))
	for _, tag := range s.tags {
		out = append(out, tag.String())
	}
	return out
}

// Document returns the overlay for locale.
func (s *Store) Document(locale string) (Document, bool) {
	if s == nil {
		return Document{}, false
	}
	doc, ok := s.docs[locale]
	return doc, ok
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.docs) == 0
}

// Match negotiates the best loaded locale for the preferences, which may be
// plain tags ("de-AT") or Accept-Language headers. It falls back to the
// default locale.
func (s *Store) Match(preferences ...string) string {
	if s.Empty() {
		return DefaultLocale
	}
	var wanted []language.Tag
	for _, pref := range preferences {
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}
	if len(wanted) == 0 {
		return s.tags[0].String()
	}
	_, index, confidence := s.matcher.Match(wanted...)
	if confidence == language.No {
		return s.tags[0].String()
	}
	return s.tags[index].String()
}

func (s *Store) sortTags() {
	sort.Slice(s.tags, func(i, j int) bool { return tagLess(s.tags[i], s.tags[j]) })
}

// tagLess orders the default locale first, then lexically.
func tagLess(a, b language.Tag) bool {
	as, bs := a.String(), b.String()
	if as == DefaultLocale {
		return bs != DefaultLocale
	}
	if bs == DefaultLocale {
		return false
	}
	return as < bs
}

func parseDocument(data []byte, source string) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if strings.EqualFold(path.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

// sanitizeDocument moves help text through the HTML policy once at load.
func sanitizeDocument(doc Document) Document {
	fields := make(map[string]FieldConfig, len(doc.Fields))
	for name, cfg := range doc.Fields {
		cfg.HelpText = sanitizeHelpHTML(cfg.HelpText)
		fields[name] = cfg
	}
	doc.Fields = fields

	types := make(map[string]TypeConfig, len(doc.Types))
	for id, typ := range doc.Types {
		typeFields := make(map[string]FieldConfig, len(typ.Fields))
		for name, cfg := range typ.Fields {
			cfg.HelpText = sanitizeHelpHTML(cfg.HelpText)
			typeFields[name] = cfg
		}
		typ.Fields = typeFields
		types[strings.ToLower(strings.TrimSpace(id))] = typ
	}
	doc.Types = types
	return doc
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
