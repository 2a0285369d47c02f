// Package i18n localizes action titles, group names and user-facing strings.
//
// English is the source language: message IDs are the English text, so an
// ID with no translation is displayed as is. Messages with template data use
// symbolic IDs and carry an English entry in locales/en.yaml.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keybind/internal/input/catalog"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator resolves messages for one language.
type Translator struct {
	lang      string
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
}

// New creates a translator for lang, a BCP 47 tag. Unknown languages fall
// back to English.
func New(lang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("reading locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile(path.Join("locales", f.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading locale %s: %w", f.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parsing locale %s: %w", f.Name(), err)
		}
	}

	if lang == "" {
		lang = language.English.String()
	}
	return &Translator{
		lang:      lang,
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, lang),
	}, nil
}

// Lang returns the requested language tag.
func (t *Translator) Lang() string {
	return t.lang
}

// T translates id. data supplies template values for symbolic IDs.
// A missing message returns id.
func (t *Translator) T(id string, data ...map[string]any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := t.localizer.Localize(cfg)
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// Title returns the localized display title of an action.
func (t *Translator) Title(e catalog.Entry) string {
	title := t.T(e.Title)
	if e.Ordinal > 0 {
		return fmt.Sprintf("%s (%d)", title, e.Ordinal)
	}
	return title
}

// Group returns the localized name of an action group.
func (t *Translator) Group(name string) string {
	return t.T(name)
}

// Available returns the tags of the embedded locales, sorted.
func Available() []string {
	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return []string{language.English.String()}
	}
	tags := make([]string, 0, len(files))
	for _, f := range files {
		tag, ok := strings.CutSuffix(f.Name(), ".yaml")
		if ok && !f.IsDir() {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}
