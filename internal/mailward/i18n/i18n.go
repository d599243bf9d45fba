// Package i18n localizes outbound action emails. Message files are embedded
// into the binary; the locale stored on the subject picks the language and
// anything unknown falls back to the configured default.
package i18n

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.toml
var translationFS embed.FS

var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.Portuguese,
}

// Catalog holds the loaded message bundle for all supported locales.
type Catalog struct {
	bundle        *i18n.Bundle
	matcher       language.Matcher
	defaultLocale string
}

// NewCatalog loads the embedded translations. defaultLocale is used whenever
// a subject's locale is empty or has no message file.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	if defaultLocale == "" {
		defaultLocale = "en"
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files := []string{
		"translations/active.en.toml",
		"translations/active.es.toml",
		"translations/active.pt.toml",
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(translationFS, file); err != nil {
			return nil, fmt.Errorf("load message file %s: %w", file, err)
		}
	}

	return &Catalog{
		bundle:        bundle,
		matcher:       language.NewMatcher(supported),
		defaultLocale: defaultLocale,
	}, nil
}

// MatchLocale normalizes an arbitrary locale string ("pt-BR", "es_MX") to the
// nearest supported base language, or the default when nothing matches.
func (c *Catalog) MatchLocale(locale string) string {
	if locale == "" {
		return c.defaultLocale
	}
	tag, _ := language.MatchStrings(c.matcher, locale)
	base, conf := tag.Base()
	if conf == language.No {
		return c.defaultLocale
	}
	return base.String()
}

// T translates a message by ID for the given locale.
func (c *Catalog) T(locale, messageID string) string {
	return c.TData(locale, messageID, nil)
}

// TData translates a message with template data. Missing messages degrade to
// the message ID so a gap in a translation file never breaks sending.
func (c *Catalog) TData(locale, messageID string, data map[string]any) string {
	msg, err := c.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

func (c *Catalog) localizer(locale string) *i18n.Localizer {
	if locale == "" {
		return i18n.NewLocalizer(c.bundle, c.defaultLocale)
	}
	return i18n.NewLocalizer(c.bundle, locale, c.defaultLocale)
}
