// Package i18n resolves localized message templates, standing in for the
// theme/locale message resolution of the hosting login flow.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Catalog maps BCP 47 language tags to message templates and picks the best
// match for a requested locale.
type Catalog struct {
	matcher   language.Matcher
	tags      []language.Tag
	templates map[language.Tag]string
}

// NewCatalog builds a catalog from locale to template. The fallback locale
// must have a template and is used when a requested locale has no match.
func NewCatalog(templates map[string]string, fallback string) (*Catalog, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("i18n: catalog requires at least one template")
	}

	fallbackTag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("i18n: invalid fallback locale %q: %w", fallback, err)
	}
	if _, ok := templates[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback locale %q has no template", fallback)
	}

	// The matcher prefers earlier tags, so the fallback goes first.
	tags := []language.Tag{fallbackTag}
	byTag := map[language.Tag]string{fallbackTag: templates[fallback]}

	for locale, tmpl := range templates {
		if locale == fallback {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("i18n: invalid locale %q: %w", locale, err)
		}
		tags = append(tags, tag)
		byTag[tag] = tmpl
	}

	return &Catalog{
		matcher:   language.NewMatcher(tags),
		tags:      tags,
		templates: byTag,
	}, nil
}

// Lookup returns the template best matching the requested locale, falling
// back when the locale is unknown or malformed.
func (c *Catalog) Lookup(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return c.templates[c.tags[0]]
	}

	_, idx, _ := c.matcher.Match(tag)

	return c.templates[c.tags[idx]]
}

// Format renders the template for locale with the given arguments.
func (c *Catalog) Format(locale string, args ...any) string {
	return fmt.Sprintf(c.Lookup(locale), args...)
}
