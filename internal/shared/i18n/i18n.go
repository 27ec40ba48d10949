// Package i18n carrega os catálogos de mensagens embutidos e formata textos por locale.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// DefaultLocale é o idioma dos apps originais.
var DefaultLocale = language.Spanish

//go:embed locales/*.yaml
var localesFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

var (
	builder, supported = mustLoad()
	matcher            = language.NewMatcher(supported)
)

func mustLoad() (*catalog.Builder, []language.Tag) {
	b, tags, err := load(localesFS)
	if err != nil {
		panic(fmt.Errorf("load message catalogs: %w", err))
	}
	return b, tags
}

func load(fsys fs.FS) (*catalog.Builder, []language.Tag, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(paths)

	b := catalog.NewBuilder(catalog.Fallback(DefaultLocale))
	// o default vem primeiro para o matcher
	tags := []language.Tag{DefaultLocale}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", p, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", p, err)
		}
		tag, err := language.Parse(f.Locale)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: locale %q: %w", p, f.Locale, err)
		}
		for key, msg := range f.Messages {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, nil, fmt.Errorf("%s: key %s: %w", p, key, err)
			}
		}
		if tag != DefaultLocale {
			tags = append(tags, tag)
		}
	}
	return b, tags, nil
}

// Translator formata mensagens de um locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New escolhe o locale suportado mais próximo de locale ("es", "en-US", ...).
func New(locale string) *Translator {
	matched, _ := language.MatchStrings(matcher, locale)
	// o catálogo só tem idiomas base; descarta região e extensões
	base, _ := matched.Base()
	tag := language.Make(base.String())
	return &Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(builder))}
}

func (t *Translator) Locale() language.Tag { return t.tag }

// T devolve a mensagem da chave formatada com args.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}
