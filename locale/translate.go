package locale

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator translates fixed labels such as operator names and "AND".
type Translator interface {
	Translate(s string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(s string) string

func (f TranslatorFunc) Translate(s string) string { return f(s) }

// Identity returns labels untranslated.
var Identity Translator = TranslatorFunc(func(s string) string { return s })

type catalogTranslator struct {
	printer *message.Printer
	known   map[string]bool
}

// NewCatalog builds a Translator backed by an x/text message catalog holding
// messages for tag. Labels without a message are returned unchanged.
func NewCatalog(tag language.Tag, messages map[string]string) (Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(tag))
	keys := lo.Keys(messages)
	sort.Strings(keys)
	for _, key := range keys {
		// messages are formatted by Sprintf on lookup
		msg := strings.ReplaceAll(messages[key], "%", "%%")
		if err := b.SetString(tag, key, msg); err != nil {
			return nil, errors.Wrapf(err, "set message %q", key)
		}
	}
	return &catalogTranslator{
		printer: message.NewPrinter(tag, message.Catalog(b)),
		known:   lo.SliceToMap(keys, func(k string) (string, bool) { return k, true }),
	}, nil
}

func (c *catalogTranslator) Translate(s string) string {
	if !c.known[s] {
		return s
	}
	return c.printer.Sprintf(s)
}
