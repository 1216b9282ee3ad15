// Package locale renders restriction values for display in a given culture.
package locale

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale carries the culture settings used to display values.
type Locale struct {
	Tag             language.Tag
	ListSeparator   string
	ShortDateLayout string
	DateTimeLayout  string
}

// Default is the en-US locale.
var Default = Locale{
	Tag:             language.AmericanEnglish,
	ListSeparator:   ",",
	ShortDateLayout: "1/2/2006",
	DateTimeLayout:  "1/2/2006 3:04:05 PM",
}

type conventions struct {
	listSeparator string
	shortDate     string
	dateTime      string
}

// keyed by base language, then by region for the exceptions
var byLanguage = map[string]conventions{
	"en": {",", "1/2/2006", "1/2/2006 3:04:05 PM"},
	"fr": {";", "02/01/2006", "02/01/2006 15:04:05"},
	"de": {";", "02.01.2006", "02.01.2006 15:04:05"},
	"es": {";", "02/01/2006", "02/01/2006 15:04:05"},
	"it": {";", "02/01/2006", "02/01/2006 15:04:05"},
	"nl": {";", "2-1-2006", "2-1-2006 15:04:05"},
	"pt": {";", "02/01/2006", "02/01/2006 15:04:05"},
	"ru": {";", "02.01.2006", "02.01.2006 15:04:05"},
	"ja": {",", "2006/01/02", "2006/01/02 15:04:05"},
	"zh": {",", "2006/1/2", "2006/1/2 15:04:05"},
}

var byRegion = map[string]conventions{
	"en-GB": {",", "02/01/2006", "02/01/2006 15:04:05"},
	"de-CH": {";", "02.01.2006", "02.01.2006 15:04:05"},
}

var iso = conventions{",", "2006-01-02", "2006-01-02 15:04:05"}

// Parse returns the locale for a BCP 47 tag such as "fr-FR".
func Parse(tag string) (Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return Locale{}, errors.Wrapf(err, "parse locale %q", tag)
	}
	return ForTag(t), nil
}

// ForTag returns the conventions of t, falling back to ISO layouts.
func ForTag(t language.Tag) Locale {
	base, _ := t.Base()
	region, _ := t.Region()
	c, ok := byRegion[base.String()+"-"+region.String()]
	if !ok {
		c, ok = byLanguage[base.String()]
	}
	if !ok {
		c = iso
	}
	return Locale{
		Tag:             t,
		ListSeparator:   c.listSeparator,
		ShortDateLayout: c.shortDate,
		DateTimeLayout:  c.dateTime,
	}
}

// WithDefaults fills the empty fields of l from the conventions of its tag,
// or from Default when l has no tag.
func (l Locale) WithDefaults() Locale {
	base := Default
	if l.Tag == language.Und {
		l.Tag = base.Tag
	} else {
		base = ForTag(l.Tag)
	}
	if l.ListSeparator == "" {
		l.ListSeparator = base.ListSeparator
	}
	if l.ShortDateLayout == "" {
		l.ShortDateLayout = base.ShortDateLayout
	}
	if l.DateTimeLayout == "" {
		l.DateTimeLayout = base.DateTimeLayout
	}
	return l
}

// Number renders v with the grouping and decimal symbols of the locale,
// keeping every fraction digit and never switching to scientific notation.
func (l Locale) Number(v float64) string {
	return message.NewPrinter(l.Tag).Sprint(number.Decimal(v, number.MaxFractionDigits(-1)))
}

// Date renders t with the full date time layout.
func (l Locale) Date(t time.Time) string {
	return t.Format(l.DateTimeLayout)
}

// ShortDate renders t the way date pickers expect it.
func (l Locale) ShortDate(t time.Time) string {
	return t.Format(l.ShortDateLayout)
}

// Join concatenates parts with the list separator.
func (l Locale) Join(parts []string) string {
	return strings.Join(parts, l.ListSeparator)
}

// Quote wraps s in apostrophes for display. Embedded apostrophes are kept as is.
func Quote(s string) string {
	return "'" + s + "'"
}

// Unquote strips one pair of surrounding apostrophes.
func Unquote(s string) string {
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
