package restriction

import (
	"time"

	"github.com/samber/lo"

	"github.com/theplant/restriction/dialect"
	"github.com/theplant/restriction/keyword"
	"github.com/theplant/restriction/locale"
)

// number parses a stored numeric value. Values that became invalid after a
// kind change render as 0, like empty ones.
func number(value string) float64 {
	f, _ := parseNumber(value)
	return f
}

// displayValue renders a resolved value for DisplayText.
func (b *builder) displayValue(value string, date time.Time) string {
	switch b.r.Kind {
	case Numeric:
		if value == "" {
			return "0"
		}
		return b.env.Locale.Number(number(value))
	case DateTime:
		return locale.Quote(b.env.Locale.Date(date))
	default:
		return locale.Quote(value)
	}
}

// restrictionValue renders slot for DisplayRestriction: keywords stay unresolved.
func (b *builder) restrictionValue(slot int) string {
	if b.r.Kind == DateTime {
		if kw := b.r.Keyword(slot); keyword.Has(kw) {
			return dialect.Quote(kw)
		}
	}
	return b.displayValue(b.r.Value(slot), b.finalDate(slot))
}

// sqlValue renders slot as a query literal for the operator.
func (b *builder) sqlValue(slot int) string {
	enc := b.env.Encoder
	value := b.r.Value(slot)
	switch b.r.Kind {
	case Numeric:
		if value == "" {
			return "0"
		}
		return enc.Number(number(value))
	case DateTime:
		return enc.Date(b.finalDate(slot))
	}

	switch b.r.Operator {
	case Contains, NotContains:
		value = "%" + value + "%"
	case StartsWith:
		value = value + "%"
	case EndsWith:
		value = "%" + value
	}
	if b.r.Kind == UnicodeText {
		return enc.UnicodeText(value)
	}
	return enc.Text(value)
}

func (b *builder) enumDisplayValue() string {
	return b.env.Locale.Join(lo.Map(b.r.EnumValues, func(id string, _ int) string {
		return b.env.EnumDisplay(id)
	}))
}

func (b *builder) enumSQLValue() string {
	if len(b.r.EnumValues) == 0 {
		if b.r.EnumNumeric {
			return "0"
		}
		return "''"
	}
	return joinSQL(lo.Map(b.r.EnumValues, func(id string, _ int) string {
		if b.r.EnumNumeric {
			return id
		}
		return dialect.Quote(id)
	}))
}

// EditorValue renders slot for an input control: unquoted raw values,
// keywords instead of resolved dates and short dates otherwise.
func (r *Restriction) EditorValue(slot int, l locale.Locale) string {
	if r.Kind != DateTime {
		return r.Value(slot)
	}
	kw := r.Keyword(slot)
	switch {
	case keyword.Has(kw):
		return kw
	case r.Date(slot).IsZero():
		return ""
	default:
		return l.ShortDate(r.Date(slot))
	}
}
