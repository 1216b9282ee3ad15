package restriction

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/theplant/restriction/dialect"
	"github.com/theplant/restriction/locale"
)

// SetNavigationValue routes a value coming from a drill-down link into the
// slot matching the kind: an enum selection, a date given as an OLE
// automation serial number, or the first value slot.
func (r *Restriction) SetNavigationValue(value string) error {
	switch r.Kind {
	case Enumerated:
		r.AddEnumValue(value)
		return nil
	case DateTime:
		serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return errors.Wrapf(err, "parse navigation date %q", value)
		}
		date, err := dialect.FromOADate(serial)
		if err != nil {
			return err
		}
		r.SetDate(1, date)
		return nil
	default:
		return r.SetValue(1, value)
	}
}

// NavigationDisplayValue renders the first value, or the enum selection,
// without surrounding apostrophes.
func (r *Restriction) NavigationDisplayValue(env Env) string {
	env = env.withDefaults()
	b := &builder{r: r, env: env, now: env.Now()}
	if r.Kind == Enumerated {
		return locale.Unquote(b.enumDisplayValue())
	}
	return locale.Unquote(b.displayValue(r.Value(1), b.finalDate(1)))
}
