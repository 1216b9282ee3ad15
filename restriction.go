// Package restriction turns a single filter condition on a report column into
// a WHERE-clause fragment, a localized description and an editable
// description keeping relative date keywords.
package restriction

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/theplant/restriction/keyword"
)

// Slots is the number of positional value holders of a restriction.
const Slots = 4

// Restriction is a filter condition on one column.
//
// Value, date and keyword slots are addressed from 1 to Slots. Which of them
// is consulted depends on Kind: dates and keywords for DateTime, EnumValues for
// Enumerated, values otherwise. A zero date is unset.
type Restriction struct {
	ID       string
	Operator Operator
	Kind     Kind
	// EnumNumeric tells whether the column behind an Enumerated restriction is numeric.
	EnumNumeric bool
	// OperatorLabel overrides the displayed operator text.
	OperatorLabel string
	// UseAsParameter turns a ValueOnly restriction into (1=1), keeping its value for other consumers.
	UseAsParameter bool
	EnumValues     []string

	values   [Slots]string
	dates    [Slots]time.Time
	keywords [Slots]string
}

// New returns a Text restriction with the Equal operator.
func New() *Restriction {
	return &Restriction{
		ID:       uuid.NewString(),
		Operator: Equal,
		Kind:     Text,
	}
}

func validSlot(slot int) bool {
	return slot >= 1 && slot <= Slots
}

// Value returns the text value of slot.
func (r *Restriction) Value(slot int) string {
	if !validSlot(slot) {
		return ""
	}
	return r.values[slot-1]
}

// SetValue assigns the text value of slot. Numeric restrictions reject
// values that are not floating-point numbers with an *InvalidValueError.
func (r *Restriction) SetValue(slot int, value string) error {
	if !validSlot(slot) {
		return errors.Errorf("slot %d out of range", slot)
	}
	if r.Kind == Numeric && value != "" {
		if _, err := parseNumber(value); err != nil {
			return &InvalidValueError{Slot: slot, Value: value, Err: err}
		}
	}
	r.values[slot-1] = value
	return nil
}

// Date returns the literal date of slot.
func (r *Restriction) Date(slot int) time.Time {
	if !validSlot(slot) {
		return time.Time{}
	}
	return r.dates[slot-1]
}

// SetDate assigns the literal date of slot. The zero time unsets it.
func (r *Restriction) SetDate(slot int, date time.Time) {
	if validSlot(slot) {
		r.dates[slot-1] = date
	}
}

// Keyword returns the relative date keyword of slot.
func (r *Restriction) Keyword(slot int) string {
	if !validSlot(slot) {
		return ""
	}
	return r.keywords[slot-1]
}

// SetKeyword assigns a relative date keyword such as "Today-1" to slot.
func (r *Restriction) SetKeyword(slot int, kw string) {
	if validSlot(slot) {
		r.keywords[slot-1] = kw
	}
}

// AddEnumValue appends id to the enumerated selection.
func (r *Restriction) AddEnumValue(id string) {
	r.EnumValues = append(r.EnumValues, id)
}

// HasValue reports whether slot carries a value for the restriction kind.
func (r *Restriction) HasValue(slot int) bool {
	if !validSlot(slot) {
		return false
	}
	if r.Kind == DateTime {
		return keyword.Has(r.keywords[slot-1]) || !r.dates[slot-1].IsZero()
	}
	return r.values[slot-1] != ""
}

// HasAnyValue reports whether the restriction can produce a concrete condition.
func (r *Restriction) HasAnyValue() bool {
	op := r.Operator
	return op.IsValueless() ||
		(r.Kind == Enumerated && len(r.EnumValues) > 0) ||
		r.HasValue(1) ||
		(r.HasValue(2) && !op.IsComparison()) ||
		(r.HasValue(3) && !op.IsComparison() && !op.IsBetween()) ||
		(r.HasValue(4) && !op.IsComparison() && !op.IsBetween())
}

// FinalDate resolves the date of slot relative to now.
func (r *Restriction) FinalDate(slot int, now time.Time) time.Time {
	return keyword.Resolve(r.Keyword(slot), r.Date(slot), now)
}

// Snapshot returns a copy that later mutations of r do not affect.
func (r *Restriction) Snapshot() Restriction {
	s := *r
	s.EnumValues = slices.Clone(r.EnumValues)
	return s
}

// Texts builds the three outputs for the current state of r.
func (r *Restriction) Texts(env Env) Texts {
	return Build(r.Snapshot(), env)
}

var editorBrackets = strings.NewReplacer("[", "{", "]", "}")

// DisplayRestrictionForEditor is DisplayRestriction with square brackets
// turned into braces, which the formula editor reserves for column references.
func (r *Restriction) DisplayRestrictionForEditor(env Env) string {
	return editorBrackets.Replace(r.Texts(env).DisplayRestriction)
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("%q is not a finite number", s)
	}
	return f, nil
}
