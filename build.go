package restriction

import (
	"strings"
	"time"

	"github.com/theplant/restriction/dialect"
	"github.com/theplant/restriction/locale"
)

// Tautology is the fragment emitted when a restriction must not filter anything.
const Tautology = "(1=1)"

// Env is what the surrounding report supplies to render a restriction.
type Env struct {
	Encoder    dialect.Encoder
	Locale     locale.Locale
	Translator locale.Translator
	// Column is the SQL reference of the restricted column.
	Column string
	// Label is the translated display name of the restricted column.
	Label string
	// NoSQL is set when the source cannot evaluate BETWEEN.
	NoSQL bool
	// Now defaults to time.Now.
	Now func() time.Time
	// EnumDisplay maps an enum identifier to its display text. Defaults to the identifier.
	EnumDisplay func(id string) string
}

func (env Env) withDefaults() Env {
	if env.Encoder == nil {
		env.Encoder = dialect.New(dialect.Default)
	}
	env.Locale = env.Locale.WithDefaults()
	if env.Translator == nil {
		env.Translator = locale.Identity
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.EnumDisplay == nil {
		env.EnumDisplay = func(id string) string { return id }
	}
	return env
}

// Texts holds the three synchronized renderings of a restriction.
type Texts struct {
	SQL                string `json:"sql"`
	DisplayText        string `json:"displayText"`
	DisplayRestriction string `json:"displayRestriction"`
}

type builder struct {
	r   *Restriction
	env Env
	now time.Time
}

func (b *builder) finalDate(slot int) time.Time {
	return b.r.FinalDate(slot, b.now)
}

func (b *builder) and() string {
	return b.env.Translator.Translate("AND")
}

// Build renders r. It never fails: missing values degrade to "?" in the
// descriptions and to the tautology in SQL. The clock is read once so that
// the three outputs agree on relative dates.
func Build(r Restriction, env Env) Texts {
	env = env.withDefaults()
	b := &builder{r: &r, env: env, now: env.Now()}
	if r.Operator == ValueOnly {
		return b.valueOnly()
	}
	return b.condition()
}

func (b *builder) valueOnly() Texts {
	r := b.r
	prefix := b.env.Label + " "
	if r.OperatorLabel != "" {
		prefix += r.OperatorLabel + " "
	}

	if r.Kind == Enumerated {
		texts := Texts{SQL: Tautology, DisplayText: prefix + "?"}
		if r.HasAnyValue() {
			if !r.UseAsParameter {
				texts.SQL = "(" + b.enumSQLValue() + ")"
			}
			texts.DisplayText = prefix + b.enumDisplayValue()
		}
		texts.DisplayRestriction = texts.DisplayText
		return texts
	}

	if !r.HasValue(1) {
		return Texts{SQL: Tautology, DisplayText: prefix + "?", DisplayRestriction: prefix + "?"}
	}
	texts := Texts{
		SQL:                Tautology,
		DisplayText:        prefix + b.displayValue(r.Value(1), b.finalDate(1)),
		DisplayRestriction: prefix + b.restrictionValue(1),
	}
	if !r.UseAsParameter {
		texts.SQL = b.sqlValue(1)
	}
	return texts
}

func (b *builder) condition() Texts {
	r := b.r
	column := b.env.Column
	opLabel := r.OperatorLabel
	if opLabel == "" {
		opLabel = b.env.Translator.Translate(r.Operator.Label())
	}
	head := b.env.Label + " " + opLabel

	if !r.HasAnyValue() {
		return placeholder(head)
	}

	switch op := r.Operator; {
	case op == IsNull || op == IsNotNull:
		return Texts{SQL: column + " " + op.sqlToken(), DisplayText: head, DisplayRestriction: head}

	case op == IsEmpty || op == IsNotEmpty:
		sql := column + " " + op.sqlToken() + " " + b.env.Encoder.EmptyString()
		return Texts{SQL: sql, DisplayText: head, DisplayRestriction: head}

	case op.IsBetween():
		return b.between(head)

	case op == Equal || op == NotEqual:
		return b.in(head)

	case op.IsContain():
		return b.like(head)

	case !r.HasValue(1):
		return placeholder(head)

	default:
		return Texts{
			SQL:                column + " " + op.sqlToken() + " " + b.sqlValue(1),
			DisplayText:        head + " " + b.displayValue(r.Value(1), b.finalDate(1)),
			DisplayRestriction: head + " " + b.restrictionValue(1),
		}
	}
}

// placeholder is the output of a restriction that has nothing to filter on.
func placeholder(head string) Texts {
	return Texts{SQL: Tautology, DisplayText: head + " ?", DisplayRestriction: head + " ?"}
}

func (b *builder) between(head string) Texts {
	r, column := b.r, b.env.Column
	if len(b.presentSlots()) == 0 {
		return placeholder(head)
	}
	and := " " + b.and() + " "
	texts := Texts{
		DisplayText: head + " " + b.displayValue(r.Value(1), b.finalDate(1)) +
			and + b.displayValue(r.Value(2), b.finalDate(2)),
		DisplayRestriction: head + " " + b.restrictionValue(1) + and + b.restrictionValue(2),
	}
	low, high := b.sqlValue(1), b.sqlValue(2)
	if b.env.NoSQL {
		texts.SQL = "(" + column + ">=" + low + " AND " + column + "<=" + high + ")"
		if r.Operator == NotBetween {
			texts.SQL = "NOT " + texts.SQL
		}
	} else {
		texts.SQL = "(" + column + " " + r.Operator.sqlToken() + " " + low + " AND " + high + ")"
	}
	return texts
}

// presentSlots lists the slots carrying a value, in order.
func (b *builder) presentSlots() []int {
	var slots []int
	for slot := 1; slot <= Slots; slot++ {
		if b.r.HasValue(slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// collect renders every present slot for the three outputs.
func (b *builder) collect(sqlItem func(slot int) string) (display, restriction, sql []string) {
	for _, slot := range b.presentSlots() {
		display = append(display, b.displayValue(b.r.Value(slot), b.finalDate(slot)))
		restriction = append(restriction, b.restrictionValue(slot))
		sql = append(sql, sqlItem(slot))
	}
	return display, restriction, sql
}

func (b *builder) in(head string) Texts {
	r := b.r
	sqlHead := b.env.Column + " " + r.Operator.sqlToken() + " ("
	if r.Kind == Enumerated {
		display := b.enumDisplayValue()
		return Texts{
			SQL:                sqlHead + b.enumSQLValue() + ")",
			DisplayText:        head + " " + display,
			DisplayRestriction: head + " " + display,
		}
	}

	display, restriction, sql := b.collect(b.sqlValue)
	return Texts{
		SQL:                sqlHead + joinSQL(sql) + ")",
		DisplayText:        head + " " + b.env.Locale.Join(display),
		DisplayRestriction: head + " " + b.env.Locale.Join(restriction),
	}
}

func (b *builder) like(head string) Texts {
	r, column := b.r, b.env.Column
	separator := " OR "
	if r.Operator == NotContains {
		separator = " AND "
	}
	display, restriction, sql := b.collect(func(slot int) string {
		return column + " " + r.Operator.sqlToken() + " " + b.sqlValue(slot)
	})
	if len(sql) == 0 {
		return placeholder(head)
	}
	return Texts{
		SQL:                "(" + strings.Join(sql, separator) + ")",
		DisplayText:        head + " " + b.env.Locale.Join(display),
		DisplayRestriction: head + " " + b.env.Locale.Join(restriction),
	}
}

func joinSQL(values []string) string {
	return strings.Join(values, ",")
}
