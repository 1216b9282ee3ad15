package gormrestriction

import (
	"gorm.io/gorm/clause"
)

// Condition is a rendered restriction used as a gorm where expression.
// The SQL is written verbatim: values are already encoded as literals, so
// no placeholder substitution takes place.
type Condition struct {
	SQL string
}

func (c Condition) Build(builder clause.Builder) {
	_, _ = builder.WriteString(c.SQL)
}

// NegationBuild lets clause.Not negate a restriction as a whole.
func (c Condition) NegationBuild(builder clause.Builder) {
	_, _ = builder.WriteString("NOT (")
	_, _ = builder.WriteString(c.SQL)
	_ = builder.WriteByte(')')
}
