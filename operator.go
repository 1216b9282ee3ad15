package restriction

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Operator is the comparison a restriction expresses.
type Operator int

const (
	Equal Operator = iota
	NotEqual
	Contains
	NotContains
	StartsWith
	EndsWith
	IsEmpty
	IsNotEmpty
	Between
	NotBetween
	Smaller
	SmallerEqual
	Greater
	GreaterEqual
	IsNull
	IsNotNull
	ValueOnly
)

type operatorInfo struct {
	name  string
	label string
	sql   string
	arity int
}

var operators = map[Operator]operatorInfo{
	Equal:        {name: "Equal", label: "=", sql: "IN", arity: Slots},
	NotEqual:     {name: "NotEqual", label: "<>", sql: "NOT IN", arity: Slots},
	Contains:     {name: "Contains", label: "Contains", sql: "LIKE", arity: Slots},
	NotContains:  {name: "NotContains", label: "Does not contain", sql: "NOT LIKE", arity: Slots},
	StartsWith:   {name: "StartsWith", label: "Starts with", sql: "LIKE", arity: Slots},
	EndsWith:     {name: "EndsWith", label: "Ends with", sql: "LIKE", arity: Slots},
	IsEmpty:      {name: "IsEmpty", label: "Is empty", sql: "="},
	IsNotEmpty:   {name: "IsNotEmpty", label: "Is not empty", sql: "<>"},
	Between:      {name: "Between", label: "Between", sql: "BETWEEN", arity: 2},
	NotBetween:   {name: "NotBetween", label: "Not Between", sql: "NOT BETWEEN", arity: 2},
	Smaller:      {name: "Smaller", label: "<", sql: "<", arity: 1},
	SmallerEqual: {name: "SmallerEqual", label: "<=", sql: "<=", arity: 1},
	Greater:      {name: "Greater", label: ">", sql: ">", arity: 1},
	GreaterEqual: {name: "GreaterEqual", label: ">=", sql: ">=", arity: 1},
	IsNull:       {name: "IsNull", label: "Is null", sql: "IS NULL"},
	IsNotNull:    {name: "IsNotNull", label: "Is not null", sql: "IS NOT NULL"},
	ValueOnly:    {name: "ValueOnly", label: "Value only", arity: 1},
}

// Operators lists every operator in declaration order.
var Operators = []Operator{
	Equal, NotEqual, Contains, NotContains, StartsWith, EndsWith, IsEmpty, IsNotEmpty,
	Between, NotBetween, Smaller, SmallerEqual, Greater, GreaterEqual, IsNull, IsNotNull, ValueOnly,
}

func (o Operator) String() string {
	if info, ok := operators[o]; ok {
		return info.name
	}
	return "Unknown"
}

// Label is the untranslated display text of the operator.
func (o Operator) Label() string {
	return operators[o].label
}

// Arity is the number of value slots the operator consumes.
func (o Operator) Arity() int {
	return operators[o].arity
}

func (o Operator) sqlToken() string {
	return operators[o].sql
}

// IsComparison reports Greater, GreaterEqual, Smaller and SmallerEqual.
func (o Operator) IsComparison() bool {
	return o == Greater || o == GreaterEqual || o == Smaller || o == SmallerEqual
}

// IsContain reports the LIKE family.
func (o Operator) IsContain() bool {
	return o == Contains || o == NotContains || o == StartsWith || o == EndsWith
}

// IsBetween reports Between and NotBetween.
func (o Operator) IsBetween() bool {
	return o == Between || o == NotBetween
}

// IsValueless reports operators that never look at value slots.
func (o Operator) IsValueless() bool {
	return o == IsNull || o == IsNotNull || o == IsEmpty || o == IsNotEmpty
}

// ParseOperator returns the operator with the given name, case-insensitively.
func ParseOperator(s string) (Operator, error) {
	op, ok := lo.Find(Operators, func(op Operator) bool {
		return strings.EqualFold(op.String(), strings.TrimSpace(s))
	})
	if !ok {
		return Equal, errors.Errorf("unknown operator %q", s)
	}
	return op, nil
}

func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// AllowedOperators returns the operators offered for a column kind.
func AllowedOperators(kind Kind) []Operator {
	result := []Operator{Equal, NotEqual}
	if kind.IsText() {
		result = append(result, Contains, NotContains, StartsWith, EndsWith, IsEmpty, IsNotEmpty)
	}
	if kind != Enumerated {
		result = append(result, Between, NotBetween, Smaller, SmallerEqual, Greater, GreaterEqual)
	}
	return append(result, IsNull, IsNotNull, ValueOnly)
}

// AllowedDisplayOperators is the operator list an editor offers for a
// restriction currently set to current: ValueOnly is either the only choice
// or not offered at all.
func AllowedDisplayOperators(current Operator, kind Kind) []Operator {
	if current == ValueOnly {
		return []Operator{ValueOnly}
	}
	return lo.Filter(AllowedOperators(kind), func(op Operator, _ int) bool {
		return op != ValueOnly
	})
}
