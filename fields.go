package restriction

import "fmt"

// Field names an input of a restriction editor.
type Field string

const (
	FieldOperatorLabel  Field = "OperatorLabel"
	FieldEnumValues     Field = "EnumValues"
	FieldUseAsParameter Field = "UseAsParameter"
)

// ValueField, DateField and KeywordField name the inputs of a slot.
func ValueField(slot int) Field   { return Field(fmt.Sprintf("Value%d", slot)) }
func DateField(slot int) Field    { return Field(fmt.Sprintf("Date%d", slot)) }
func KeywordField(slot int) Field { return Field(fmt.Sprintf("Date%dKeyword", slot)) }

// RelevantFields returns the inputs that influence the output of a
// restriction with operator op on a column of the given kind.
func RelevantFields(op Operator, kind Kind) []Field {
	fields := []Field{FieldOperatorLabel}
	if op == ValueOnly {
		fields = append(fields, FieldUseAsParameter)
	}
	arity := op.Arity()
	if arity == 0 {
		return fields
	}
	if kind == Enumerated {
		return append(fields, FieldEnumValues)
	}
	for slot := 1; slot <= arity; slot++ {
		if kind == DateTime {
			fields = append(fields, DateField(slot), KeywordField(slot))
		} else {
			fields = append(fields, ValueField(slot))
		}
	}
	return fields
}
