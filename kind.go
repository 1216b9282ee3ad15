package restriction

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies the restricted column and selects formatting and encoding rules.
type Kind int

const (
	Text Kind = iota
	Numeric
	DateTime
	UnicodeText
	Enumerated
)

var kindNames = map[Kind]string{
	Text:        "Text",
	Numeric:     "Numeric",
	DateTime:    "DateTime",
	UnicodeText: "UnicodeText",
	Enumerated:  "Enumerated",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsText reports plain and unicode text columns.
func (k Kind) IsText() bool {
	return k == Text || k == UnicodeText
}

// ParseKind returns the kind with the given name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return Text, errors.Errorf("unknown column kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
