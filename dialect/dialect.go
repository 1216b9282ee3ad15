// Package dialect encodes restriction values as SQL literals for the supported
// database families. Each dialect is a separate Encoder strategy; adding a
// dialect means adding one encoder and one entry in New.
package dialect

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Dialect identifies a database family.
type Dialect int

const (
	ANSI Dialect = iota
	Oracle
	MSSQLServer
	MSAccess
	MSExcel
)

// Default is the dialect used when a connection does not specify one.
const Default = ANSI

// DefaultDateLayout renders date literals as 'yyyy-MM-dd HH:mm:ss'.
const DefaultDateLayout = "2006-01-02 15:04:05"

var names = map[Dialect]string{
	ANSI:        "ANSI",
	Oracle:      "Oracle",
	MSSQLServer: "MSSQLServer",
	MSAccess:    "MSAccess",
	MSExcel:     "MSExcel",
}

var aliases = map[string]Dialect{
	"":            ANSI,
	"default":     ANSI,
	"ansi":        ANSI,
	"postgres":    ANSI,
	"oracle":      Oracle,
	"mssqlserver": MSSQLServer,
	"mssql":       MSSQLServer,
	"sqlserver":   MSSQLServer,
	"msaccess":    MSAccess,
	"access":      MSAccess,
	"msexcel":     MSExcel,
	"excel":       MSExcel,
}

func (d Dialect) String() string {
	if name, ok := names[d]; ok {
		return name
	}
	return "Unknown"
}

// Parse returns the dialect named by s, case-insensitively.
func Parse(s string) (Dialect, error) {
	d, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ANSI, errors.Errorf("unknown dialect %q", s)
	}
	return d, nil
}

// Encoder renders single values as query literals.
type Encoder interface {
	Dialect() Dialect
	// Number renders an invariant floating-point literal.
	Number(v float64) string
	// Date renders a date literal.
	Date(t time.Time) string
	// Text renders an apostrophe-quoted text literal.
	Text(s string) string
	// UnicodeText renders a text literal for a unicode column.
	UnicodeText(s string) string
	// EmptyString is the literal compared against by IsEmpty/IsNotEmpty.
	EmptyString() string
}

type options struct {
	dateLayout string
}

// Option configures an Encoder.
type Option func(*options)

// WithDateLayout sets the Go time layout used for quoted date literals.
func WithDateLayout(layout string) Option {
	return func(o *options) {
		if layout != "" {
			o.dateLayout = layout
		}
	}
}

// New returns the encoder for d. Unknown dialects fall back to ANSI.
func New(d Dialect, opts ...Option) Encoder {
	o := &options{dateLayout: DefaultDateLayout}
	for _, opt := range opts {
		opt(o)
	}

	base := ansi{dialect: d, dateLayout: o.dateLayout}
	switch d {
	case Oracle:
		return oracle{ansi: base}
	case MSSQLServer:
		return mssql{ansi: base}
	case MSAccess, MSExcel:
		return serial{ansi: base}
	default:
		base.dialect = ANSI
		return base
	}
}

// Quote wraps s in apostrophes, doubling embedded ones.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
