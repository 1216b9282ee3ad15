package dialect

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
)

type ansi struct {
	dialect    Dialect
	dateLayout string
}

func (e ansi) Dialect() Dialect { return e.dialect }

func (e ansi) Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (e ansi) Date(t time.Time) string {
	return Quote(t.Format(e.dateLayout))
}

func (e ansi) Text(s string) string        { return Quote(s) }
func (e ansi) UnicodeText(s string) string { return Quote(s) }
func (e ansi) EmptyString() string         { return "''" }

// oracle rejects empty string literals and needs UNISTR for unicode text.
type oracle struct {
	ansi
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// UnicodeText escapes every UTF-16 code unit of s as \XXXX inside UNISTR.
func (e oracle) UnicodeText(s string) string {
	encoded, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return e.Text(s)
	}
	var b strings.Builder
	for i := 0; i+1 < len(encoded); i += 2 {
		fmt.Fprintf(&b, `\%02X%02X`, encoded[i+1], encoded[i])
	}
	return "UNISTR(" + Quote(b.String()) + ")"
}

func (e oracle) EmptyString() string { return "' '" }

type mssql struct {
	ansi
}

func (e mssql) UnicodeText(s string) string { return "N" + Quote(s) }

// serial covers desktop file sources (Access, Excel) that compare dates as
// OLE automation serial numbers.
type serial struct {
	ansi
}

func (e serial) Date(t time.Time) string {
	return strconv.FormatFloat(ToOADate(t), 'f', -1, 64)
}
