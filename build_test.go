package restriction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/theplant/restriction"
	"github.com/theplant/restriction/dialect"
	"github.com/theplant/restriction/locale"
)

// Wednesday
var now = time.Date(2024, time.March, 13, 15, 4, 5, 0, time.UTC)

func testEnv(d dialect.Dialect) restriction.Env {
	return restriction.Env{
		Encoder: dialect.New(d),
		Locale:  locale.Default,
		Column:  "o.amount",
		Label:   "Amount",
		Now:     func() time.Time { return now },
	}
}

func newRestriction(t *testing.T, kind restriction.Kind, op restriction.Operator, values ...string) *restriction.Restriction {
	t.Helper()
	r := restriction.New()
	r.Kind = kind
	r.Operator = op
	for i, v := range values {
		require.NoError(t, r.SetValue(i+1, v))
	}
	return r
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		r       func(t *testing.T) *restriction.Restriction
		dialect dialect.Dialect
		noSQL   bool
		want    restriction.Texts
	}{
		{
			name: "is null ignores values",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.IsNull, "1", "2")
			},
			want: restriction.Texts{
				SQL:                "o.amount IS NULL",
				DisplayText:        "Amount Is null",
				DisplayRestriction: "Amount Is null",
			},
		},
		{
			name: "is not null",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.IsNotNull)
			},
			want: restriction.Texts{
				SQL:                "o.amount IS NOT NULL",
				DisplayText:        "Amount Is not null",
				DisplayRestriction: "Amount Is not null",
			},
		},
		{
			name: "is empty",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.IsEmpty, "ignored")
			},
			want: restriction.Texts{
				SQL:                "o.amount = ''",
				DisplayText:        "Amount Is empty",
				DisplayRestriction: "Amount Is empty",
			},
		},
		{
			name: "is not empty on oracle",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.IsNotEmpty)
			},
			dialect: dialect.Oracle,
			want: restriction.Texts{
				SQL:                "o.amount <> ' '",
				DisplayText:        "Amount Is not empty",
				DisplayRestriction: "Amount Is not empty",
			},
		},
		{
			name: "between",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.Between, "10", "20", "30")
			},
			want: restriction.Texts{
				SQL:                "(o.amount BETWEEN 10 AND 20)",
				DisplayText:        "Amount Between 10 AND 20",
				DisplayRestriction: "Amount Between 10 AND 20",
			},
		},
		{
			name: "between without native range filtering",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.Between, "10", "20")
			},
			noSQL: true,
			want: restriction.Texts{
				SQL:                "(o.amount>=10 AND o.amount<=20)",
				DisplayText:        "Amount Between 10 AND 20",
				DisplayRestriction: "Amount Between 10 AND 20",
			},
		},
		{
			name: "not between without native range filtering",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.NotBetween, "10", "20")
			},
			noSQL: true,
			want: restriction.Texts{
				SQL:                "NOT (o.amount>=10 AND o.amount<=20)",
				DisplayText:        "Amount Not Between 10 AND 20",
				DisplayRestriction: "Amount Not Between 10 AND 20",
			},
		},
		{
			name: "equal skips empty slots",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.Equal, "A", "", "C", "")
			},
			want: restriction.Texts{
				SQL:                "o.amount IN ('A','C')",
				DisplayText:        "Amount = 'A','C'",
				DisplayRestriction: "Amount = 'A','C'",
			},
		},
		{
			name: "not equal numeric",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.NotEqual, "1", "", "", "2")
			},
			want: restriction.Texts{
				SQL:                "o.amount NOT IN (1,2)",
				DisplayText:        "Amount <> 1,2",
				DisplayRestriction: "Amount <> 1,2",
			},
		},
		{
			name: "equal escapes apostrophes in sql only",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.Equal, "O'Brien")
			},
			want: restriction.Texts{
				SQL:                "o.amount IN ('O''Brien')",
				DisplayText:        "Amount = 'O'Brien'",
				DisplayRestriction: "Amount = 'O'Brien'",
			},
		},
		{
			name: "contains joins with or",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.Contains, "ab", "", "cd")
			},
			want: restriction.Texts{
				SQL:                "(o.amount LIKE '%ab%' OR o.amount LIKE '%cd%')",
				DisplayText:        "Amount Contains 'ab','cd'",
				DisplayRestriction: "Amount Contains 'ab','cd'",
			},
		},
		{
			name: "not contains joins with and",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.NotContains, "ab", "cd")
			},
			want: restriction.Texts{
				SQL:                "(o.amount NOT LIKE '%ab%' AND o.amount NOT LIKE '%cd%')",
				DisplayText:        "Amount Does not contain 'ab','cd'",
				DisplayRestriction: "Amount Does not contain 'ab','cd'",
			},
		},
		{
			name: "starts with",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.StartsWith, "ab")
			},
			want: restriction.Texts{
				SQL:                "(o.amount LIKE 'ab%')",
				DisplayText:        "Amount Starts with 'ab'",
				DisplayRestriction: "Amount Starts with 'ab'",
			},
		},
		{
			name: "ends with",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.EndsWith, "ab")
			},
			want: restriction.Texts{
				SQL:                "(o.amount LIKE '%ab')",
				DisplayText:        "Amount Ends with 'ab'",
				DisplayRestriction: "Amount Ends with 'ab'",
			},
		},
		{
			name: "greater",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.Greater, "5", "99")
			},
			want: restriction.Texts{
				SQL:                "o.amount > 5",
				DisplayText:        "Amount > 5",
				DisplayRestriction: "Amount > 5",
			},
		},
		{
			name: "smaller equal",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.SmallerEqual, "-1.5")
			},
			want: restriction.Texts{
				SQL:                "o.amount <= -1.5",
				DisplayText:        "Amount <= -1.5",
				DisplayRestriction: "Amount <= -1.5",
			},
		},
		{
			name: "no value",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.Equal)
			},
			want: restriction.Texts{
				SQL:                "(1=1)",
				DisplayText:        "Amount = ?",
				DisplayRestriction: "Amount = ?",
			},
		},
		{
			name: "comparison ignores second slot",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.Greater, "", "5")
			},
			want: restriction.Texts{
				SQL:                "(1=1)",
				DisplayText:        "Amount > ?",
				DisplayRestriction: "Amount > ?",
			},
		},
		{
			name: "operator label override",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.Text, restriction.Equal, "A")
				r.OperatorLabel = "is one of"
				return r
			},
			want: restriction.Texts{
				SQL:                "o.amount IN ('A')",
				DisplayText:        "Amount is one of 'A'",
				DisplayRestriction: "Amount is one of 'A'",
			},
		},
		{
			name: "enum equal",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.Enumerated, restriction.Equal)
				r.EnumValues = []string{"x", "y"}
				return r
			},
			want: restriction.Texts{
				SQL:                "o.amount IN ('x','y')",
				DisplayText:        "Amount = x,y",
				DisplayRestriction: "Amount = x,y",
			},
		},
		{
			name: "numeric enum not equal",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.Enumerated, restriction.NotEqual)
				r.EnumNumeric = true
				r.EnumValues = []string{"3", "1"}
				return r
			},
			want: restriction.Texts{
				SQL:                "o.amount NOT IN (3,1)",
				DisplayText:        "Amount <> 3,1",
				DisplayRestriction: "Amount <> 3,1",
			},
		},
		{
			name: "enum without selection",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Enumerated, restriction.Equal)
			},
			want: restriction.Texts{
				SQL:                "(1=1)",
				DisplayText:        "Amount = ?",
				DisplayRestriction: "Amount = ?",
			},
		},
		{
			name: "enum value only used as parameter",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.Enumerated, restriction.ValueOnly)
				r.UseAsParameter = true
				r.EnumValues = []string{"a", "b"}
				return r
			},
			want: restriction.Texts{
				SQL:                "(1=1)",
				DisplayText:        "Amount a,b",
				DisplayRestriction: "Amount a,b",
			},
		},
		{
			name: "enum value only",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.Enumerated, restriction.ValueOnly)
				r.OperatorLabel = "in"
				r.EnumValues = []string{"a", "b"}
				return r
			},
			want: restriction.Texts{
				SQL:                "('a','b')",
				DisplayText:        "Amount in a,b",
				DisplayRestriction: "Amount in a,b",
			},
		},
		{
			name: "value only",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.ValueOnly, "42")
			},
			want: restriction.Texts{
				SQL:                "42",
				DisplayText:        "Amount 42",
				DisplayRestriction: "Amount 42",
			},
		},
		{
			name: "value only used as parameter",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.Text, restriction.ValueOnly, "abc")
				r.UseAsParameter = true
				return r
			},
			want: restriction.Texts{
				SQL:                "(1=1)",
				DisplayText:        "Amount 'abc'",
				DisplayRestriction: "Amount 'abc'",
			},
		},
		{
			name: "value only without value",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Text, restriction.ValueOnly)
			},
			want: restriction.Texts{
				SQL:                "(1=1)",
				DisplayText:        "Amount ?",
				DisplayRestriction: "Amount ?",
			},
		},
		{
			name: "unicode text on sql server",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.UnicodeText, restriction.Equal, "café")
			},
			dialect: dialect.MSSQLServer,
			want: restriction.Texts{
				SQL:                "o.amount IN (N'café')",
				DisplayText:        "Amount = 'café'",
				DisplayRestriction: "Amount = 'café'",
			},
		},
		{
			name: "unicode contains on oracle wraps wildcards first",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.UnicodeText, restriction.Contains, "é")
			},
			dialect: dialect.Oracle,
			want: restriction.Texts{
				SQL:                `(o.amount LIKE UNISTR('\0025\00E9\0025'))`,
				DisplayText:        "Amount Contains 'é'",
				DisplayRestriction: "Amount Contains 'é'",
			},
		},
		{
			name: "large numbers keep digits",
			r: func(t *testing.T) *restriction.Restriction {
				return newRestriction(t, restriction.Numeric, restriction.Equal, "1000000", "2500000.5")
			},
			want: restriction.Texts{
				SQL:                "o.amount IN (1000000,2500000.5)",
				DisplayText:        "Amount = 1,000,000,2,500,000.5",
				DisplayRestriction: "Amount = 1,000,000,2,500,000.5",
			},
		},
		{
			name: "enumerated contains ignores selection",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.Enumerated, restriction.Contains)
				r.EnumValues = []string{"FR", "DE"}
				return r
			},
			want: restriction.Texts{
				SQL:                restriction.Tautology,
				DisplayText:        "Amount Contains ?",
				DisplayRestriction: "Amount Contains ?",
			},
		},
		{
			name: "enumerated between ignores selection",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.Enumerated, restriction.Between)
				r.EnumValues = []string{"FR"}
				return r
			},
			want: restriction.Texts{
				SQL:                restriction.Tautology,
				DisplayText:        "Amount Between ?",
				DisplayRestriction: "Amount Between ?",
			},
		},
		{
			name: "enumerated comparison ignores selection",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.Enumerated, restriction.Greater)
				r.EnumValues = []string{"FR"}
				return r
			},
			want: restriction.Texts{
				SQL:                restriction.Tautology,
				DisplayText:        "Amount > ?",
				DisplayRestriction: "Amount > ?",
			},
		},
		{
			name: "date on access is a serial number",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.DateTime, restriction.Equal)
				r.SetDate(1, time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC))
				return r
			},
			dialect: dialect.MSAccess,
			want: restriction.Texts{
				SQL:                "o.amount IN (45364.5)",
				DisplayText:        "Amount = '3/13/2024 12:00:00 PM'",
				DisplayRestriction: "Amount = '3/13/2024 12:00:00 PM'",
			},
		},
		{
			name: "relative date keyword",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.DateTime, restriction.GreaterEqual)
				r.SetKeyword(1, "Today-1")
				return r
			},
			want: restriction.Texts{
				SQL:                "o.amount >= '2024-03-12 00:00:00'",
				DisplayText:        "Amount >= '3/12/2024 12:00:00 AM'",
				DisplayRestriction: "Amount >= 'Today-1'",
			},
		},
		{
			name: "unset date resolves to now",
			r: func(t *testing.T) *restriction.Restriction {
				r := newRestriction(t, restriction.DateTime, restriction.Between)
				r.SetKeyword(1, "ThisMonth")
				return r
			},
			want: restriction.Texts{
				SQL:                "(o.amount BETWEEN '2024-03-01 00:00:00' AND '2024-03-13 15:04:05')",
				DisplayText:        "Amount Between '3/1/2024 12:00:00 AM' AND '3/13/2024 3:04:05 PM'",
				DisplayRestriction: "Amount Between 'ThisMonth' AND '3/13/2024 3:04:05 PM'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(tt.dialect)
			env.NoSQL = tt.noSQL
			r := tt.r(t)
			require.Equal(t, tt.want, r.Texts(env))
		})
	}
}

func TestBuildTranslatesLabels(t *testing.T) {
	tr, err := locale.NewCatalog(language.French, map[string]string{
		"AND":     "ET",
		"Between": "Entre",
	})
	require.NoError(t, err)

	env := testEnv(dialect.ANSI)
	env.Translator = tr
	env.Locale = locale.ForTag(language.French)

	r := newRestriction(t, restriction.Numeric, restriction.Between, "10", "20")
	texts := r.Texts(env)
	require.Equal(t, "(o.amount BETWEEN 10 AND 20)", texts.SQL)
	require.Equal(t, "Amount Entre 10 ET 20", texts.DisplayText)

	r.Operator = restriction.Equal
	require.Equal(t, "Amount = 10;20", r.Texts(env).DisplayText)
}

func TestBuildEnumDisplay(t *testing.T) {
	env := testEnv(dialect.ANSI)
	labels := map[string]string{"FR": "France", "DE": "Germany"}
	env.EnumDisplay = func(id string) string { return labels[id] }

	r := newRestriction(t, restriction.Enumerated, restriction.Equal)
	r.EnumValues = []string{"FR", "DE"}
	texts := r.Texts(env)
	require.Equal(t, "o.amount IN ('FR','DE')", texts.SQL)
	require.Equal(t, "Amount = France,Germany", texts.DisplayText)
}

func TestBuildOracleUnicodeIsASCII(t *testing.T) {
	r := newRestriction(t, restriction.UnicodeText, restriction.Equal, "Größe 東京")
	sql := r.Texts(testEnv(dialect.Oracle)).SQL
	require.Contains(t, sql, "UNISTR(")
	for i := 0; i < len(sql); i++ {
		require.Less(t, sql[i], byte(0x80), "non ASCII byte in %q", sql)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	r := newRestriction(t, restriction.DateTime, restriction.Between)
	r.SetKeyword(1, "ThisWeek")
	r.SetKeyword(2, "Today+1")
	env := testEnv(dialect.ANSI)
	require.Equal(t, r.Texts(env), r.Texts(env))
}

func TestBuildUsesSnapshot(t *testing.T) {
	r := newRestriction(t, restriction.Enumerated, restriction.Equal)
	r.EnumValues = []string{"a"}
	snapshot := r.Snapshot()

	r.AddEnumValue("b")
	r.EnumValues[0] = "z"

	require.Equal(t, "o.amount IN ('a')", restriction.Build(snapshot, testEnv(dialect.ANSI)).SQL)
	require.Equal(t, "o.amount IN ('z','b')", r.Texts(testEnv(dialect.ANSI)).SQL)
}

func TestBuildDefaults(t *testing.T) {
	r := newRestriction(t, restriction.Text, restriction.Equal, "A")
	texts := restriction.Build(r.Snapshot(), restriction.Env{Column: "c", Label: "C"})
	require.Equal(t, restriction.Texts{
		SQL:                "c IN ('A')",
		DisplayText:        "C = 'A'",
		DisplayRestriction: "C = 'A'",
	}, texts)
}

func TestBuildPartialLocale(t *testing.T) {
	env := testEnv(dialect.ANSI)
	env.Locale = locale.Locale{Tag: language.French}

	r := newRestriction(t, restriction.Text, restriction.Equal, "A", "C")
	require.Equal(t, "Amount = 'A';'C'", r.Texts(env).DisplayText)

	r = newRestriction(t, restriction.DateTime, restriction.Equal)
	r.SetDate(1, time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC))
	require.Equal(t, "Amount = '13/03/2024 12:00:00'", r.Texts(env).DisplayText)
}
