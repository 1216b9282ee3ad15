package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/theplant/restriction"
	"github.com/theplant/restriction/navigation"
)

var jsoniterForOutput = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// dates are read in UTC with the first layout that matches
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, errors.Wrapf(firstErr, "parse date %q", s)
}

type renderOptions struct {
	id             string
	operator       string
	kind           string
	values         []string
	dates          []string
	keywords       []string
	enums          []string
	enumNumeric    bool
	operatorLabel  string
	useAsParameter bool
	column         string
	label          string
	format         string
	now            string
	token          string
	key            string
}

func newRenderCmd() *cobra.Command {
	o := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a restriction",
		Long: `Render a restriction as a WHERE-clause fragment, a display text and an
editable display text keeping relative date keywords.

Slots are filled in order: the first --value goes to slot 1, the second to slot 2.`,
		Example: `  restrict render --kind Numeric --operator Between --value 10 --value 20 --column o.amount --label Amount
  restrict render --kind DateTime --operator GreaterEqual --keyword ThisMonth-1 --column ordered_at`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := o.restriction()
			if err != nil {
				return err
			}
			env, err := getConfig(cmd.Context()).Env(o.column, o.label)
			if err != nil {
				return err
			}
			if o.now != "" {
				now, err := parseDate(o.now)
				if err != nil {
					return err
				}
				env.Now = func() time.Time { return now }
			}

			texts := r.Texts(env)
			slog.Debug("restriction rendered", "id", r.ID, "operator", r.Operator, "kind", r.Kind)

			switch o.format {
			case "json":
				return renderJSON(cmd.OutOrStdout(), r, env, texts)
			case "table":
				renderTable(cmd.OutOrStdout(), texts)
				return nil
			default:
				return errors.Errorf("unknown format %q", o.format)
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.id, "id", "", "restriction id, matched by navigation tokens")
	flags.StringVar(&o.operator, "operator", restriction.Equal.String(), "operator name")
	flags.StringVar(&o.kind, "kind", restriction.Text.String(), "column kind (Text|Numeric|DateTime|UnicodeText|Enumerated)")
	flags.StringArrayVar(&o.values, "value", nil, "value of the next slot")
	flags.StringArrayVar(&o.dates, "date", nil, "date of the next slot")
	flags.StringArrayVar(&o.keywords, "keyword", nil, "relative date keyword of the next slot, such as Today-1")
	flags.StringArrayVar(&o.enums, "enum", nil, "selected enumeration identifier")
	flags.BoolVar(&o.enumNumeric, "enum-numeric", false, "enumeration identifiers are numbers")
	flags.StringVar(&o.operatorLabel, "operator-label", "", "displayed operator text")
	flags.BoolVar(&o.useAsParameter, "use-as-parameter", false, "ValueOnly restriction does not filter")
	flags.StringVar(&o.column, "column", "", "SQL reference of the column")
	flags.StringVar(&o.label, "label", "", "display name of the column")
	flags.StringVarP(&o.format, "format", "f", "json", "output format (json|table)")
	flags.StringVar(&o.now, "now", "", "reference time of relative dates")
	flags.StringVar(&o.token, "token", "", "navigation token to apply")
	flags.StringVar(&o.key, "key", "", "hex AES key of the navigation token, base64 tokens when empty")

	_ = cmd.RegisterFlagCompletionFunc("operator", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(restriction.Operators))
		for _, op := range restriction.Operators {
			names = append(names, op.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (o *renderOptions) restriction() (*restriction.Restriction, error) {
	r := restriction.New()
	if o.id != "" {
		r.ID = o.id
	}
	var err error
	if r.Operator, err = restriction.ParseOperator(o.operator); err != nil {
		return nil, err
	}
	if r.Kind, err = restriction.ParseKind(o.kind); err != nil {
		return nil, err
	}
	r.EnumNumeric = o.enumNumeric
	r.OperatorLabel = o.operatorLabel
	r.UseAsParameter = o.useAsParameter

	for i, v := range o.values {
		if err := r.SetValue(i+1, v); err != nil {
			return nil, err
		}
	}
	for i, s := range o.dates {
		if i >= restriction.Slots {
			return nil, errors.Errorf("slot %d out of range", i+1)
		}
		if s == "" {
			continue
		}
		d, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		r.SetDate(i+1, d)
	}
	for i, kw := range o.keywords {
		if i >= restriction.Slots {
			return nil, errors.Errorf("slot %d out of range", i+1)
		}
		r.SetKeyword(i+1, kw)
	}
	for _, id := range o.enums {
		r.AddEnumValue(id)
	}

	if o.token != "" {
		codec, err := codecFor(o.key)
		if err != nil {
			return nil, err
		}
		if _, err := navigation.Apply(codec, o.token, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func codecFor(key string) (navigation.Codec, error) {
	if key == "" {
		return navigation.Base64{}, nil
	}
	b, err := hex.DecodeString(key)
	if err != nil {
		return nil, errors.Wrap(err, "decode key")
	}
	return navigation.NewGCM(b)
}

func renderJSON(w io.Writer, r *restriction.Restriction, env restriction.Env, texts restriction.Texts) error {
	b, err := jsoniterForOutput.Marshal(texts)
	if err != nil {
		return errors.Wrap(err, "marshal texts")
	}
	if b, err = sjson.SetBytes(b, "id", r.ID); err != nil {
		return errors.Wrap(err, "set id")
	}
	if arity := r.Operator.Arity(); arity > 0 && r.Kind != restriction.Enumerated {
		editorValues := make([]string, 0, arity)
		for slot := 1; slot <= arity; slot++ {
			editorValues = append(editorValues, r.EditorValue(slot, env.Locale))
		}
		if b, err = sjson.SetBytes(b, "editorValues", editorValues); err != nil {
			return errors.Wrap(err, "set editor values")
		}
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func renderTable(w io.Writer, texts restriction.Texts) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Output", "Text"})
	t.AppendRow(table.Row{"SQL", texts.SQL})
	t.AppendRow(table.Row{"Display text", texts.DisplayText})
	t.AppendRow(table.Row{"Display restriction", texts.DisplayRestriction})
	t.Render()
}
