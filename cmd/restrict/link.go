package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theplant/restriction"
	"github.com/theplant/restriction/navigation"
)

func newLinkCmd() *cobra.Command {
	var (
		id, value, date, key string
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Create a navigation token for a drill-down link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id == "" {
				return errors.New("missing --id")
			}
			link := navigation.Link{RestrictionID: id, Value: value}
			if date != "" {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				link = navigation.DateLink(id, d)
			}
			codec, err := codecFor(key)
			if err != nil {
				return err
			}
			token, err := navigation.Encode(codec, link)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&id, "id", "", "id of the target restriction")
	flags.StringVar(&value, "value", "", "value of the clicked cell")
	flags.StringVar(&date, "date", "", "date of the clicked cell, overrides --value")
	flags.StringVar(&key, "key", "", "hex AES key, base64 tokens when empty")
	return cmd
}

func newOperatorsCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "operators",
		Short: "List the operators offered for a column kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := restriction.ParseKind(kind)
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Operator", "Label", "Fields"})
			for _, op := range restriction.AllowedOperators(k) {
				fields := restriction.RelevantFields(op, k)
				names := make([]string, 0, len(fields))
				for _, f := range fields {
					names = append(names, string(f))
				}
				t.AppendRow(table.Row{op.String(), op.Label(), strings.Join(names, ", ")})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", restriction.Text.String(), "column kind")
	return cmd
}
