// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/taxchat-tui/internal/calc"
	"github.com/jeranaias/taxchat-tui/internal/config"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/util"
)

// calcFlags mirrors the calculator fields. Unset flags take the configured
// calculator defaults.
type calcFlags struct {
	income string
	regime string
	d80c   string
	d80d   string
	other  string
	json   bool
}

func newCalcCommand(e *env) *cobra.Command {
	f := &calcFlags{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run one quick tax estimate",
		Example: `  taxchat calc --income 1200000 --regime new
  taxchat calc --income 900000 --regime old --d80c 150000 --d80d 25000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := f.form(cmd, formFromConfig(config.Global()))
			req, err := form.Request()
			if err != nil {
				return fmt.Errorf("annual income must be a non-negative number and regime must be new or old")
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			res, err := e.client().Calc(ctx, req)
			if err != nil {
				e.log.Error().Err(err).Str("endpoint", taxapi.CalcPath).Msg("calculation failed")
				if f.json {
					_ = NewJSONErrorResponseStr("calc", calc.FailureText).Print(cmd.OutOrStdout())
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render(calc.FailureText))
				}
				return errReported
			}

			if f.json {
				return NewJSONResponse("calc", res).Print(cmd.OutOrStdout())
			}
			printResult(cmd.OutOrStdout(), *res)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.income, "income", "", "annual income in rupees")
	flags.StringVar(&f.regime, "regime", "", "tax regime: new or old")
	flags.StringVar(&f.d80c, "d80c", "", "80C deductions (old regime)")
	flags.StringVar(&f.d80d, "d80d", "", "80D deductions (old regime)")
	flags.StringVar(&f.other, "other", "", "other deductions (old regime)")
	flags.BoolVar(&f.json, "json", false, "print the result as JSON")
	return cmd
}

// form overlays the flags the user set on the defaults.
func (f *calcFlags) form(cmd *cobra.Command, defaults calc.Form) calc.Form {
	form := defaults
	set := func(name, value string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst = value
		}
	}
	set("income", f.income, &form.Income)
	set("d80c", f.d80c, &form.Deductions80C)
	set("d80d", f.d80d, &form.Deductions80D)
	set("other", f.other, &form.OtherDeductions)
	if cmd.Flags().Changed("regime") {
		form.Regime = taxapi.Regime(strings.ToLower(strings.TrimSpace(f.regime)))
	}
	return form
}

// resultLabelWidth is the column the result values start at.
const resultLabelWidth = 18

// printResult prints the result rows and the summary sentence.
func printResult(w io.Writer, r taxapi.CalcResult) {
	fmt.Fprintln(w, TitleStyle.Render("Quick Tax Estimate"))
	lines := calc.ResultLines(r)
	for i, l := range lines {
		value := ValueStyle
		if i == len(lines)-1 {
			value = TotalStyle
		}
		fmt.Fprintln(w, LabelStyle.Render(util.PadRight(l.Label+":", resultLabelWidth))+value.Render(l.Value))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, DimStyle.Render(calc.Summary(r)))
}
