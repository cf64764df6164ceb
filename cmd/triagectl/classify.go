package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linnemanlabs/voxa/internal/triage"
)

func classifyCmd() *cobra.Command {
	var (
		symptoms  []string
		text      string
		systolic  float64
		diastolic float64
		temp      float64
		pain      int
		strategy  string
		asJSON    bool
	)

	c := &cobra.Command{
		Use:   "classify",
		Short: "Classify one submission into RED, YELLOW or GREEN",
		Example: `  triagectl classify --text "dor no peito forte"
  triagectl classify --symptom "Convulsão" --temp 39.8 --pain 6 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// unset flags are absent vitals, not zero readings
			var vitals triage.Vitals
			if cmd.Flags().Changed("systolic") {
				vitals.Systolic = &systolic
			}
			if cmd.Flags().Changed("diastolic") {
				vitals.Diastolic = &diastolic
			}
			if cmd.Flags().Changed("temp") {
				vitals.TempC = &temp
			}

			in, err := triage.NewInput(symptoms, text, vitals, pain)
			if err != nil {
				return err
			}

			classifier, err := triage.NewClassifier(strategy)
			if err != nil {
				return err
			}

			svc := triage.NewService(classifier, nil, nil, nil, triage.TierRed)
			res, err := svc.Classify(cmd.Context(), in)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}

	c.Flags().StringArrayVarP(&symptoms, "symptom", "s", nil, "Selected catalog symptom (repeatable)")
	c.Flags().StringVarP(&text, "text", "t", "", "Free-text symptoms separated by commas, semicolons or newlines")
	c.Flags().Float64Var(&systolic, "systolic", 0, "Systolic blood pressure (mmHg)")
	c.Flags().Float64Var(&diastolic, "diastolic", 0, "Diastolic blood pressure (mmHg)")
	c.Flags().Float64Var(&temp, "temp", 0, "Body temperature (°C)")
	c.Flags().IntVarP(&pain, "pain", "p", 0, "Pain score (0..10)")
	c.Flags().StringVar(&strategy, "strategy", triage.StrategyCascade, "Classification strategy: cascade|score")
	c.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return c
}

func printJSON(w io.Writer, res *triage.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func printResult(w io.Writer, res *triage.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", res.Label, res.Tier)
	for _, r := range res.Reasons {
		fmt.Fprintf(&b, "  - %s\n", r)
	}
	if len(res.FreeText) > 0 {
		fmt.Fprintf(&b, "Itens: %s\n", strings.Join(res.FreeText, "; "))
	}
	fmt.Fprintf(&b, "id=%s strategy=%s\n", res.ID, res.Strategy)
	_, err := io.WriteString(w, b.String())
	return err
}
