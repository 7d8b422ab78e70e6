package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/tokens"
	pkgio "github.com/certifyme/certrender/pkg/io"
	"github.com/certifyme/certrender/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints the canonical
// record a template and record merge into.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		recordPath string
		asJSON     bool
		today      string
		assignID   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [template-or-bundle]",
		Short: "Print the merged certificate record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(args[0], recordPath)
			if err != nil {
				return err
			}
			if opts.Today, err = parseToday(today); err != nil {
				return err
			}
			opts.AssignID = assignID
			c.applyConfig(&opts)

			runner := pipeline.NewRunner(nil, nil, loggerFromContext(cmd.Context()))
			defer runner.Close()

			rec, err := runner.Record(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if asJSON {
				return pkgio.WriteRecord(rec, os.Stdout)
			}

			printKeyValue("Layout", rec.Kind.Title())
			printKeyValue("Title", rec.Title)
			printKeyValue("Recipient", rec.RecipientName)
			printKeyValue("Course", rec.CourseTitle)
			printKeyValue("Issued", rec.IssueDateFormatted)
			printKeyValue("Issuer", rec.IssuerName)
			printKeyValue("ID", rec.DisplayID())
			if rec.Amount != "" {
				printKeyValue("Amount", rec.Amount)
			}
			for _, f := range rec.CustomFields {
				printKeyValue(f.Key, f.Value)
			}
			if used, unfilled := tokenReport(opts.Template.LayoutData, rec.Tokens); len(used) > 0 {
				printKeyValue("Tokens", strings.Join(used, ", "))
				if len(unfilled) > 0 {
					printWarning("Unfilled tokens: %s", strings.Join(unfilled, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recordPath, "record", "", "record file (JSON or YAML)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	cmd.Flags().StringVar(&today, "today", "", "reference date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&assignID, "assign-id", false, "assign a verification id when the record has none")

	return cmd
}

// tokenReport lists the tokens used by the free-form text elements and the
// ones the record leaves empty.
func tokenReport(layout *certificate.LayoutData, fields tokens.Fields) (used, unfilled []string) {
	if layout == nil {
		return nil, nil
	}
	seenUsed := map[string]bool{}
	seenUnfilled := map[string]bool{}
	for _, el := range layout.Elements {
		for _, name := range tokens.Names(el.Text) {
			if !seenUsed[name] {
				seenUsed[name] = true
				used = append(used, name)
			}
		}
		for _, name := range tokens.Unresolved(el.Text, fields) {
			if !seenUnfilled[name] {
				seenUnfilled[name] = true
				unfilled = append(unfilled, name)
			}
		}
	}
	return used, unfilled
}
