// Package cmd — merge command.
// Fills a Moodle template's [content<Slot><N>] placeholders with the week
// sections of a formatted course plan.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/core/slots"
	"github.com/spf13/cobra"
)

const mergeOutputStem = "processed_course"

var flagStrict bool

var mergeCmd = &cobra.Command{
	Use:   "merge <plan.html> <template.html>",
	Short: "Merge a formatted course plan into a Moodle template",
	Long: `Merge extracts each week of a formatted plan (h1 "Week N:" headers with
Overview, Learning Goals, Key Topics, Resources, Significance and What's Next?
sections) and substitutes them into the template placeholders.

Examples:
  coursebuild merge plan.html template.html
  coursebuild merge plan.html template.html --strict --pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail when placeholders stay unfilled or weeks go unused")
	addFormatFlags(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if err := validateFormatFlags(); err != nil {
		return err
	}

	plan, err := readInput(args[0])
	if err != nil {
		return err
	}
	template, err := readInput(args[1])
	if err != nil {
		return err
	}

	var filler core.SlotFiller = slots.LenientFiller{}
	if flagStrict {
		filler = slots.StrictFiller{}
	}

	res, err := slots.Merge(plan, template, filler)
	if err != nil {
		if res != nil && (errors.Is(err, slots.ErrUnfilledSlots) || errors.Is(err, slots.ErrUnusedWeeks)) {
			log.Error("strict merge failed", "weeks", len(res.Weeks), "unfilled", res.Unfilled)
		}
		return fmt.Errorf("merge: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Extracted %d weeks\n", len(res.Weeks))
	if len(res.Unfilled) > 0 {
		fmt.Fprintf(os.Stderr, "  ! %d placeholders left unfilled: %s\n", len(res.Unfilled), strings.Join(res.Unfilled, ", "))
	}
	log.Info("merged course", "weeks", len(res.Weeks), "unfilled", len(res.Unfilled))

	return writeRendered(mergeOutputStem, res.HTML, core.DocumentMeta{
		Title:  "Processed Course",
		Source: args[0],
	})
}
