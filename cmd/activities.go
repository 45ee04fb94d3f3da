// Package cmd — activities command.
// Extracts every graded activity page of a course, found via the gradebook
// setup page, into one HTML document.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/core/output"
	"github.com/spf13/cobra"
)

const firstActivityOutput = "first_activity_page.html"

var flagFirst bool

var activitiesCmd = &cobra.Command{
	Use:   "activities [course-id]",
	Short: "Extract activity pages from Moodle",
	Long: `Activities logs in to Moodle, lists the course's activities from the
gradebook setup page and collects each activity's NextGen4 TU-activity-page
content. With --first, only the first activity page is saved, unmodified.

Examples:
  coursebuild activities 33234
  coursebuild activities 33234 --first`,
	Args: cobra.MaximumNArgs(1),
	RunE: runActivities,
}

func init() {
	rootCmd.AddCommand(activitiesCmd)

	activitiesCmd.Flags().BoolVar(&flagFirst, "first", false, "Save only the raw HTML of the first activity page")
	addCredentialFlags(activitiesCmd)
	addFormatFlags(activitiesCmd)
}

func runActivities(cmd *cobra.Command, args []string) error {
	if err := validateFormatFlags(); err != nil {
		return err
	}
	course, err := courseID(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := loginClient(ctx)
	if err != nil {
		return err
	}

	if flagFirst {
		link, page, err := client.FirstActivity(ctx, course)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "First activity: %s\n", link)
		return writeRaw(firstActivityOutput, []byte(page))
	}

	res, err := client.ExtractActivities(ctx, course)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Found %d activities\n", len(res.Activities))
	for i, a := range res.Activities {
		fmt.Fprintf(os.Stdout, "[%d/%d] %s\n", i+1, len(res.Activities), a.Title)
	}
	if res.Failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d activities had no content\n", res.Failed, len(res.Activities))
	}

	return writeRendered(output.CourseStem(course, "activities"), res.HTML, core.DocumentMeta{
		Title:  fmt.Sprintf("Extracted Activities for Course %s", course),
		Source: client.GradebookURL(course),
	})
}
