package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lpg-management/internal/dates"
	"lpg-management/internal/learning"
)

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file>",
		Short: "Print the derived catalogue values of authored courses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSummary(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) runSummary(out io.Writer, file string) error {
	docs, err := readDocuments(file)
	if err != nil {
		return err
	}
	for _, d := range docs {
		c, err := learning.CourseFactory{}.Create(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
		printSummary(out, c, a.now)
	}
	return nil
}

func printSummary(out io.Writer, c *learning.Course, clock learning.Clock) {
	next := "none"
	if date, ok := c.NextAvailableDate(clock()); ok {
		next = dates.ConvertDate(date)
	}
	fmt.Fprintf(out, "%s (%s, %s)\n", c.Title, c.Type(), c.Status)
	fmt.Fprintf(out, "  cost:           %g\n", c.Cost())
	fmt.Fprintf(out, "  duration:       %s\n", c.FormattedDuration())
	fmt.Fprintf(out, "  next available: %s\n", next)
	fmt.Fprintf(out, "  grades:         %s\n", c.Grades())
	fmt.Fprintf(out, "  areas of work:  %s\n", c.AreasOfWork())
	for _, m := range c.Modules {
		b := m.Base()
		fmt.Fprintf(out, "  - [%s] %s (%s)\n", b.Type, b.Title, dates.FormatDuration(b.Duration))
	}
}
