package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"lpg-management/internal/concurrency"
	"lpg-management/internal/learning"
	"lpg-management/internal/validation"
)

var errInvalid = errors.New("validation failed")

type checker func(raw map[string]any, groups []string) (validation.Result, error)

func checkWith[T any](v *validation.Validator[T]) checker {
	return func(raw map[string]any, groups []string) (validation.Result, error) {
		return v.Check(raw, groups...)
	}
}

func checkers(clock learning.Clock) map[string]checker {
	return map[string]checker{
		"module":              checkWith(learning.NewModuleValidator(clock)),
		"event":               checkWith(learning.NewEventValidator(clock)),
		"date-range":          checkWith(learning.NewDateRangeValidator(clock)),
		"venue":               checkWith(learning.NewVenueValidator()),
		"audience":            checkWith(learning.NewAudienceValidator()),
		"course":              checkWith(learning.NewCourseValidator()),
		"learning-provider":   checkWith(learning.NewLearningProviderValidator()),
		"cancellation-policy": checkWith(learning.NewCancellationPolicyValidator()),
		"terms":               checkWith(learning.NewTermsAndConditionsValidator()),
	}
}

func newValidateCommand(a *app) *cobra.Command {
	var (
		kind   string
		groups []string
	)

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate authored documents without publishing them",
		Long: `Validate every document in the given YAML or JSON files.

Examples:
  lpgmanage validate module.yaml
  lpgmanage validate --kind event --groups dateRanges,venue events.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.Context(), cmd.OutOrStdout(), args, kind, groups)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "module", "entity kind: "+strings.Join(kindNames(), ", "))
	cmd.Flags().StringSliceVarP(&groups, "groups", "g", nil, "rule groups to run (default: all)")
	return cmd
}

func kindNames() []string {
	names := make([]string, 0)
	for k := range checkers(nil) {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

type report struct {
	doc    document
	result validation.Result
}

func (a *app) runValidate(ctx context.Context, out io.Writer, files []string, kind string, groups []string) error {
	check, ok := checkers(a.now)[kind]
	if !ok {
		return fmt.Errorf("unknown kind %q (want one of %s)", kind, strings.Join(kindNames(), ", "))
	}
	docs, err := readAll(files)
	if err != nil {
		return err
	}

	reports, errs := concurrency.ProcessParallel(ctx, docs, concurrency.ParallelOptions{MaxWorkers: a.cfg.Workers},
		func(ctx context.Context, _ int, d document) (report, error) {
			res, err := check(d.raw, groups)
			if err != nil {
				return report{doc: d}, fmt.Errorf("%s: %w", d, err)
			}
			return report{doc: d, result: res}, nil
		})
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	invalid := 0
	for _, r := range reports {
		printReport(out, r)
		if !r.result.Valid() {
			invalid++
		}
	}
	a.log.Info("validated documents", "kind", kind, "documents", len(docs), "invalid", invalid)
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d documents", errInvalid, invalid, len(docs))
	}
	return nil
}

func printReport(out io.Writer, r report) {
	if r.result.Valid() {
		fmt.Fprintf(out, "%s: ok\n", r.doc)
		return
	}
	fmt.Fprintf(out, "%s: %d error(s)\n", r.doc, r.result.Size)
	fields := make([]string, 0, len(r.result.Fields))
	for f := range r.result.Fields {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	for _, f := range fields {
		for _, msg := range r.result.Fields[f] {
			fmt.Fprintf(out, "  %s: %s\n", f, msg)
		}
	}
}
