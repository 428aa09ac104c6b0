package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lpg-management/internal/catalogue"
	"lpg-management/internal/concurrency"
	"lpg-management/internal/learning"
	coursesync "lpg-management/internal/sync"
	"lpg-management/internal/validation"
)

func newPushCommand(a *app) *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:   "push <file>...",
		Short: "Validate authored courses and create them in the catalogue",
		Long: `Every course document is validated with all rules first, modules and their
events included. Nothing is sent when any document is invalid.

With --update, courses already in the catalogue (same id, or same title) are
updated in place instead of created again.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPush(cmd.Context(), cmd.OutOrStdout(), args, update)
		},
	}

	cmd.Flags().BoolVar(&update, "update", false, "update courses the catalogue already has")
	return cmd
}

func (a *app) runPush(ctx context.Context, out io.Writer, files []string, update bool) error {
	docs, err := readAll(files)
	if err != nil {
		return err
	}

	courses := make([]*learning.Course, len(docs))
	invalid := 0
	for i, d := range docs {
		c, res, err := a.checkCourse(d)
		if err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
		if !res.Valid() {
			printReport(out, report{doc: d, result: res})
			invalid++
		}
		courses[i] = c
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d documents, nothing pushed", errInvalid, invalid, len(docs))
	}

	client := a.catalogue()
	names := make(map[*learning.Course]document, len(docs))
	for i, c := range courses {
		names[c] = docs[i]
	}

	create := courses
	if update {
		remote, err := client.ListAllCourses(ctx, 50)
		if err != nil {
			return err
		}
		var changed []*learning.Course
		create, changed = coursesync.Diff(courses, remote)
		updated, errs := concurrency.ProcessParallel(ctx, changed, concurrency.ParallelOptions{MaxWorkers: a.cfg.Workers},
			func(ctx context.Context, _ int, c *learning.Course) (bool, error) {
				if err := client.UpdateCourse(ctx, c); err != nil {
					return false, fmt.Errorf("%s: %w", names[c], err)
				}
				return true, nil
			})
		for i, ok := range updated {
			if ok {
				fmt.Fprintf(out, "%s: updated %s\n", names[changed[i]], changed[i].ID)
			}
		}
		if len(errs) > 0 {
			return errors.Join(errs...)
		}
		a.log.Info("reconciled with catalogue", "create", len(create), "update", len(changed), "unchanged", len(courses)-len(create)-len(changed))
	}

	ids, errs := concurrency.ProcessParallel(ctx, create, concurrency.ParallelOptions{MaxWorkers: a.cfg.Workers},
		func(ctx context.Context, _ int, c *learning.Course) (string, error) {
			id, err := pushCourse(ctx, client, c)
			if err != nil {
				return "", fmt.Errorf("%s: %w", names[c], err)
			}
			return id, nil
		})
	for i, id := range ids {
		if id != "" {
			fmt.Fprintf(out, "%s: created %s\n", names[create[i]], id)
		}
	}
	return errors.Join(errs...)
}

// checkCourse builds the course and folds the course, module and audience
// violations into one result.
func (a *app) checkCourse(d document) (*learning.Course, validation.Result, error) {
	c, err := learning.CourseFactory{}.Create(d.raw)
	if err != nil {
		return nil, validation.Result{}, err
	}

	violations := learning.CourseRules().Evaluate(c, nil)
	moduleRules := learning.ModuleRules(a.now)
	for _, m := range c.Modules {
		violations = append(violations, moduleRules.Evaluate(m, nil)...)
	}
	audienceRules := learning.AudienceRules()
	for _, au := range c.Audiences {
		violations = append(violations, audienceRules.Evaluate(au, nil)...)
	}
	return c, validation.Fold(violations), nil
}

// pushCourse creates the course, then each module, then the events of
// face-to-face modules, in that order.
func pushCourse(ctx context.Context, client *catalogue.Client, c *learning.Course) (string, error) {
	shell := *c
	shell.Modules = []learning.Module{}
	courseID, err := client.CreateCourse(ctx, &shell)
	if err != nil {
		return "", err
	}

	for _, m := range c.Modules {
		var events []*learning.Event
		if f2f, ok := m.(*learning.FaceToFaceModule); ok {
			events = f2f.Events
			bare := *f2f
			bare.Events = []*learning.Event{}
			m = &bare
		}
		moduleID, err := client.CreateModule(ctx, courseID, m)
		if err != nil {
			return courseID, err
		}
		for _, e := range events {
			if _, err := client.CreateEvent(ctx, courseID, moduleID, e); err != nil {
				return courseID, err
			}
		}
	}
	return courseID, nil
}
