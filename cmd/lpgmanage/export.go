package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lpg-management/internal/export"
	"lpg-management/internal/sftpclient"
)

type exportOptions struct {
	out      string
	snapshot string
	pageSize int
	sftp     bool
}

func newExportCommand(a *app) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a CSV summary of every catalogue course",
		Long: `Fetch every course from the catalogue and write one summary row per course.

Examples:
  lpgmanage export --out courses.csv
  lpgmanage export --out courses.csv --snapshot courses.json.br --sftp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "courses.csv", "output csv path")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "also write a brotli-compressed JSON snapshot to this path")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 50, "courses per catalogue page")
	cmd.Flags().BoolVar(&opts.sftp, "sftp", false, "upload the generated CSV via SFTP")
	return cmd
}

func (a *app) runExport(ctx context.Context, opts exportOptions) error {
	courses, err := a.catalogue().ListAllCourses(ctx, opts.pageSize)
	if err != nil {
		return err
	}
	now := a.now()

	var buf bytes.Buffer
	if err := export.WriteCourseCSV(&buf, courses, now); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writeFile(opts.out, buf.Bytes()); err != nil {
		return err
	}
	a.log.Info("wrote course export", "path", opts.out, "courses", len(courses))

	if opts.snapshot != "" {
		var snap bytes.Buffer
		if err := export.WriteSnapshot(&snap, courses, now); err != nil {
			return err
		}
		if err := writeFile(opts.snapshot, snap.Bytes()); err != nil {
			return err
		}
		a.log.Info("wrote snapshot", "path", opts.snapshot, "bytes", snap.Len())
	}

	if opts.sftp {
		return sftpclient.UploadFile(ctx, sftpclient.FromConfig(a.cfg), opts.out, filepath.Base(opts.out), a.log)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
