package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpg-management/internal/export"
)

var fixedNow = func() time.Time { return time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC) }

const courseYAML = `
title: Budgets
shortDescription: Managing a team budget
description: Plan, track and report spend.
status: Draft
modules:
  - type: video
    title: Intro
    description: Why budgets matter
    location: https://video.example/intro
    cost: 25.25
    duration: PT1H
  - type: face-to-face
    title: Workshop
    description: A day in a room
    productCode: BUD-1
    cost: "50"
    events:
      - dateRanges:
          - {date: "2030-09-01", startTime: "09:00", endTime: "17:00"}
        venue: {location: Leeds, address: 1 Street, capacity: 20, minCapacity: 5}
audiences:
  - name: Analysts
    grades: [G6, G7]
    areasOfWork: [Finance]
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_MODE", "production")
	a := &app{now: fixedNow, logMode: "production"}
	root := newRootCommand(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDecodeDocumentsMultiDoc(t *testing.T) {
	docs, err := decodeDocuments("mods.yaml", strings.NewReader("type: video\n---\n---\ntype: link\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "video", docs[0].raw["type"])
	assert.Equal(t, "mods.yaml#2", docs[1].String())
}

func TestDecodeDocumentsRejectsList(t *testing.T) {
	_, err := decodeDocuments("bad.yaml", strings.NewReader("- a\n- b\n"))
	assert.Error(t, err)
}

func TestValidateReportsFieldMessages(t *testing.T) {
	file := writeTemp(t, "modules.yaml", `type: video
title: Intro
description: d
location: https://video.example
---
type: link
url: not a url
`)

	out, err := run(t, "validate", file)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "modules.yaml#0: ok")
	assert.Contains(t, out, "modules.yaml#1: 3 error(s)")
	assert.Contains(t, out, "url: validation.module.url.invalid")
	assert.Contains(t, out, "title: validation.module.title.empty")
}

func TestValidateGroups(t *testing.T) {
	file := writeTemp(t, "module.yaml", "type: link\nurl: not a url\n")

	out, err := run(t, "validate", "--groups", "title", file)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "1 error(s)")
	assert.NotContains(t, out, "url:")
}

func TestValidateUnknownKindAndType(t *testing.T) {
	file := writeTemp(t, "module.yaml", "type: podcast\n")

	_, err := run(t, "validate", "--kind", "lesson", file)
	assert.ErrorContains(t, err, `unknown kind "lesson"`)

	_, err = run(t, "validate", file)
	assert.ErrorContains(t, err, "unknown module type")
}

func TestSummary(t *testing.T) {
	file := writeTemp(t, "course.yaml", courseYAML)

	out, err := run(t, "summary", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Budgets (blended, Draft)")
	assert.Contains(t, out, "cost:           75.25")
	assert.Contains(t, out, "duration:       1 hour")
	assert.Contains(t, out, "next available: 1 September 2030")
	assert.Contains(t, out, "grades:         G6,G7")
}

type fakeCatalogue struct {
	mu    sync.Mutex
	paths []string
	n     int
}

func (f *fakeCatalogue) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.paths = append(f.paths, r.Method+" "+r.URL.Path)

		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `{"results": [{"id": "c1", "title": "Budgets", "status": "Published",
				"modules": [{"type": "link", "title": "Read", "url": "https://x", "cost": 5}]}],
				"page": 0, "size": 50, "totalResults": 1}`)
			return
		}
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.n++
		w.Header().Set("Location", r.URL.Path+"/id"+string(rune('0'+f.n)))
		w.WriteHeader(http.StatusCreated)
	}
}

func TestPushCreatesCourseModulesAndEvents(t *testing.T) {
	fake := &fakeCatalogue{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()
	t.Setenv("CATALOGUE_BASE_URL", srv.URL)
	t.Setenv("CATALOGUE_TOKEN", "token")

	out, err := run(t, "push", writeTemp(t, "course.yaml", courseYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "created id1")
	assert.Equal(t, []string{
		"POST /courses",
		"POST /courses/id1/modules",
		"POST /courses/id1/modules",
		"POST /courses/id1/modules/id3/events",
	}, fake.paths)
}

func TestPushSendsNothingWhenInvalid(t *testing.T) {
	fake := &fakeCatalogue{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()
	t.Setenv("CATALOGUE_BASE_URL", srv.URL)
	t.Setenv("CATALOGUE_TOKEN", "token")

	past := strings.Replace(courseYAML, "2030-09-01", "2030-01-01", 1)
	out, err := run(t, "push", writeTemp(t, "course.yaml", past))
	assert.True(t, errors.Is(err, errInvalid))
	assert.Contains(t, out, "date: validation.event.date.past")
	assert.Empty(t, fake.paths)
}

func TestExportWritesCSVAndSnapshot(t *testing.T) {
	fake := &fakeCatalogue{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()
	t.Setenv("CATALOGUE_BASE_URL", srv.URL)
	t.Setenv("CATALOGUE_TOKEN", "token")

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out", "courses.csv")
	snapPath := filepath.Join(dir, "courses.json.br")

	_, err := run(t, "export", "--out", csvPath, "--snapshot", snapPath)
	require.NoError(t, err)

	b, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "c1,Budgets,link,Published,5,0 minutes,,,,Read\r\n")

	f, err := os.Open(snapPath)
	require.NoError(t, err)
	defer f.Close()
	_, courses, err := export.ReadSnapshot(f)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "c1", courses[0].ID)
}

func TestPushUpdateReconcilesWithCatalogue(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"results": [{"id": "c7", "title": "Budgets", "description": "Old"}], "totalResults": 1}`)
		case http.MethodPut:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()
	t.Setenv("CATALOGUE_BASE_URL", srv.URL)
	t.Setenv("CATALOGUE_TOKEN", "token")

	out, err := run(t, "push", "--update", writeTemp(t, "course.yaml", courseYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "course.yaml#0: updated c7")
	assert.Equal(t, []string{"GET /courses", "PUT /courses/c7"}, calls)
}

func TestPushUpdateKeepsPastScheduledEvents(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"results": [{"id": "c7", "title": "Budgets", "description": "Old"}], "totalResults": 1}`)
		case http.MethodPut:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()
	t.Setenv("CATALOGUE_BASE_URL", srv.URL)
	t.Setenv("CATALOGUE_TOKEN", "token")

	held := strings.Replace(courseYAML, "      - dateRanges:\n          - {date: \"2030-09-01\"", "      - id: e1\n        dateRanges:\n          - {date: \"2020-02-01\"", 1)
	require.NotEqual(t, courseYAML, held)

	out, err := run(t, "push", "--update", writeTemp(t, "course.yaml", held))
	require.NoError(t, err)
	assert.Contains(t, out, "course.yaml#0: updated c7")
	assert.Equal(t, []string{"GET /courses", "PUT /courses/c7"}, calls)
}
