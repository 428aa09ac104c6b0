package catalogue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"lpg-management/internal/httpx"
	"lpg-management/internal/learning"
	"lpg-management/internal/logger"
)

const (
	contentTypeJSON = "application/json"
	acceptJSON      = contentTypeJSON
)

var ErrNotFound = errors.New("catalogue: not found")

type Client struct {
	BaseURL     string
	BearerToken string
	Doer        *httpx.Doer
	Log         *logger.Logger
}

func New(baseURL, token string, timeout time.Duration, policy httpx.RetryPolicy, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	tr := &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	hc := &http.Client{Timeout: timeout, Transport: tr}
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		BearerToken: token,
		Doer:        httpx.NewDoer(hc, policy, log),
		Log:         log,
	}
}

// Page is one page of the course listing.
type Page struct {
	Courses      []*learning.Course
	Page         int
	Size         int
	TotalResults int
}

type listResponse struct {
	Results      []map[string]any `json:"results"`
	Page         int              `json:"page"`
	Size         int              `json:"size"`
	TotalResults int              `json:"totalResults"`
}

func (c *Client) GetCourse(ctx context.Context, id string) (*learning.Course, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := c.getJSON(ctx, c.url("courses", id), &raw); err != nil {
		return nil, fmt.Errorf("catalogue: get course %s: %w", id, err)
	}
	course, err := learning.CourseFactory{}.Create(raw)
	if err != nil {
		return nil, fmt.Errorf("catalogue: get course %s: %w", id, err)
	}
	return course, nil
}

func (c *Client) ListCourses(ctx context.Context, page, size int) (*Page, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	u, err := url.Parse(c.url("courses"))
	if err != nil {
		return nil, fmt.Errorf("catalogue: invalid base url: %w", err)
	}
	q := u.Query()
	if page >= 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	u.RawQuery = q.Encode()

	var out listResponse
	if err := c.getJSON(ctx, u.String(), &out); err != nil {
		return nil, fmt.Errorf("catalogue: list courses failed: %w", err)
	}

	p := &Page{Page: out.Page, Size: out.Size, TotalResults: out.TotalResults, Courses: make([]*learning.Course, 0, len(out.Results))}
	for i, raw := range out.Results {
		course, err := learning.CourseFactory{}.Create(raw)
		if err != nil {
			return nil, fmt.Errorf("catalogue: list courses: result %d: %w", i, err)
		}
		p.Courses = append(p.Courses, course)
	}
	return p, nil
}

// ListAllCourses walks every page of the listing.
func (c *Client) ListAllCourses(ctx context.Context, size int) ([]*learning.Course, error) {
	if size <= 0 {
		size = 50
	}
	var all []*learning.Course
	for page := 0; ; page++ {
		p, err := c.ListCourses(ctx, page, size)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Courses...)
		if len(p.Courses) == 0 || len(all) >= p.TotalResults {
			return all, nil
		}
	}
}

// CreateCourse posts the course and returns the id the catalogue assigned.
func (c *Client) CreateCourse(ctx context.Context, course *learning.Course) (string, error) {
	id, err := c.create(ctx, c.url("courses"), course)
	if err != nil {
		return "", fmt.Errorf("catalogue: create course failed: %w", err)
	}
	c.Log.Info("course created", "id", id, "title", course.Title)
	return id, nil
}

func (c *Client) UpdateCourse(ctx context.Context, course *learning.Course) error {
	if course.ID == "" {
		return errors.New("catalogue: update course: missing id")
	}
	if err := c.put(ctx, c.url("courses", course.ID), course); err != nil {
		return fmt.Errorf("catalogue: update course %s: %w", course.ID, err)
	}
	return nil
}

func (c *Client) CreateModule(ctx context.Context, courseID string, m learning.Module) (string, error) {
	id, err := c.create(ctx, c.url("courses", courseID, "modules"), m)
	if err != nil {
		return "", fmt.Errorf("catalogue: create module in %s: %w", courseID, err)
	}
	c.Log.Info("module created", "course", courseID, "id", id, "type", m.Base().Type)
	return id, nil
}

func (c *Client) UpdateModule(ctx context.Context, courseID string, m learning.Module) error {
	id := m.Base().ID
	if id == "" {
		return errors.New("catalogue: update module: missing id")
	}
	if err := c.put(ctx, c.url("courses", courseID, "modules", id), m); err != nil {
		return fmt.Errorf("catalogue: update module %s: %w", id, err)
	}
	return nil
}

func (c *Client) CreateEvent(ctx context.Context, courseID, moduleID string, e *learning.Event) (string, error) {
	id, err := c.create(ctx, c.url("courses", courseID, "modules", moduleID, "events"), e)
	if err != nil {
		return "", fmt.Errorf("catalogue: create event in %s/%s: %w", courseID, moduleID, err)
	}
	return id, nil
}

func (c *Client) ready() error {
	if c.BearerToken == "" {
		return errors.New("catalogue: missing bearer token (set CATALOGUE_TOKEN)")
	}
	return nil
}

func (c *Client) url(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.BaseURL + "/" + path.Join(escaped...)
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	_, err := c.Doer.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		c.headers(r)
		return r, nil
	}, out)
	return notFound(err)
}

// create POSTs body with a fresh Idempotency-Key so retries cannot duplicate it.
// The new id is taken from the Location header, falling back to an "id" field.
func (c *Client) create(ctx context.Context, u string, body any) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	key := uuid.NewString()

	var out map[string]any
	resp, err := c.Doer.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		c.headers(r)
		r.Header.Set("Content-Type", contentTypeJSON)
		r.Header.Set(httpx.IdempotencyKeyHeader, key)
		return r, nil
	}, &out)
	if err != nil {
		return "", notFound(err)
	}

	if loc := resp.Header.Get("Location"); loc != "" {
		return path.Base(strings.TrimRight(loc, "/")), nil
	}
	if id, ok := out["id"]; ok {
		return fmt.Sprint(id), nil
	}
	return "", errors.New("created but no id returned")
}

func (c *Client) put(ctx context.Context, u string, body any) error {
	if err := c.ready(); err != nil {
		return err
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	_, _, err = c.Doer.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		c.headers(r)
		r.Header.Set("Content-Type", contentTypeJSON)
		return r, nil
	})
	return notFound(err)
}

func (c *Client) headers(r *http.Request) {
	r.Header.Set("Accept", acceptJSON)
	r.Header.Set("Authorization", "Bearer "+c.BearerToken)
}

func notFound(err error) error {
	var herr *httpx.HTTPError
	if errors.As(err, &herr) && herr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, herr.URL)
	}
	return err
}
