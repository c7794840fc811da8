// Package selfupdate replaces the running binary with the latest GitHub
// release after verifying its checksum.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

const (
	defaultAPIBase      = "https://api.github.com"
	defaultDownloadBase = "https://github.com"
)

// Checker finds and installs releases of one repository.
type Checker struct {
	client       *http.Client
	apiBase      string
	downloadBase string
	owner, repo  string
	execPath     func() (string, error)
	logger       logrus.FieldLogger
}

type Option func(*Checker)

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(url string) Option { return func(c *Checker) { c.apiBase = url } }

// WithDownloadBaseURL overrides the host release assets are fetched from.
func WithDownloadBaseURL(url string) Option { return func(c *Checker) { c.downloadBase = url } }

func WithRepository(owner, repo string) Option {
	return func(c *Checker) { c.owner, c.repo = owner, repo }
}

func WithTimeout(d time.Duration) Option { return func(c *Checker) { c.client.Timeout = d } }

func WithLogger(l logrus.FieldLogger) Option { return func(c *Checker) { c.logger = l } }

func withExecPath(fn func() (string, error)) Option { return func(c *Checker) { c.execPath = fn } }

func NewChecker(opts ...Option) *Checker {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	c := &Checker{
		client:       &http.Client{Timeout: 30 * time.Second},
		apiBase:      defaultAPIBase,
		downloadBase: defaultDownloadBase,
		owner:        "ranilearn",
		repo:         "rani",
		execPath:     os.Executable,
		logger:       discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Release is a published version.
type Release struct {
	Tag string `json:"tag_name"`
	URL string `json:"html_url"`
}

// Check is the outcome of comparing the running version to the latest
// release.
type Check struct {
	Current         string
	Latest          Release
	UpdateAvailable bool
}

// IsDevBuild reports whether version is not a release version.
func IsDevBuild(version string) bool {
	return !semver.IsValid(canonical(version))
}

func canonical(version string) string {
	if version != "" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}

// Check asks GitHub for the latest release. A development build never
// has an update available.
func (c *Checker) Check(ctx context.Context, current string) (*Check, error) {
	var latest Release
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.apiBase, "/"), c.owner, c.repo)
	body, err := c.get(ctx, url, "application/vnd.github+json")
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	if err := json.Unmarshal(body, &latest); err != nil {
		return nil, fmt.Errorf("decode latest release: %w", err)
	}
	if !semver.IsValid(canonical(latest.Tag)) {
		return nil, fmt.Errorf("latest release has invalid tag %q", latest.Tag)
	}

	res := &Check{Current: current, Latest: latest}
	if !IsDevBuild(current) {
		res.UpdateAvailable = semver.Compare(canonical(latest.Tag), canonical(current)) > 0
	}
	c.logger.WithFields(logrus.Fields{
		"current": current,
		"latest":  latest.Tag,
		"update":  res.UpdateAvailable,
	}).Debug("checked for update")
	return res, nil
}

func (c *Checker) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
