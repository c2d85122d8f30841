// Package videolink validates and normalizes YouTube tutorial links before
// they are stored as student recommendations.
package videolink

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Candidate describes one externally supplied video suggestion.
type Candidate struct {
	ChannelName string `json:"channel_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Language    string `json:"language"`
	Subject     string `json:"subject"`
}

// ErrNotVideoLink marks links that do not point at a known video host.
var ErrNotVideoLink = errors.New("not a recognized video link")

const canonicalWatchURL = "https://www.youtube.com/watch?v="

// Canonicalize rewrites a raw link to the canonical long-form watch URL.
// Short-form youtu.be links are expanded, scheme-less youtube.com/watch links
// get https prepended, and anything that is not a YouTube link is rejected.
func Canonicalize(raw string) (string, error) {
	link := strings.TrimSpace(raw)
	if link == "" {
		return "", ErrNotVideoLink
	}
	if !strings.Contains(link, "youtube.com") && !strings.Contains(link, "youtu.be") {
		return "", ErrNotVideoLink
	}

	if idx := strings.Index(link, "youtu.be/"); idx >= 0 {
		id := link[idx+len("youtu.be/"):]
		if cut := strings.IndexAny(id, "?&/"); cut >= 0 {
			id = id[:cut]
		}
		if id == "" {
			return "", ErrNotVideoLink
		}
		link = canonicalWatchURL + id
	} else if strings.Contains(link, "youtube.com/watch") && !strings.HasPrefix(link, "http") {
		link = "https://" + link
	}

	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return "", ErrNotVideoLink
	}
	return link, nil
}

// ReachabilityChecker reports whether a link answers an existence probe.
type ReachabilityChecker interface {
	Reachable(ctx context.Context, link string) bool
}

// Checker probes links with a lightweight HEAD request.
type Checker struct {
	client  *http.Client
	timeout time.Duration
}

// NewChecker builds a Checker with the given per-probe timeout.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Reachable issues a HEAD request and treats any failure as unreachable.
func (c *Checker) Reachable(ctx context.Context, link string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// FilterValid canonicalizes each candidate link and keeps only reachable ones.
// Probes run concurrently up to the given bound; the output preserves the
// input order and individual failures never fail the batch.
func FilterValid(ctx context.Context, checker ReachabilityChecker, candidates []Candidate, concurrency int) []Candidate {
	if concurrency <= 0 {
		concurrency = 8
	}

	kept := make([]*Candidate, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for i, cand := range candidates {
		link, err := Canonicalize(cand.Link)
		if err != nil {
			continue
		}
		i, cand := i, cand
		cand.Link = link
		g.Go(func() error {
			if checker.Reachable(ctx, cand.Link) {
				kept[i] = &cand
			}
			return nil
		})
	}
	_ = g.Wait()

	valid := make([]Candidate, 0, len(candidates))
	for _, c := range kept {
		if c != nil {
			valid = append(valid, *c)
		}
	}
	return valid
}
