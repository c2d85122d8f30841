package videolink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"short link with params", "https://youtu.be/abc123?t=42", "https://www.youtube.com/watch?v=abc123", true},
		{"long form untouched", "https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/watch?v=abc123", true},
		{"scheme-less long form", "www.youtube.com/watch?v=abc123", "https://www.youtube.com/watch?v=abc123", true},
		{"whitespace trimmed", "  https://youtu.be/abc  ", "https://www.youtube.com/watch?v=abc", true},
		{"not youtube", "https://example.com/video", "", false},
		{"empty", "", "", false},
		{"bare short host", "https://youtu.be/", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Canonicalize(tc.in)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrNotVideoLink)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCheckerReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewChecker(2 * time.Second)
	assert.True(t, checker.Reachable(context.Background(), server.URL+"/ok"))
	assert.False(t, checker.Reachable(context.Background(), server.URL+"/gone"))
	assert.False(t, checker.Reachable(context.Background(), "http://127.0.0.1:1/nothing"))
}

type mapChecker struct {
	dead map[string]bool
}

func (c mapChecker) Reachable(ctx context.Context, link string) bool {
	return !c.dead[link]
}

func TestFilterValidPreservesOrder(t *testing.T) {
	candidates := []Candidate{
		{Title: "first", Link: "https://youtu.be/aaa"},
		{Title: "second", Link: "https://example.com/not-video"},
		{Title: "third", Link: "https://www.youtube.com/watch?v=bbb"},
		{Title: "fourth", Link: "https://youtu.be/ccc"},
	}
	checker := mapChecker{dead: map[string]bool{"https://www.youtube.com/watch?v=bbb": true}}

	valid := FilterValid(context.Background(), checker, candidates, 2)
	require.Len(t, valid, 2)
	assert.Equal(t, "first", valid[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=aaa", valid[0].Link)
	assert.Equal(t, "fourth", valid[1].Title)
}

func TestFilterValidEmptyInput(t *testing.T) {
	valid := FilterValid(context.Background(), mapChecker{}, nil, 0)
	assert.Empty(t, valid)
}
