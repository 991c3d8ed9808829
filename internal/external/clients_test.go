package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestGitHubClient_Stats(t *testing.T) {
	desc := "a tool"
	repos := []map[string]any{
		{"name": "r1", "stargazers_count": 1, "forks_count": 1, "language": "Go", "html_url": "https://github.com/octo/r1", "description": desc},
		{"name": "r2", "stargazers_count": 50, "forks_count": 3, "language": "Python", "html_url": "https://github.com/octo/r2", "description": nil},
		{"name": "r3", "stargazers_count": 7, "forks_count": 0, "language": nil, "html_url": "https://github.com/octo/r3"},
		{"name": "r4", "stargazers_count": 7, "forks_count": 2, "language": "Go", "html_url": "https://github.com/octo/r4"},
		{"name": "r5", "stargazers_count": 0, "forks_count": 0, "language": "Go", "html_url": "https://github.com/octo/r5"},
		{"name": "r6", "stargazers_count": 3, "forks_count": 0, "language": "Rust", "html_url": "https://github.com/octo/r6"},
		{"name": "r7", "stargazers_count": 9, "forks_count": 1, "language": "Python", "html_url": "https://github.com/octo/r7"},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/users/octo":
			writeJSON(t, w, map[string]int{"public_repos": 7, "followers": 12, "following": 3})
		case "/users/octo/repos":
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			assert.Equal(t, "updated", r.URL.Query().Get("sort"))
			writeJSON(t, w, repos)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewGitHubClient(server.URL+"/", "octo", time.Second)
	stats, err := client.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, stats.PublicRepos)
	assert.Equal(t, 12, stats.Followers)
	assert.Equal(t, 3, stats.Following)
	assert.Equal(t, 77, stats.TotalStars)
	assert.Equal(t, 7, stats.TotalForks)
	assert.Zero(t, stats.TotalCommits)
	assert.Equal(t, map[string]int{"Go": 3, "Python": 2, "Rust": 1}, stats.Languages)

	require.Len(t, stats.TopRepos, 6)
	names := make([]string, 0, len(stats.TopRepos))
	for _, r := range stats.TopRepos {
		names = append(names, r.Name)
	}
	// Ties keep API order.
	assert.Equal(t, []string{"r2", "r7", "r3", "r4", "r6", "r1"}, names)
	assert.Equal(t, "", stats.TopRepos[0].Description)
	assert.Equal(t, "Unknown", stats.TopRepos[2].Language)
	assert.Equal(t, "a tool", stats.TopRepos[5].Description)
}

func TestGitHubClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewGitHubClient(server.URL, "octo", time.Second).Stats(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestGitHubClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	_, err := NewGitHubClient(server.URL, "octo", 50*time.Millisecond).Stats(context.Background())

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCredlyClient_Badges(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/someone/badges.json", r.URL.Path)
		fmt.Fprint(w, `{"data":[
			{"id":"b1","issued_at":"2024-01-02","badge_url":"https://creds.example/b1",
			 "badge_template":{"name":"Cloud Practitioner","image_url":"https://img/b1.png","issuer":{"name":"AWS"}}},
			{"id":"b2","issued_at":"2023-05-06"}
		]}`)
	}))
	defer server.Close()

	badges, err := NewCredlyClient(server.URL, "someone", time.Second).Badges(context.Background())
	require.NoError(t, err)
	require.Len(t, badges, 2)

	assert.Equal(t, Badge{
		ID:         "b1",
		Name:       "Cloud Practitioner",
		ImageURL:   "https://img/b1.png",
		IssuerName: "AWS",
		IssuedAt:   "2024-01-02",
		BadgeURL:   "https://creds.example/b1",
	}, badges[0])

	assert.Equal(t, "Unknown Badge", badges[1].Name)
	assert.Equal(t, "Unknown Issuer", badges[1].IssuerName)
	assert.Equal(t, server.URL+"/badges/b2", badges[1].BadgeURL)
}

func TestCredlyClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>blocked</html>`)
	}))
	defer server.Close()

	_, err := NewCredlyClient(server.URL, "someone", time.Second).Badges(context.Background())
	assert.Error(t, err)
}

func TestMediumClient_Articles(t *testing.T) {
	long := "<p>" + strings.Repeat("x", 250) + "</p>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://medium.com/feed/@writer", r.URL.Query().Get("rss_url"))
		writeJSON(t, w, map[string]any{
			"status": "ok",
			"items": []map[string]any{
				{"title": "One", "link": "https://medium.com/p/1", "pubDate": "2024-02-01 10:00:00",
					"description": "<h3>Hello</h3><p>Fish &amp; chips</p>", "categories": []string{"go"}},
				{"title": "Two", "link": "https://medium.com/p/2", "pubDate": "2024-01-01 10:00:00",
					"description": long},
			},
		})
	}))
	defer server.Close()

	articles, err := NewMediumClient(server.URL, "writer", time.Second).Articles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "HelloFish & chips...", articles[0].Description)
	assert.Equal(t, []string{"go"}, articles[0].Categories)
	assert.Equal(t, strings.Repeat("x", 200)+"...", articles[1].Description)
	assert.NotNil(t, articles[1].Categories)
}

func TestMediumClient_StatusNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"status": "error", "message": "feed not found"})
	}))
	defer server.Close()

	_, err := NewMediumClient(server.URL, "writer", time.Second).Articles(context.Background())
	assert.ErrorContains(t, err, "error")
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"plain", "hello", 10, "hello..."},
		{"tags removed", "<b>bold</b> move", 10, "bold move..."},
		{"truncated", "abcdefghij", 4, "abcd..."},
		{"multibyte", "héllo wörld", 5, "héllo..."},
		{"empty", "", 10, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excerpt(tt.input, tt.limit))
		})
	}
}
