package external

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

const topRepoCount = 6

// Repo is one entry of the "top repositories" list.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
	URL         string `json:"url"`
}

// GitHubStats aggregates a user's public profile and repositories.
type GitHubStats struct {
	PublicRepos  int            `json:"public_repos"`
	Followers    int            `json:"followers"`
	Following    int            `json:"following"`
	TotalStars   int            `json:"total_stars"`
	TotalForks   int            `json:"total_forks"`
	TotalCommits int            `json:"total_commits"`
	Languages    map[string]int `json:"languages"`
	TopRepos     []Repo         `json:"top_repos"`
}

type githubUser struct {
	PublicRepos int `json:"public_repos"`
	Followers   int `json:"followers"`
	Following   int `json:"following"`
}

type githubRepo struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	StargazersCount int     `json:"stargazers_count"`
	ForksCount      int     `json:"forks_count"`
	Language        *string `json:"language"`
	HTMLURL         string  `json:"html_url"`
}

type GitHubClient struct {
	baseURL    string
	username   string
	httpClient *http.Client
}

func NewGitHubClient(baseURL, username string, timeout time.Duration) *GitHubClient {
	return &GitHubClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		httpClient: newHTTPClient(timeout),
	}
}

// Stats fetches the profile and up to 100 most recently updated repositories.
// Both requests share one timeout.
func (c *GitHubClient) Stats(ctx context.Context) (*GitHubStats, error) {
	ctx, cancel := context.WithTimeout(ctx, c.httpClient.Timeout)
	defer cancel()

	userURL := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(c.username))

	var user githubUser
	if err := getJSON(ctx, c.httpClient, userURL, &user); err != nil {
		return nil, err
	}

	var repos []githubRepo
	if err := getJSON(ctx, c.httpClient, userURL+"/repos?per_page=100&sort=updated", &repos); err != nil {
		return nil, err
	}

	return summarizeRepos(user, repos), nil
}

func summarizeRepos(user githubUser, repos []githubRepo) *GitHubStats {
	stats := &GitHubStats{
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Following:   user.Following,
		Languages:   make(map[string]int),
		TopRepos:    []Repo{},
	}

	for _, repo := range repos {
		stats.TotalStars += repo.StargazersCount
		stats.TotalForks += repo.ForksCount
		if repo.Language != nil && *repo.Language != "" {
			stats.Languages[*repo.Language]++
		}
	}

	sorted := slices.Clone(repos)
	slices.SortStableFunc(sorted, func(a, b githubRepo) int {
		return cmp.Compare(b.StargazersCount, a.StargazersCount)
	})

	for _, repo := range sorted[:min(topRepoCount, len(sorted))] {
		top := Repo{
			Name:     repo.Name,
			Stars:    repo.StargazersCount,
			Forks:    repo.ForksCount,
			Language: "Unknown",
			URL:      repo.HTMLURL,
		}
		if repo.Description != nil {
			top.Description = *repo.Description
		}
		if repo.Language != nil && *repo.Language != "" {
			top.Language = *repo.Language
		}
		stats.TopRepos = append(stats.TopRepos, top)
	}

	return stats
}
