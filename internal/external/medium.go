package external

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const descriptionLimit = 200

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Article is a Medium post from the user's RSS feed.
type Article struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	PubDate     string   `json:"pubDate"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

type rssResponse struct {
	Status string `json:"status"`
	Items  []struct {
		Title       string   `json:"title"`
		Link        string   `json:"link"`
		PubDate     string   `json:"pubDate"`
		Description string   `json:"description"`
		Categories  []string `json:"categories"`
	} `json:"items"`
}

// MediumClient reads a Medium feed through an RSS-to-JSON proxy.
type MediumClient struct {
	proxyURL   string
	username   string
	httpClient *http.Client
}

func NewMediumClient(proxyURL, username string, timeout time.Duration) *MediumClient {
	return &MediumClient{
		proxyURL:   proxyURL,
		username:   username,
		httpClient: newHTTPClient(timeout),
	}
}

// Articles fetches the feed. Descriptions are reduced to plain text and cut
// to a short excerpt.
func (c *MediumClient) Articles(ctx context.Context) ([]Article, error) {
	query := url.Values{}
	query.Set("rss_url", "https://medium.com/feed/@"+c.username)
	endpoint := c.proxyURL + "?" + query.Encode()

	var resp rssResponse
	if err := getJSON(ctx, c.httpClient, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("rss proxy returned status %q", resp.Status)
	}

	articles := make([]Article, 0, len(resp.Items))
	for _, item := range resp.Items {
		categories := item.Categories
		if categories == nil {
			categories = []string{}
		}
		articles = append(articles, Article{
			Title:       item.Title,
			Link:        item.Link,
			PubDate:     item.PubDate,
			Description: excerpt(item.Description, descriptionLimit),
			Categories:  categories,
		})
	}

	return articles, nil
}

// excerpt strips markup and keeps the first limit characters, followed by "...".
func excerpt(description string, limit int) string {
	text := html.UnescapeString(htmlTagPattern.ReplaceAllString(description, ""))
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + "..."
}
