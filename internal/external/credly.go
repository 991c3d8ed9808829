package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Badge is a Credly badge flattened for display.
type Badge struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
	IssuerName string `json:"issuer_name"`
	IssuedAt   string `json:"issued_at"`
	BadgeURL   string `json:"badge_url"`
}

type credlyResponse struct {
	Data []struct {
		ID            string `json:"id"`
		IssuedAt      string `json:"issued_at"`
		BadgeURL      string `json:"badge_url"`
		BadgeTemplate *struct {
			Name     string `json:"name"`
			ImageURL string `json:"image_url"`
			Issuer   *struct {
				Name string `json:"name"`
			} `json:"issuer"`
		} `json:"badge_template"`
	} `json:"data"`
}

type CredlyClient struct {
	baseURL    string
	username   string
	httpClient *http.Client
}

func NewCredlyClient(baseURL, username string, timeout time.Duration) *CredlyClient {
	return &CredlyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		httpClient: newHTTPClient(timeout),
	}
}

// Badges fetches the user's public badges.
func (c *CredlyClient) Badges(ctx context.Context) ([]Badge, error) {
	endpoint := fmt.Sprintf("%s/users/%s/badges.json", c.baseURL, url.PathEscape(c.username))

	var resp credlyResponse
	if err := getJSON(ctx, c.httpClient, endpoint, &resp); err != nil {
		return nil, err
	}

	badges := make([]Badge, 0, len(resp.Data))
	for _, item := range resp.Data {
		badge := Badge{
			ID:         item.ID,
			Name:       "Unknown Badge",
			IssuerName: "Unknown Issuer",
			IssuedAt:   item.IssuedAt,
			BadgeURL:   item.BadgeURL,
		}
		if t := item.BadgeTemplate; t != nil {
			if t.Name != "" {
				badge.Name = t.Name
			}
			badge.ImageURL = t.ImageURL
			if t.Issuer != nil && t.Issuer.Name != "" {
				badge.IssuerName = t.Issuer.Name
			}
		}
		if badge.BadgeURL == "" {
			badge.BadgeURL = fmt.Sprintf("%s/badges/%s", c.baseURL, url.PathEscape(item.ID))
		}
		badges = append(badges, badge)
	}

	return badges, nil
}
