// Package gist publishes notebook documents as GitHub gists.
package gist

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
)

// DefaultAPIURL is the public GitHub API.
const DefaultAPIURL = "https://api.github.com"

// File is one gist file.
type File struct {
	Name    string
	Content []byte
}

// Publisher creates gists.
type Publisher interface {
	// Publish uploads f and returns the gist's web URL. An empty token
	// publishes anonymously.
	Publish(ctx context.Context, f File, token string) (string, error)
}

// Client publishes through the GitHub REST API.
type Client struct {
	gh *github.Client
}

// NewClient returns a client for apiURL (DefaultAPIURL when empty).
func NewClient(apiURL string) (*Client, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	base, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("gist: api url: %w", err)
	}
	gh := github.NewClient(&http.Client{Timeout: 30 * time.Second})
	gh.BaseURL = base
	return &Client{gh: gh}, nil
}

// Publish implements Publisher.
func (c *Client) Publish(ctx context.Context, f File, token string) (string, error) {
	gh := c.gh
	if token != "" {
		gh = gh.WithAuthToken(token)
	}

	created, _, err := gh.Gists.Create(ctx, &github.Gist{
		Description: github.String(f.Name),
		Public:      github.Bool(false),
		Files: map[github.GistFilename]github.GistFile{
			github.GistFilename(f.Name): {Content: github.String(string(f.Content))},
		},
	})
	if err != nil {
		return "", fmt.Errorf("gist: create: %w", err)
	}
	if created.GetHTMLURL() == "" {
		return "", fmt.Errorf("gist: response has no html_url")
	}
	return created.GetHTMLURL(), nil
}
