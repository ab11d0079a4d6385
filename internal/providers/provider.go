package providers

import (
	"context"
)

// Hit is one raw web result returned by the search API.
type Hit struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Response is the decoded search payload.
type Response struct {
	Hits []Hit `json:"hits"`
}

// Provider defines the interface for web search backends.
type Provider interface {
	// Search runs a single query and returns the raw hits.
	Search(ctx context.Context, query string) (*Response, error)
}
