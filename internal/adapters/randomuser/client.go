package randomuser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/roommates/core/internal/domain/entities"
	"github.com/roommates/core/internal/ports"
)

// DefaultURL is the public randomuser.me endpoint
const DefaultURL = "https://randomuser.me/api/"

// response mirrors the subset of the randomuser.me payload that is consumed
type response struct {
	Results []result `json:"results"`
}

type result struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Dob struct {
		Age int `json:"age"`
	} `json:"dob"`
	Phone string `json:"phone"`
}

// Client generates roommates from the randomuser.me API
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
	newID      func() string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for upstream calls
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets a client-side timeout. Zero keeps the client default of no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithIDFunc overrides the roommate ID source
func WithIDFunc(newID func() string) Option {
	return func(c *Client) {
		c.newID = newID
	}
}

// NewClient creates a new randomuser client for url
func NewClient(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}

	c := &Client{
		url:        url,
		httpClient: &http.Client{},
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		// copy so a shared client such as http.DefaultClient is never mutated
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}
	return c
}

var _ ports.RoommateGenerator = (*Client)(nil)

// Generate fetches one random identity and maps it into a new Roommate
func (c *Client) Generate(ctx context.Context) (entities.Roommate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return entities.Roommate{}, fmt.Errorf("%w: build request: %v", entities.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entities.Roommate{}, fmt.Errorf("%w: %v", entities.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entities.Roommate{}, fmt.Errorf("%w: unexpected status %d", entities.ErrUpstream, resp.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entities.Roommate{}, fmt.Errorf("%w: decode response: %v", entities.ErrUpstream, err)
	}

	if len(payload.Results) == 0 {
		return entities.Roommate{}, fmt.Errorf("%w: empty results", entities.ErrUpstream)
	}

	person := payload.Results[0]
	return entities.Roommate{
		ID:    c.newID(),
		Name:  fmt.Sprintf("%s %s", person.Name.First, person.Name.Last),
		Age:   person.Dob.Age,
		Phone: person.Phone,
	}, nil
}
