package sleeper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	baseURL = "https://api.sleeper.app/v1"

	// The Sleeper API is unauthenticated; space requests out so a full
	// season backfill stays well under its rate limit.
	defaultMinInterval = 200 * time.Millisecond
)

type Client struct {
	httpClient  *http.Client
	baseURL     string
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
		minInterval: defaultMinInterval,
	}
}

func (c *Client) Get(path string, result interface{}) error {
	c.throttle()

	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}

// throttle holds the caller until minInterval has passed since the previous
// request, serializing outbound traffic.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := c.minInterval - time.Since(c.last); wait > 0 {
		time.Sleep(wait)
	}
	c.last = time.Now()
}
