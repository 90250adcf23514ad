// Package api talks to the remote block-schema validation endpoint.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/up42/blockctl/pkg/util/console"
)

type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Transport: &Transport{
				headers: map[string]string{
					"User-Agent":   UserAgent(),
					"Content-Type": "application/json",
				},
			},
		},
	}
}

// ValidateManifest POSTs the manifest bytes, unmodified, to the
// validation endpoint. The endpoint's response body is printed as-is;
// a non-2xx status is a failure.
func (c *Client) ValidateManifest(ctx context.Context, manifest []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(manifest))
	if err != nil {
		return fmt.Errorf("building validation request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting manifest to %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading validation response: %w", err)
	}

	if response := strings.TrimSpace(string(body)); response != "" {
		console.Output(response)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned %s", c.endpoint, resp.Status)
	}
	return nil
}
