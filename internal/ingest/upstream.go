package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/models"
)

const upstreamSource = "pokeapi"

// Fetcher returns one raw upstream record by id or name.
type Fetcher interface {
	Fetch(ctx context.Context, idOrName string) (*models.UpstreamRecord, error)
}

// Client is the HTTP Fetcher for {BaseURL}/pokemon/{idOrName}.
type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Fetch returns NotFound on a 404 and UpstreamUnavailable on any other
// failure. It never retries.
func (c *Client) Fetch(ctx context.Context, idOrName string) (*models.UpstreamRecord, error) {
	endpoint := fmt.Sprintf("%s/pokemon/%s", c.BaseURL, url.PathEscape(idOrName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &pkgerrors.UpstreamError{Source: upstreamSource, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &pkgerrors.UpstreamError{Source: upstreamSource, Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, pkgerrors.NewNotFoundError("upstream record", idOrName)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &pkgerrors.UpstreamError{
			Source:     upstreamSource,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(body))),
		}
	}

	var raw models.UpstreamRecord
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &pkgerrors.UpstreamError{Source: upstreamSource, Err: fmt.Errorf("decode body: %w", err)}
	}
	if raw.ID <= 0 || raw.Name == "" {
		return nil, &pkgerrors.UpstreamError{Source: upstreamSource, Err: fmt.Errorf("record %q has no id or name", idOrName)}
	}
	return &raw, nil
}
