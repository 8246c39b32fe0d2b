package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	listEndpoint = "/view_file"
	moveEndpoint = "/move-item"
)

// BackendError is a non-2xx answer from the listing service.
type BackendError struct {
	Op     string
	Status int
	Detail string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Detail, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, http.StatusText(e.Status))
}

// Message is the best human readable text for a failure: the backend
// detail when it sent one, otherwise the error text itself.
func Message(err error) string {
	var be *BackendError
	if errors.As(err, &be) && be.Detail != "" {
		return be.Detail
	}
	return err.Error()
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

// List fetches the listing of path expanded depth levels deep. extensions is
// empty for no filter or a "+"-joined set of extensions without dots.
func (c *Client) List(ctx context.Context, path string, depth int, extensions string) ([]Item, error) {
	q := url.Values{}
	q.Set("file_path", path)
	q.Set("depth", strconv.Itoa(depth))
	q.Set("extensions", extensions)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+listEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus("listing", resp); err != nil {
		return nil, err
	}
	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("listing %s: decode: %w", path, err)
	}
	return items, nil
}

type moveRequest struct {
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
}

// Move asks the backend to relocate source into destination.
func (c *Client) Move(ctx context.Context, source, destination string) error {
	body, err := json.Marshal(moveRequest{SourcePath: source, DestinationPath: destination})
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+moveEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("move %s: %w", source, err)
	}
	defer resp.Body.Close()

	if err := checkStatus("move", resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	return nil
}

func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	be := &BackendError{Op: op, Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			be.Detail = s
		} else {
			be.Detail = string(payload.Detail)
		}
	}
	return be
}
