package beads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const createdBy = "epicgraph"

// httpWriter mutates dependencies through the beads HTTP/JSON API.
type httpWriter struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPWriter creates a Writer targeting baseURL (e.g. "http://localhost:8080").
// When token is non-empty an Authorization header is set on every request.
func NewHTTPWriter(baseURL, token string) Writer {
	return &httpWriter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *httpWriter) AddDependency(ctx context.Context, fromID, toID, depType string) error {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" {
		return fmt.Errorf("from and to IDs are required for add dependency")
	}
	if depType == "" {
		depType = DepBlocks
	}
	body := map[string]string{
		"depends_on_id": toID,
		"type":          depType,
		"created_by":    createdBy,
	}
	return c.doJSON(ctx, http.MethodPost, "/v1/beads/"+url.PathEscape(fromID)+"/dependencies", body)
}

func (c *httpWriter) RemoveDependency(ctx context.Context, fromID, toID, depType string) error {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" {
		return fmt.Errorf("from and to IDs are required for remove dependency")
	}
	q := url.Values{}
	q.Set("depends_on_id", toID)
	if depType != "" {
		q.Set("type", depType)
	}
	path := "/v1/beads/" + url.PathEscape(fromID) + "/dependencies?" + q.Encode()
	return c.doJSON(ctx, http.MethodDelete, path, nil)
}

// doJSON sends body as JSON and discards any success payload.
func (c *httpWriter) doJSON(ctx context.Context, method, path string, body any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 400 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	var errResp struct {
		Error string `json:"error"`
	}
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
	}
	return classifyAPIError(apiErr)
}

// IsAPIStatus reports whether err carries an APIError with the given status.
func IsAPIStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
