package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Upload stores a file in the given storage bucket and returns its public
// URL. objectPath is the path inside the bucket, e.g. "covers/<tour-id>.jpg".
func (c *Client) Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string) (string, error) {
	if bucket == "" || objectPath == "" {
		return "", errors.New("bucket and object path are required")
	}

	u := c.baseURL + "/storage/v1/object/" + bucket + "/" + objectPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "failed to build upload request")
	}
	req.Header.Set("apikey", c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.mu.RLock()
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "upload failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(body, apiErr)
		return "", apiErr
	}

	return c.PublicURL(bucket, objectPath), nil
}

// PublicURL returns the public download URL for an object.
func (c *Client) PublicURL(bucket, objectPath string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + objectPath
}
