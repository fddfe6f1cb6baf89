package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// FetchJSON issues a single GET to url and decodes the JSON body into T.
// Non-2xx responses fail with *HTTPError and the body is left unread.
// The decoded value is not validated.
func FetchJSON[T any](ctx context.Context, httpClient *http.Client, rawURL string) (T, error) {
	var out T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return out, fmt.Errorf("failed to create request: %w", unwrapURLError(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("request failed: %w", unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &HTTPError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}

	return out, nil
}

// statusText extracts the reason phrase the server sent, e.g. "Unauthorized"
// from "401 Unauthorized".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// unwrapURLError drops the *url.Error wrapper, whose message quotes the
// full request URL with the api key in it.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
