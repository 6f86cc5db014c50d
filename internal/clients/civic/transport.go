package civic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// getJSON issues a GET, checks the status, and decodes the body into out.
// The raw body comes back for Fact.Raw attribution.
func getJSON(ctx context.Context, hc *http.Client, source, url string, headers map[string]string, out interface{}) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, adapterErr(source, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return do(hc, source, req, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out.
func postJSON(ctx context.Context, hc *http.Client, source, url string, headers map[string]string, body interface{}, out interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, adapterErr(source, 0, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, adapterErr(source, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return do(hc, source, req, out)
}

func do(hc *http.Client, source string, req *http.Request, out interface{}) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, adapterErr(source, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, adapterErr(source, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, adapterErr(source, resp.StatusCode, fmt.Errorf("unexpected status"))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, adapterErr(source, resp.StatusCode, fmt.Errorf("decode response: %w", err))
		}
	}
	return raw, nil
}
