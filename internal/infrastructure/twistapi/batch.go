package twistapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// BatchRequest is one call inside a batch submission.
type BatchRequest struct {
	Method string
	Path   string
	Params url.Values
}

type batchItem struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// BatchResponse is the outcome of one sub-request. Body is the raw
// response, which the API encodes either as JSON or as a JSON string.
type BatchResponse struct {
	Code int             `json:"code"`
	Body json.RawMessage `json:"body"`
}

// Batch submits requests in one round trip. It fails as a whole: any
// sub-request with an error status yields a *BatchError and no responses.
func (c *Client) Batch(ctx context.Context, reqs []BatchRequest) ([]BatchResponse, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	items := make([]batchItem, len(reqs))
	for i, r := range reqs {
		method := r.Method
		if method == "" {
			method = http.MethodPost
		}
		u := c.baseURL + "/" + r.Path
		if len(r.Params) > 0 {
			u += "?" + r.Params.Encode()
		}
		items[i] = batchItem{Method: method, URL: u}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding batch: %w", err)
	}

	params := url.Values{}
	params.Set("requests", string(encoded))
	params.Set("parallel", "false")

	var resp []BatchResponse
	if err := c.post(ctx, "batch", params, &resp); err != nil {
		return nil, err
	}
	if len(resp) != len(reqs) {
		return nil, fmt.Errorf("batch returned %d responses for %d requests", len(resp), len(reqs))
	}
	for i, r := range resp {
		if r.Code >= 400 {
			return nil, &BatchError{Index: i, Err: newAPIError(r.Code, "", unquote(r.Body))}
		}
	}
	return resp, nil
}

// unquote unwraps a body sent as a JSON string.
func unquote(raw json.RawMessage) []byte {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []byte(s)
	}
	return raw
}
