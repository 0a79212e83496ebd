// Package keychainapi is the HTTP collaborator that resolves keychain
// ciphertexts into usable (iv, key) material via DJI's keychain service.
// Its shape (http.Client with a Timeout, JSON request/response, status-code
// branching) is modeled directly on the update checker's GitHub client.
package keychainapi

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kevincowleys/dji-log-parser/internal/dlperrors"
	"github.com/kevincowleys/dji-log-parser/internal/keychain"
)

// DefaultEndpoint is the production DJI keychain resolution endpoint.
const DefaultEndpoint = "https://dev.dji.com/openapi/v1/flight-records/keychains"

// DefaultTimeout is the request timeout applied when the caller doesn't
// override it, matching spec.md's "default 30 seconds".
const DefaultTimeout = 30 * time.Second

// Client resolves keychain requests against the DJI keychain HTTP endpoint.
type Client struct {
	Endpoint   string
	ApiKey     string
	httpClient *http.Client
}

// NewClient builds a Client with DefaultEndpoint and DefaultTimeout. Override
// Endpoint directly on the returned value for testing against a mock server.
func NewClient(apiKey string) *Client {
	return &Client{
		Endpoint: DefaultEndpoint,
		ApiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// wireRequest/wireResponse mirror the exact JSON shapes in spec.md §6.
type wireRequest struct {
	Version       uint16                          `json:"version"`
	Department    byte                            `json:"department"`
	KeychainArray [][]keychain.EncodedFeaturePoint `json:"keychainsArray"`
}

type wireResponseEntry struct {
	FeaturePoint keychain.FeaturePoint `json:"featurePoint"`
	AesKey       string                `json:"aesKey"`
	AesIv        string                `json:"aesIv"`
}

type wireResponse struct {
	Result struct {
		Code byte   `json:"code"`
		Msg  string `json:"msg"`
	} `json:"result"`
	Data [][]wireResponseEntry `json:"data"`
}

// Fetch synchronously resolves req into one Keychain per requested group, in
// request order. See FetchAsync for a non-blocking variant sharing the same
// contract.
func (c *Client) Fetch(req keychain.Request) ([]keychain.Keychain, error) {
	body, err := json.Marshal(wireRequest{
		Version:       req.Version,
		Department:    req.Department,
		KeychainArray: req.KeychainArray,
	})
	if err != nil {
		return nil, fmt.Errorf("keychainapi: encode request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("keychainapi: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Api-Key", c.ApiKey)
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dlperrors.ErrNetworkConnection, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("keychainapi: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, dlperrors.ErrApiKey
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &dlperrors.NetworkRequestStatusError{StatusCode: resp.StatusCode}
	}

	var wr wireResponse
	if err := json.Unmarshal(respBody, &wr); err != nil {
		return nil, fmt.Errorf("keychainapi: decode response: %w", err)
	}

	if wr.Result.Code != 0 {
		return nil, &dlperrors.ApiError{Msg: wr.Result.Msg}
	}
	if wr.Data == nil {
		return nil, &dlperrors.ApiError{Msg: "Missing keychain data"}
	}

	groups := make([]keychain.Keychain, 0, len(wr.Data))
	for _, group := range wr.Data {
		entries := make([]keychain.FeaturePointEntry, 0, len(group))
		for _, e := range group {
			key, err := base64.StdEncoding.DecodeString(e.AesKey)
			if err != nil {
				return nil, fmt.Errorf("keychainapi: decode aesKey: %w", err)
			}
			iv, err := base64.StdEncoding.DecodeString(e.AesIv)
			if err != nil {
				return nil, fmt.Errorf("keychainapi: decode aesIv: %w", err)
			}
			entries = append(entries, keychain.FeaturePointEntry{
				FeaturePoint: e.FeaturePoint,
				IV:           iv,
				Key:          key,
			})
		}
		groups = append(groups, keychain.FromFeaturePoints(entries))
	}

	return groups, nil
}

// FetchResult bundles a FetchAsync outcome for delivery over a channel.
type FetchResult struct {
	Groups []keychain.Keychain
	Err    error
}

// FetchAsync resolves req on a background goroutine and returns a channel
// that receives exactly one FetchResult. It shares Fetch's request/response
// contract; use it from a caller that wants to overlap the HTTP round trip
// with other work instead of blocking on it directly, mirroring the
// blocking-fetch/awaitable-fetch_async split called for in spec.md §9.
func (c *Client) FetchAsync(req keychain.Request) <-chan FetchResult {
	out := make(chan FetchResult, 1)
	go func() {
		groups, err := c.Fetch(req)
		out <- FetchResult{Groups: groups, Err: err}
	}()
	return out
}
