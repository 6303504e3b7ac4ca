// HTTP client for the transfer backend.
//
// Listing endpoints ride a retrying client (transient failures on reads are
// harmless to repeat); submit, status and cancel use a plain client because a
// submission must hit the wire exactly once and a poll tick that fails is
// retried by the poller on its own cadence, never inside the call.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spottransfer/sptx/internal/shared"
)

const defaultBaseURL = "http://localhost:8080"

// TransferService talks to the transfer backend.
type TransferService struct {
	baseURL    string
	httpClient *http.Client
	listClient *http.Client
}

// NewTransferService creates a backend client.
//
// client is used for job submission, status and cancellation; pass nil for
// [http.DefaultClient]. Listing calls always use an internal retrying client
// derived from the same transport.
func NewTransferService(baseURL string, client *http.Client) *TransferService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	rc.HTTPClient.Transport = client.Transport

	return &TransferService{
		baseURL:    baseURL,
		httpClient: client,
		listClient: rc.StandardClient(),
	}
}

// apiMessage is the backend's generic response envelope.
type apiMessage struct {
	Message string `json:"message"`
}

// submitResponse covers the 202 bodies of all submit endpoints.
type submitResponse struct {
	Message        string `json:"message"`
	TransferID     string `json:"transfer_id"`
	DeleteID       string `json:"delete_id"`
	TotalPlaylists int    `json:"total_playlists"`
}

// transportErr maps a failed round trip to either the caller's cancellation or
// a network failure. The distinction matters: cancellation is silent, network
// failure is surfaced as retryable.
func transportErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
}

func (t *TransferService) do(ctx context.Context, client *http.Client, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, transportErr(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, transportErr(ctx, err)
	}

	return resp.StatusCode, data, nil
}

// rejection decodes the server message from a non-2xx body, falling back to a default.
func rejection(data []byte) error {
	var msg apiMessage
	if err := json.Unmarshal(data, &msg); err == nil && msg.Message != "" {
		return fmt.Errorf("%w: %s", shared.ErrSubmissionRejected, msg.Message)
	}
	return fmt.Errorf("%w: server declined the request", shared.ErrSubmissionRejected)
}

// Health probes the backend root endpoint.
func (t *TransferService) Health(ctx context.Context) error {
	status, _, err := t.do(ctx, t.listClient, http.MethodGet, "/", nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: health check returned status %d", shared.ErrServiceUnavailable, status)
	}
	return nil
}

// StoredToken fetches the Spotify token held in the backend session, if any.
func (t *TransferService) StoredToken(ctx context.Context) (string, error) {
	status, data, err := t.do(ctx, t.listClient, http.MethodGet, "/auth/token", nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: no stored token", shared.ErrMissingCredentials)
	}

	var resp struct {
		Token         string `json:"token"`
		Authenticated bool   `json:"authenticated"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if !resp.Authenticated || resp.Token == "" {
		return "", fmt.Errorf("%w: not authenticated", shared.ErrMissingCredentials)
	}
	return resp.Token, nil
}

// ListSourcePlaylists retrieves the user's Spotify playlists.
func (t *TransferService) ListSourcePlaylists(ctx context.Context, spotifyToken string) ([]Playlist, error) {
	payload := map[string]string{}
	if spotifyToken != "" {
		payload["spotify_token"] = spotifyToken
	}

	status, data, err := t.do(ctx, t.listClient, http.MethodPost, "/playlists", payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, rejection(data)
	}

	var resp struct {
		Playlists []Playlist `json:"playlists"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}
	return resp.Playlists, nil
}

// PlaylistTracks retrieves the tracks of a single source playlist.
func (t *TransferService) PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	status, data, err := t.do(ctx, t.listClient, http.MethodGet, "/playlist-tracks/"+playlistID, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	if status != http.StatusOK {
		return nil, rejection(data)
	}

	var resp struct {
		Tracks []Track `json:"tracks"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode tracks: %w", err)
	}
	return resp.Tracks, nil
}

// ListDestinationPlaylists retrieves the user's YouTube Music playlists (delete targets).
func (t *TransferService) ListDestinationPlaylists(ctx context.Context, authHeaders string) ([]Playlist, error) {
	payload := map[string]string{}
	if authHeaders != "" {
		payload["auth_headers"] = authHeaders
	}

	status, data, err := t.do(ctx, t.listClient, http.MethodPost, "/ytm-playlists", payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, rejection(data)
	}

	var resp struct {
		Playlists []Playlist `json:"playlists"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}
	return resp.Playlists, nil
}

// StartTransfer submits a bulk transfer job. Exactly one network call.
//
// The endpoint depends on the request shape: whole playlists go to
// /transfer-all, per-track selections to /transfer-selected.
func (t *TransferService) StartTransfer(ctx context.Context, req *TransferRequest) (*JobHandle, error) {
	path := "/transfer-all"
	if req.FineGrained() {
		path = "/transfer-selected"
	}

	status, data, err := t.do(ctx, t.httpClient, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var resp submitResponse
	if status >= 200 && status < 300 {
		if err := json.Unmarshal(data, &resp); err != nil || resp.TransferID == "" {
			return nil, fmt.Errorf("%w: accepted response missing transfer id", shared.ErrSubmissionRejected)
		}
		return &JobHandle{Kind: KindTransfer, ID: resp.TransferID, Total: resp.TotalPlaylists}, nil
	}

	return nil, rejection(data)
}

// StartDelete submits a bulk deletion job. Exactly one network call.
func (t *TransferService) StartDelete(ctx context.Context, req *DeleteRequest) (*JobHandle, error) {
	path := "/delete-selected-playlists"
	if req.All {
		path = "/delete-all-playlists"
	}

	status, data, err := t.do(ctx, t.httpClient, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var resp submitResponse
	if status >= 200 && status < 300 {
		if err := json.Unmarshal(data, &resp); err != nil || resp.DeleteID == "" {
			return nil, fmt.Errorf("%w: accepted response missing delete id", shared.ErrSubmissionRejected)
		}
		return &JobHandle{Kind: KindDelete, ID: resp.DeleteID, Total: resp.TotalPlaylists}, nil
	}

	return nil, rejection(data)
}

// Status fetches the current snapshot for a job. One call, no internal retry.
//
// A 404 after the job has ended is the backend forgetting finished jobs, so it
// maps to [shared.ErrJobNotFound] for the caller to treat as end-of-life.
func (t *TransferService) Status(ctx context.Context, handle *JobHandle) (*JobSnapshot, error) {
	status, data, err := t.do(ctx, t.httpClient, http.MethodGet, handle.Kind.statusPath(handle.ID), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", shared.ErrJobNotFound, handle.ID)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status endpoint returned %d", shared.ErrNetworkFailure, status)
	}

	var snap JobSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Cancel notifies the backend to stop a job. Fire-and-forget: any response,
// including an application error, counts as delivered. Only a transport
// failure is reported, and callers log rather than surface it.
func (t *TransferService) Cancel(ctx context.Context, handle *JobHandle) error {
	_, _, err := t.do(ctx, t.httpClient, http.MethodPost, handle.Kind.cancelPath(handle.ID), nil)
	return err
}

// Clone copies a single playlist synchronously via /create.
//
// Unlike the bulk endpoints there is no job handle: the call blocks until the
// clone finishes and the response is the terminal result.
func (t *TransferService) Clone(ctx context.Context, req *CloneRequest) (*CloneResult, error) {
	status, data, err := t.do(ctx, t.httpClient, http.MethodPost, "/create", req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, rejection(data)
	}

	var result CloneResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode clone result: %w", err)
	}
	return &result, nil
}
