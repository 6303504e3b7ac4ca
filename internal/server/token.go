package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// TokenResult carries the outcome of a token capture.
type TokenResult struct {
	Token string
	err   error
}

func (t *TokenResult) Error() error {
	return t.err
}

// TokenHandler captures the access token the backend hands back after its
// OAuth flow finishes. Implements the [Handler] interface for registration
// with a Router.
//
// The handler accepts exactly one callback; later hits are rejected so a
// replayed redirect cannot overwrite the captured token.
type TokenHandler struct {
	state       string
	resultChan  chan TokenResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewTokenHandler creates a token capture handler guarded by the given state
// token. The state should be cryptographically random for CSRF protection.
func NewTokenHandler(state string) *TokenHandler {
	return &TokenHandler{
		state:      state,
		resultChan: make(chan TokenResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *TokenHandler) Routes() []string {
	return []string{"/token"}
}

// ServeHTTP handles the redirect from the backend's auth flow.
//
// Validates the state parameter, extracts the token, and sends the result
// through the result channel.
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	if state := r.URL.Query().Get("state"); state != h.state {
		err := fmt.Errorf("invalid state parameter")
		h.Send(TokenResult{err: err})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		err := fmt.Errorf("authorization failed: %s - %s", errParam, errDesc)
		h.Send(TokenResult{err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	h.Send(TokenResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

// Send delivers the result through the channel (only once).
func (h *TokenHandler) Send(result TokenResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving the captured token.
//
// The channel receives exactly one result and is then closed.
func (h *TokenHandler) Result() <-chan TokenResult {
	return h.resultChan
}
