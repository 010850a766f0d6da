// Package googleauth signs the user in with Google via the OAuth
// loopback flow and hands out authenticated HTTP clients for the
// calendar API.
package googleauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes requested at sign-in: calendar event write access plus basic
// identity for the header display.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

const defaultUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrNotConfigured is returned when Google credentials are missing.
var ErrNotConfigured = errors.New(
	"google sign-in is not configured: set PREPNOVA_GOOGLE_CLIENT_ID and PREPNOVA_GOOGLE_CLIENT_SECRET " +
		"(create an OAuth desktop client at https://console.cloud.google.com/apis/credentials)")

// ErrSignedOut is returned when an authenticated client is requested
// with no active session.
var ErrSignedOut = errors.New("not signed in to Google")

// Config holds the OAuth client credentials.
type Config struct {
	ClientID     string
	ClientSecret string
}

// ConfigFromEnv reads Google credentials from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		ClientID:     os.Getenv("PREPNOVA_GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("PREPNOVA_GOOGLE_CLIENT_SECRET"),
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return Config{}, ErrNotConfigured
	}
	return cfg, nil
}

// Profile is the signed-in user's display identity.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// State tracks the current Google session. Safe for concurrent use;
// TUI commands and calendar calls share it.
type State struct {
	mu      sync.Mutex
	oauth   *oauth2.Config
	token   *oauth2.Token
	profile *Profile

	userinfoURL string
}

// NewState creates a signed-out auth state.
func NewState(cfg Config) *State {
	return &State{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       Scopes,
		},
		userinfoURL: defaultUserinfoURL,
	}
}

// SignIn runs the OAuth loopback flow: it starts a localhost listener,
// reports the authorization URL through openURL, waits for the redirect
// and exchanges the code. On success the user's profile is fetched and
// stored.
func (s *State) SignIn(ctx context.Context, openURL func(string)) (*Profile, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("start redirect listener: %w", err)
	}
	defer func() { _ = listener.Close() }()

	s.mu.Lock()
	cfg := *s.oauth
	s.mu.Unlock()
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr().String())

	nonce, err := randomState()
	if err != nil {
		return nil, err
	}

	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != nonce:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: errors.New("oauth state mismatch")}
		case q.Get("error") != "":
			http.Error(w, "sign-in was denied", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("sign-in denied: %s", q.Get("error"))}
		default:
			fmt.Fprintln(w, "Signed in. You can close this tab and return to PrepNova.")
			results <- callbackResult{code: q.Get("code")}
		}
	})}
	go func() { _ = srv.Serve(listener) }()
	defer func() { _ = srv.Close() }()

	openURL(cfg.AuthCodeURL(nonce, oauth2.AccessTypeOnline))

	var code string
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		code = res.code
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = token
	s.profile = profile
	s.mu.Unlock()

	return profile, nil
}

func (s *State) fetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	client.Timeout = 10 * time.Second

	resp, err := client.Get(s.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user profile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch user profile: HTTP %d", resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode user profile: %w", err)
	}
	return &p, nil
}

// SignedIn reports whether a Google session is active.
func (s *State) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != nil
}

// Profile returns the signed-in user's identity, or nil.
func (s *State) Profile() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// SignOut discards the session.
func (s *State) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	s.profile = nil
}

// ForceSignOut discards the session after the API rejected its token.
// The study plan itself is untouched; only calendar access is lost.
func (s *State) ForceSignOut() {
	s.SignOut()
}

// HTTPClient returns an http.Client that attaches the session's
// credentials to every request.
func (s *State) HTTPClient(ctx context.Context) (*http.Client, error) {
	s.mu.Lock()
	token := s.token
	cfg := s.oauth
	s.mu.Unlock()

	if token == nil {
		return nil, ErrSignedOut
	}
	return oauth2.NewClient(ctx, cfg.TokenSource(ctx, token)), nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
