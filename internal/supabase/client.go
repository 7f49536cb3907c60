package supabase

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Environment variables carrying the project credentials.
const (
	EnvURL     = "NEXT_PUBLIC_SUPABASE_URL"
	EnvAnonKey = "NEXT_PUBLIC_SUPABASE_ANON_KEY"
)

// RESTPath is the PostgREST prefix under the project URL.
const RESTPath = "/rest/v1"

// MissingEnvError reports a required environment variable that was unset or empty.
type MissingEnvError struct {
	Var string
}

func (e *MissingEnvError) Error() string {
	return "missing environment variable: " + e.Var
}

// Config holds configuration for the Supabase client.
type Config struct {
	URL     string // e.g. https://<project>.supabase.co
	AnonKey string // public anon key

	// PersistSession keeps session cookies between calls.
	PersistSession bool
	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the transport entirely; PersistSession and Timeout
	// are ignored when it is set.
	HTTPClient *http.Client
}

// ConfigFromEnv reads the two credentials through lookup (os.LookupEnv in
// production). Session persistence is on, matching the browser client.
func ConfigFromEnv(lookup func(string) (string, bool)) Config {
	url, _ := lookup(EnvURL)
	key, _ := lookup(EnvAnonKey)
	return Config{
		URL:            strings.TrimSpace(url),
		AnonKey:        strings.TrimSpace(key),
		PersistSession: true,
	}
}

// Validate checks that both credentials are present. Every missing variable
// is reported.
func (c Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, &MissingEnvError{Var: EnvURL})
	}
	if c.AnonKey == "" {
		errs = append(errs, &MissingEnvError{Var: EnvAnonKey})
	}
	return errors.Join(errs...)
}

// Client is the shared Supabase API handle. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Supabase API client. The values are only checked
// for presence; a malformed URL fails at request time.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
		if cfg.Timeout > 0 {
			httpClient.Timeout = cfg.Timeout
		}
		if cfg.PersistSession {
			jar, err := cookiejar.New(nil)
			if err != nil {
				return nil, fmt.Errorf("create session jar: %w", err)
			}
			httpClient.Jar = jar
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.AnonKey,
		httpClient: httpClient,
	}, nil
}

// URL returns the project base URL.
func (c *Client) URL() string { return c.baseURL }

// HTTPClient exposes the underlying client, mostly for tests.
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

// setHeaders sets the headers Supabase expects on every call.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}

// Do sends an HTTP request and returns the response.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
