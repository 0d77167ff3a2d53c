package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	userAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	liUserAgent = "LIAuthLibrary:0.0.3 com.linkedin.android:4.1.881 Asus_ASUS_Z01QD:android_9"
	apiPrefix   = "/voyager/api"
)

type Config struct {
	Username string
	Password string
	BaseURL  string

	// BreakerMaxFailures trips the circuit after that many consecutive
	// failures. Zero disables the breaker.
	BreakerMaxFailures int
	BreakerTimeout     time.Duration

	// Breaker, when set, is used instead of building one from the settings
	// above. Clients created by the same factory share it.
	Breaker *gobreaker.CircuitBreaker

	HTTPClient *http.Client
}

// Client is an authenticated Voyager session. It is safe for concurrent use
// once New has returned.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	csrf    string
}

var _ API = (*Client)(nil)

// New builds a client and logs in with the configured credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Username) == "" || cfg.Password == "" {
		return nil, ErrMissingCredentials
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid linkedin base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		clone := *httpClient
		clone.Jar = jar
		httpClient = &clone
	}

	c := &Client{
		baseURL: base,
		http:    httpClient,
		breaker: cfg.Breaker,
	}
	if c.breaker == nil {
		c.breaker = newBreaker(cfg.BreakerMaxFailures, cfg.BreakerTimeout)
	}

	// Logins count against the breaker like any other call.
	err = c.guard(func() error {
		return c.authenticate(ctx, cfg.Username, cfg.Password)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// newBreaker returns nil when maxFailures is not positive.
func newBreaker(maxFailures int, timeout time.Duration) *gobreaker.CircuitBreaker {
	if maxFailures <= 0 {
		return nil
	}
	limit := uint32(maxFailures)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "linkedin",
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= limit
		},
	})
}

type authResponse struct {
	LoginResult string `json:"login_result"`
}

func (c *Client) authenticate(ctx context.Context, username, password string) error {
	authURL := c.baseURL.String() + "/uas/authenticate"

	// The first request only exists to obtain the JSESSIONID cookie.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, authURL, nil)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("linkedin session bootstrap: %w", err)
	}
	drain(resp)

	jsessionID := c.cookie("JSESSIONID")
	if jsessionID == "" {
		return &AuthError{Result: "missing JSESSIONID cookie"}
	}

	form := url.Values{
		"session_key":      {username},
		"session_password": {password},
		"JSESSIONID":       {jsessionID},
	}
	req, err = http.NewRequestWithContext(ctx, http.MethodPost, authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err = c.http.Do(req)
	if err != nil {
		return fmt.Errorf("linkedin authenticate: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusUnauthorized {
		return &AuthError{Result: "UNAUTHORIZED"}
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "authenticate", StatusCode: resp.StatusCode}
	}

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("linkedin authenticate: decode response: %w", err)
	}
	if body.LoginResult != "PASS" {
		return &AuthError{Result: body.LoginResult}
	}

	c.csrf = strings.Trim(c.cookie("JSESSIONID"), `"`)
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-Li-User-Agent", liUserAgent)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-User-Language", "en")
	req.Header.Set("X-User-Locale", "en_US")
	req.Header.Set("Accept-Language", "en-us")
}

func (c *Client) cookie(name string) string {
	for _, ck := range c.http.Jar.Cookies(c.baseURL) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// call performs an API request and hands the response to decode when the
// status matches want. The whole exchange counts as one breaker sample.
func (c *Client) call(ctx context.Context, op, method, pathAndQuery string, payload interface{}, want int, decode func(io.Reader) error) error {
	return c.guard(func() error {
		var body io.Reader
		if payload != nil {
			raw, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("linkedin %s: encode payload: %w", op, err)
			}
			body = strings.NewReader(string(raw))
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+apiPrefix+pathAndQuery, body)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/vnd.linkedin.normalized+json+2.1")
		req.Header.Set("X-RestLi-Protocol-Version", "2.0.0")
		req.Header.Set("Csrf-Token", c.csrf)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("linkedin %s: %w", op, err)
		}
		defer drain(resp)

		if resp.StatusCode != want {
			return &StatusError{Op: op, StatusCode: resp.StatusCode}
		}
		if decode != nil {
			if err := decode(resp.Body); err != nil {
				return fmt.Errorf("linkedin %s: decode response: %w", op, err)
			}
		}
		return nil
	})
}

// guard runs fn as one breaker sample. Without a breaker fn runs directly.
func (c *Client) guard(fn func() error) error {
	if c.breaker == nil {
		return fn()
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
