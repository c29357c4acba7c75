package yahoo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mfinley/rostercoach/internal/config"
	"github.com/mfinley/rostercoach/internal/models"
)

const (
	baseURL  = "https://fantasysports.yahooapis.com/fantasy/v2"
	tokenURL = "https://api.login.yahoo.com/oauth2/get_token"
)

// Client talks to the Yahoo fantasy API. Access tokens are short-lived, so
// the client refreshes from the configured refresh token on demand.
type Client struct {
	httpClient *http.Client
	Config     config.YahooAPI

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewClient(cfg config.YahooAPI) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		Config:     cfg,
	}
}

// Get fetches an API path into result, refreshing the access token first when
// needed.
func (c *Client) Get(endpoint string, params map[string]string, result interface{}) error {
	token, err := c.accessTokenValue()
	if err != nil {
		return err
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s%s", baseURL, endpoint), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	q.Set("format", "json")
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func (c *Client) accessTokenValue() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("client_id", c.Config.ClientID)
	form.Set("client_secret", c.Config.ClientSecret)
	form.Set("refresh_token", c.Config.RefreshToken)
	form.Set("grant_type", "refresh_token")

	resp, err := c.httpClient.Post(tokenURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("error refreshing access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token refresh failed with status %d", resp.StatusCode)
	}

	var token models.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("error decoding token response: %w", err)
	}

	c.accessToken = token.AccessToken
	// Refresh a minute early so in-flight requests never carry a token that
	// expires mid-call.
	c.expiresAt = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}
