package words

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the public random word API.
const DefaultAPIURL = "https://random-word-api.vercel.app/api"

// RemoteProvider fetches one random word per call from an HTTP API that
// answers `GET {base}?words=1&length=N` with a JSON array of strings.
type RemoteProvider struct {
	base   string
	client *http.Client
}

// NewRemoteProvider targets baseURL (DefaultAPIURL when empty). A nil
// client gets a 10s timeout.
func NewRemoteProvider(baseURL string, client *http.Client) *RemoteProvider {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RemoteProvider{base: baseURL, client: client}
}

// FetchWord returns the first word of the API response, uppercased.
// Transport failures and non-200 responses wrap ErrNetwork; malformed or
// empty bodies wrap ErrDecode. The length of the word is not checked here.
func (p *RemoteProvider) FetchWord(ctx context.Context, length int) (string, error) {
	u, err := url.Parse(p.base)
	if err != nil {
		return "", fmt.Errorf("%w: bad url: %v", ErrNetwork, err)
	}
	q := u.Query()
	q.Set("words", "1")
	q.Set("length", strconv.Itoa(length))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}

	var list []string
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(list) == 0 {
		return "", fmt.Errorf("%w: empty word list", ErrDecode)
	}
	return strings.ToUpper(list[0]), nil
}
