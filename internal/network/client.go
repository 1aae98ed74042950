package network

import (
	"fmt"
	"math/rand"
	"net/url"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// Options configures a Client.
type Options struct {
	Timeout time.Duration
	// UserAgent pins the User-Agent header. Empty picks one of the built-in
	// browser user agents per request.
	UserAgent string
	Rotator   *Rotator
}

// Client issues requests with a Chrome TLS fingerprint and browser headers.
type Client struct {
	http       tls_client.HttpClient
	rotator    *Rotator
	userAgent  string
	userAgents []string
	rand       *rand.Rand
}

func NewClient(opts Options) (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)

	timeoutSeconds := int(opts.Timeout / time.Second)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Client{
		http:       client,
		rotator:    opts.Rotator,
		userAgent:  opts.UserAgent,
		userAgents: append([]string{}, userAgents...),
		rand:       rng,
	}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy, err := c.rotateProxy()
	if err != nil {
		return nil, err
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.pickUA())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if proxy != nil {
			return nil, fmt.Errorf("via proxy %s: %w", proxy.Host, err)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) rotateProxy() (*url.URL, error) {
	if c.rotator == nil {
		return nil, nil
	}
	proxy, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}

	if proxy != nil {
		if err := c.http.SetProxy(proxy.String()); err != nil {
			return nil, err
		}
	}
	return proxy, nil
}

func (c *Client) pickUA() string {
	if c.userAgent != "" {
		return c.userAgent
	}
	if len(c.userAgents) == 0 {
		return ""
	}
	return c.userAgents[c.rand.Intn(len(c.userAgents))]
}
