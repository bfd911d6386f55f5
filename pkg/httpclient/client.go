package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

var _ HTTPClient = (*httpClient)(nil)

type HTTPClient interface {
	Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error)
	Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*httpClient)

// WithCookieJar attaches a jar so session cookies travel with every request.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *httpClient) {
		c.Client.Jar = jar
	}
}

// WithDefaultHeaders sets headers applied before the per-request ones.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *httpClient) {
		for key, value := range headers {
			c.defaults[key] = value
		}
	}
}

type httpClient struct {
	Client   *http.Client
	defaults map[string]string
}

func NewHTTPClient(timeout time.Duration, opts ...Option) HTTPClient {
	c := &httpClient{
		Client:   &http.Client{Timeout: timeout},
		defaults: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *httpClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, headers)
	return c.Client.Do(req)
}

func (c *httpClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, headers)
	return c.Client.Do(req)
}

func (c *httpClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req, nil)
	return c.Client.Do(req)
}

func (c *httpClient) setHeaders(req *http.Request, headers map[string]string) {
	for key, value := range c.defaults {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
