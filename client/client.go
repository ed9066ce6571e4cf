package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/goware/urlx"
	log "github.com/sirupsen/logrus"

	"github.com/jointwt/sonet/types"
)

var (
	// DefaultUserAgent ...
	DefaultUserAgent = "sonet/0.0.1"
)

// Client is the gateway to the backend. It authenticates every request with
// the bearer token from its TokenSource and reports 401 responses to its
// unauthorized handlers before returning them to the caller.
type Client struct {
	BaseURL *url.URL
	Config  *Config

	httpClient *http.Client
}

// NewClient ...
func NewClient(options ...Option) (*Client, error) {
	config := NewConfig()

	for _, opt := range options {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	u, err := ParseBaseURI(config.URI)
	if err != nil {
		return nil, err
	}

	cli := &Client{
		BaseURL:    u,
		Config:     config,
		httpClient: config.HTTPClient,
	}

	return cli, nil
}

// ParseBaseURI normalizes uri and guarantees a trailing slash so relative
// endpoint paths resolve beneath it
func ParseBaseURI(uri string) (*url.URL, error) {
	u, err := urlx.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("error parsing uri %s: %w", uri, err)
	}
	norm, err := urlx.Normalize(u)
	if err != nil {
		return nil, fmt.Errorf("error normalizing uri %s: %w", uri, err)
	}
	u, err = url.Parse(norm)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	rel := &url.URL{Path: strings.TrimPrefix(path, "/")}
	u := c.BaseURL.ResolveReference(rel)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	var buf io.ReadWriter
	if body != nil {
		buf = new(bytes.Buffer)
		err := json.NewEncoder(buf).Encode(body)
		if err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)
	return req, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.Config.UserAgent)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.Config.TokenSource == nil {
		return
	}
	if token := c.Config.TokenSource.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// send performs req and turns non-2xx responses into *APIError. The caller
// owns the returned body.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	log.WithField("request_id", req.Header.Get("X-Request-ID")).
		Debugf("%s %s", req.Method, req.URL)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return res, nil
	}
	defer res.Body.Close()

	apiErr := newAPIError(res)
	if apiErr.StatusCode == http.StatusUnauthorized {
		log.WithField("url", req.URL.String()).Warn("request unauthorized")
		for _, h := range c.Config.Unauthorized {
			h(apiErr)
		}
	}
	return nil, apiErr
}

func newAPIError(res *http.Response) *APIError {
	apiErr := &APIError{StatusCode: res.StatusCode}

	data, err := ioutil.ReadAll(io.LimitReader(res.Body, 1<<16))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body types.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

func (c *Client) do(req *http.Request, v interface{}) error {
	res, err := c.send(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if v == nil {
		_, err = io.Copy(ioutil.Discard, res.Body)
		return err
	}

	if s, ok := v.(*string); ok {
		data, err := ioutil.ReadAll(res.Body)
		if err != nil {
			return err
		}
		*s = string(data)
		return nil
	}

	err = json.NewDecoder(res.Body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}
