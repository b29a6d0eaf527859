package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/form"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/pkg/middleware/requestid"
)

const contentTypeJSON = "application/json"

// Observer receives the outcome of every backend call. Status is 0 when no response arrived.
type Observer interface {
	ObserveUpstream(client, method string, status int, duration time.Duration)
}

type tokenKey struct{}

// ContextWithToken returns a context carrying the operator's bearer token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token stored by ContextWithToken.
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to one backend service rooted at a base URL.
type Client struct {
	name     string
	baseURL  string
	http     *http.Client
	bearer   bool
	logger   *zap.Logger
	observer Observer
	encoder  *form.Encoder
}

// Option configures a Client.
type Option func(*Client)

// WithBearer makes the client send the context token as an Authorization header.
func WithBearer() Option {
	return func(c *Client) { c.bearer = true }
}

// WithHTTPClient overrides the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger attaches a logger for debug traces of each call.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New builds a client for the named backend.
func New(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  zap.NewNop(),
		encoder: form.NewEncoder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the backend label used in logs and metrics.
func (c *Client) Name() string { return c.name }

// BaseURL returns the backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// Response is a fully read backend response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Do sends a request built from the arguments and returns the read response.
// Non-2xx answers come back as *StatusError and transport failures as *TransportError.
func (c *Client) Do(ctx context.Context, method, path string, query interface{}, body io.Reader, contentType string) (*Response, error) {
	target, err := c.resolve(path, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.name, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.bearer {
		if token := TokenFromContext(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.Header, reqID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, 0, time.Since(start))
		c.logger.Debug("upstream request failed",
			zap.String("client", c.name),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &TransportError{Client: c.name, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.observe(method, resp.StatusCode, elapsed)
	if err != nil {
		return nil, &TransportError{Client: c.name, Method: method, Path: path, Err: err}
	}

	c.logger.Debug("upstream request",
		zap.String("client", c.name),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", elapsed),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Client:      c.name,
			Method:      method,
			Path:        path,
			Status:      resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        payload,
		}
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: payload}, nil
}

// JSON sends in (when non-nil) as a JSON body and decodes the answer into out (when non-nil).
func (c *Client) JSON(ctx context.Context, method, path string, query, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", c.name, err)
		}
		body = bytes.NewReader(encoded)
		contentType = contentTypeJSON
	}

	resp, err := c.Do(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	return decode(resp.Body, out)
}

// File is one uploaded part of a multipart request.
type File struct {
	Field    string
	Filename string
	Content  []byte
}

// Multipart sends fields and files as multipart/form-data and decodes the answer into out.
func (c *Client) Multipart(ctx context.Context, method, path string, fields map[string]string, files []File, out interface{}) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		header.Set("Content-Type", mimetype.Detect(f.Content).String())
		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("write part %s: %w", f.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	resp, err := c.Do(ctx, method, path, nil, buf, writer.FormDataContentType())
	if err != nil {
		return err
	}
	return decode(resp.Body, out)
}

// Blob is a binary download.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Blob performs a GET and returns the raw payload.
func (c *Client) Blob(ctx context.Context, path string, query interface{}) (*Blob, error) {
	resp, err := c.Do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}

	blob := &Blob{Data: resp.Body, ContentType: resp.Header.Get("Content-Type")}
	if blob.ContentType == "" || strings.HasPrefix(blob.ContentType, "application/octet-stream") {
		blob.ContentType = mimetype.Detect(resp.Body).String()
	}
	if disposition := resp.Header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			blob.Filename = params["filename"]
		}
	}
	return blob, nil
}

func (c *Client) resolve(path string, query interface{}) (string, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if query == nil {
		return target, nil
	}

	var values url.Values
	switch q := query.(type) {
	case url.Values:
		values = q
	default:
		encoded, err := c.encoder.Encode(query)
		if err != nil {
			return "", fmt.Errorf("encode %s query: %w", c.name, err)
		}
		values = encoded
	}
	if len(values) == 0 {
		return target, nil
	}
	return target + "?" + values.Encode(), nil
}

func (c *Client) observe(method string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(c.name, method, status, d)
	}
}

func decode(body []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
