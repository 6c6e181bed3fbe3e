package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/utils/safe"
)

// Client is a source and saver speaking the REST metadata API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ Source = &Client{}
	_ Saver  = &Client{}
)

// ClientOption is a functional option for client configuration
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a REST client for the given base URL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("base URL is required")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) documentURL(path types.SourcePath) string {
	return fmt.Sprintf("%s/api/metadata/%s", c.baseURL, path)
}

// Fetch retrieves and decodes the wire-shape document
func (c *Client) Fetch(ctx context.Context, tenant types.TenantID, path types.SourcePath) (*metadoc.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentURL(path), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build metadata request", goerr.V("path", path))
	}
	req.Header.Set("X-Tenant", string(tenant))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch metadata document",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read metadata response", goerr.V("path", path))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.Wrap(model.ErrDocumentNotFound, errorMessage(body),
			goerr.V("tenant", tenant), goerr.V("path", path))
	case resp.StatusCode != http.StatusOK:
		return nil, goerr.New(errorMessage(body),
			goerr.V("status", resp.StatusCode),
			goerr.V("tenant", tenant),
			goerr.V("path", path))
	}

	doc, err := metadoc.Decode(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode metadata document", goerr.V("path", path))
	}

	return doc, nil
}

// Save submits a full replacement and decodes the echoed document
func (c *Client) Save(ctx context.Context, tenant types.TenantID, path types.SourcePath, doc *metadoc.Document) (*metadoc.Document, error) {
	payload, err := metadoc.Encode(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode metadata document", goerr.V("path", path))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.documentURL(path), bytes.NewReader(payload))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build metadata request", goerr.V("path", path))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant", string(tenant))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save metadata document",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read metadata response", goerr.V("path", path))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New(errorMessage(body),
			goerr.V("status", resp.StatusCode),
			goerr.V("tenant", tenant),
			goerr.V("path", path))
	}

	saved, err := metadoc.Decode(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode saved metadata document", goerr.V("path", path))
	}

	return saved, nil
}

// errorMessage extracts the "message" field of an error payload, falling
// back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if len(body) == 0 {
		return "request failed"
	}
	return string(body)
}
