package fielddef

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/utils/safe"
)

// Client fetches field descriptors from the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ DescriptorSource = &Client{}

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

func (c *Client) Fetch(ctx context.Context, tenant types.TenantID, object types.ObjectCode, field types.FieldCode) (*model.FieldDescriptor, error) {
	url := fmt.Sprintf("%s/api/fields/%s/%s", c.baseURL, object, field)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build descriptor request",
			goerr.V("object", object), goerr.V("field", field))
	}
	req.Header.Set("X-Tenant", string(tenant))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch field descriptor",
			goerr.V("tenant", tenant), goerr.V("object", object), goerr.V("field", field))
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read descriptor response",
			goerr.V("object", object), goerr.V("field", field))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.Wrap(model.ErrDescriptorNotFound, errorMessage(body),
			goerr.V("tenant", tenant), goerr.V("object", object), goerr.V("field", field))
	case resp.StatusCode != http.StatusOK:
		return nil, goerr.New(errorMessage(body),
			goerr.V("status", resp.StatusCode),
			goerr.V("object", object),
			goerr.V("field", field))
	}

	var desc model.FieldDescriptor
	if err := json.Unmarshal(body, &desc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode field descriptor",
			goerr.V("object", object), goerr.V("field", field))
	}

	return &desc, nil
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
