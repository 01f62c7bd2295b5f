package estimation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// ErrEstimationFailed is returned for any non-success reply from the flow
var ErrEstimationFailed = errors.New("failed to calculate meal nutrients")

// AuthHeader carries the static API key on every request
const AuthHeader = "miraauthorization"

// Estimator turns a free-text meal description into parsed macros
type Estimator interface {
	Estimate(ctx context.Context, description string) (*Result, error)
}

// Client calls the remote nutrition flow
type Client struct {
	apiURL  string
	version string
	apiKey  string
	http    *http.Client
	logger  *logrus.Logger
}

var _ Estimator = (*Client)(nil)

// NewClient creates a flow client. A nil httpClient uses a plain http.Client.
func NewClient(apiURL, version, apiKey string, httpClient *http.Client, logger *logrus.Logger) (*Client, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("estimation API URL must be set")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("estimation API key must be set")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		apiURL:  apiURL,
		version: version,
		apiKey:  apiKey,
		http:    httpClient,
		logger:  logger,
	}, nil
}

type flowRequest struct {
	Input flowInput `json:"input"`
}

type flowInput struct {
	Diet string `json:"diet"`
}

type flowResponse struct {
	Result string `json:"result"`
}

// Estimate sends the description to the flow and parses its markdown reply
func (c *Client) Estimate(ctx context.Context, description string) (*Result, error) {
	body, err := json.Marshal(flowRequest{Input: flowInput{Diet: description}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AuthHeader, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEstimationFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrEstimationFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(data),
		}).Warn("estimation request failed")
		return nil, fmt.Errorf("%w: status %d", ErrEstimationFailed, resp.StatusCode)
	}

	var out flowResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrEstimationFailed, err)
	}

	result := Parse(description, out.Result)
	if !result.Complete() {
		c.logger.WithField("analysis", result.Analysis).Debug("estimation reply missing macro fields")
	}
	return result, nil
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid estimation API URL: %w", err)
	}
	if c.version != "" {
		q := u.Query()
		q.Set("version", c.version)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
