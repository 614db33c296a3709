package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/haukened/tubegate/internal/block/common/log"
)

// NavClient performs blocked-page dismissals against a running transport.
// Home posts the home-redirect message; Back is carried out by the page
// surface itself, so it only acknowledges.
type NavClient struct {
	baseURL string
	client  *http.Client
	logger  log.Logger
}

func NewNavClient(baseURL string, client *http.Client, logger log.Logger) *NavClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &NavClient{baseURL: baseURL, client: client, logger: logger}
}

func (n *NavClient) Home(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/nav/home", nil)
	if err != nil {
		return fmt.Errorf("build home navigation request: %w", err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send home navigation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("home navigation rejected: status %d", resp.StatusCode)
	}
	return nil
}

func (n *NavClient) Back(ctx context.Context) error {
	n.logger.Debug(nil, "History-back dismissal handled by the page surface")
	return nil
}
