package snapsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every backend call. Image analysis and generation
// are slow, so this is generous.
const DefaultTimeout = 60 * time.Second

// SDKClient is a client for the SnapTranslate backend.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the backend rooted at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}
