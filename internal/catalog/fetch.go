package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// httpClient is shared by remote book list fetches.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// FetchCSV downloads the book list CSV from a share URL.
func FetchCSV(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, TransformShareURL(rawURL), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch CSV: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("CSV fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read CSV body: %w", err)
	}

	return string(body), nil
}

// TransformShareURL rewrites a Dropbox share link into a direct-download
// link. Non-Dropbox URLs pass through unchanged.
func TransformShareURL(rawURL string) string {
	if strings.Contains(rawURL, "dl=0") {
		return strings.Replace(rawURL, "dl=0", "dl=1", 1)
	}
	return rawURL
}
