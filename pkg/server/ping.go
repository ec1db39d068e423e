package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const pingTimeout = time.Minute

// PingUntil polls baseURL/api/ping every second and calls callback on the
// first successful response. It gives up after a minute or when ctx is done.
func PingUntil(ctx context.Context, baseURL string, callback func()) {
	pingURL := baseURL + "/api/ping"
	timeout := time.NewTimer(pingTimeout)
	defer timeout.Stop()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {

		case <-timeout.C:
			log.Warnf("ping hits %s timeout", pingTimeout)
			return

		case <-ctx.Done():
			return

		case <-ticker.C:
			var response map[string]interface{}
			if err := getJSON(ctx, pingURL, &response); err == nil {
				callback()
				return
			}
		}
	}
}

func getJSON(ctx context.Context, url string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	return json.NewDecoder(resp.Body).Decode(data)
}
