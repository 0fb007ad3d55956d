package harness

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const healthPollInterval = time.Millisecond * 100

// WaitForService polls a URL until it returns a 200 status or the timeout expires. It
// prints progress to the output writer, one dot per attempt.
func WaitForService(ctx context.Context, transport Transport, url string, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := transport.Send(ctx, Request{Method: http.MethodGet, URL: url, Header: make(http.Header)})
		if err == nil {
			fmt.Fprintln(output)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("service health check returned status code %d", resp.StatusCode)
			}
			if len(resp.Body) > 0 {
				fmt.Fprintf(output, "Health check returned: %s\n", string(resp.Body))
			}
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(output)
			return ctx.Err()
		case <-time.After(healthPollInterval):
		}
	}
}
