package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPOracle asks a remote validation service. It POSTs the Request as
// JSON and expects a Verdict back
type HTTPOracle struct {
	URL    string
	Client *http.Client
}

func NewHTTPOracle(url string, timeout time.Duration) *HTTPOracle {
	return &HTTPOracle{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (o *HTTPOracle) Validate(ctx context.Context, req Request) (Verdict, error) {
	if v, ok := precheck(req); !ok {
		return v, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("error encoding validation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.URL, bytes.NewReader(body))
	if err != nil {
		return Verdict{}, fmt.Errorf("error building validation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(httpReq)
	if err != nil {
		return Verdict{}, fmt.Errorf("error calling validation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Verdict{}, fmt.Errorf("validation service returned %d", resp.StatusCode)
	}

	var verdict Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return Verdict{}, fmt.Errorf("error decoding validation response: %w", err)
	}
	return verdict, nil
}
