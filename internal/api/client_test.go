package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"quizzical-service/internal/domain"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

// newTestClient wires a fake transport and records backoff delays instead of
// sleeping through them.
func newTestClient(rt http.RoundTripper, maxRetries int) (*Client, *[]time.Duration) {
	client := NewClient(&http.Client{Transport: rt}, time.Second, maxRetries)
	delays := &[]time.Duration{}
	client.sleep = func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return client, delays
}

func TestGetJSONRetriesTransientFailures(t *testing.T) {
	calls := 0
	client, delays := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		switch calls {
		case 1:
			return jsonResponse(http.StatusBadGateway, ""), nil
		case 2:
			return nil, errors.New("connection reset")
		default:
			return jsonResponse(http.StatusOK, `{"value":42}`), nil
		}
	}), 2)

	var out struct {
		Value int `json:"value"`
	}
	if err := client.GetJSON(context.Background(), "http://example.test/api.php", nil, &out); err != nil {
		t.Fatalf("GetJSON returned error: %v", err)
	}
	if out.Value != 42 {
		t.Fatalf("expected decoded payload, got %+v", out)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(*delays) != len(want) || (*delays)[0] != want[0] || (*delays)[1] != want[1] {
		t.Fatalf("expected backoff delays %v, got %v", want, *delays)
	}
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound} {
		calls := 0
		client, _ := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(status, ""), nil
		}), 2)

		var out map[string]any
		err := client.GetJSON(context.Background(), "http://example.test/api.php", nil, &out)
		var qerr *domain.Error
		if !errors.As(err, &qerr) || qerr.Kind != domain.KindResponse || qerr.Status != status {
			t.Fatalf("status %d: expected response error, got %v", status, err)
		}
		if calls != 1 {
			t.Fatalf("status %d: expected exactly 1 attempt, got %d", status, calls)
		}
	}
}

func TestGetJSONExhaustsRetryBudget(t *testing.T) {
	calls := 0
	client, delays := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusInternalServerError, ""), nil
	}), 2)

	var out map[string]any
	err := client.GetJSON(context.Background(), "http://example.test/api.php", nil, &out)
	var qerr *domain.Error
	if !errors.As(err, &qerr) || qerr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 response error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if len(*delays) != 2 {
		t.Fatalf("expected 2 backoff waits, got %v", *delays)
	}
}

func TestGetJSONTimeoutBecomesTransportError(t *testing.T) {
	client := NewClient(&http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	})}, 10*time.Millisecond, 0)

	var out map[string]any
	err := client.GetJSON(context.Background(), "http://example.test/api.php", nil, &out)
	var qerr *domain.Error
	if !errors.As(err, &qerr) || qerr.Kind != domain.KindTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	if qerr.Message != "Requested timeout" {
		t.Fatalf("expected timeout message, got %q", qerr.Message)
	}
}

func TestGetJSONSetsAcceptHeader(t *testing.T) {
	var accept, custom string
	client, _ := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		accept = r.Header.Get("Accept")
		custom = r.Header.Get("X-Client")
		return jsonResponse(http.StatusOK, `{}`), nil
	}), 0)

	var out map[string]any
	if err := client.GetJSON(context.Background(), "http://example.test/api.php", map[string]string{"X-Client": "quizzical"}, &out); err != nil {
		t.Fatalf("GetJSON returned error: %v", err)
	}
	if accept != "application/json" {
		t.Fatalf("expected Accept application/json, got %q", accept)
	}
	if custom != "quizzical" {
		t.Fatalf("expected custom header forwarded, got %q", custom)
	}
}

func TestGetJSONCallerMayOverrideAccept(t *testing.T) {
	var accept string
	client, _ := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		accept = r.Header.Get("Accept")
		return jsonResponse(http.StatusOK, `{}`), nil
	}), 0)

	var out map[string]any
	if err := client.GetJSON(context.Background(), "http://example.test/api.php", map[string]string{"Accept": "text/plain"}, &out); err != nil {
		t.Fatalf("GetJSON returned error: %v", err)
	}
	if accept != "text/plain" {
		t.Fatalf("expected caller override to win, got %q", accept)
	}
}
