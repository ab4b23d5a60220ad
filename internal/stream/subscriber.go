package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultRetry = 3 * time.Second
	maxEventSize = 4 << 20
)

var ErrUnexpectedStatus = errors.New("unexpected stream status")

// Subscriber reads a server-sent event stream and hands every message payload
// to a handler. It reconnects after the server's retry hint until the context
// is cancelled, the same way a browser EventSource does.
type Subscriber struct {
	url        string
	httpClient *http.Client
	retry      time.Duration
}

func NewSubscriber(url string, httpClient *http.Client, retry time.Duration) *Subscriber {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if retry <= 0 {
		retry = DefaultRetry
	}
	return &Subscriber{url: url, httpClient: httpClient, retry: retry}
}

// Stream blocks until ctx is done. The connection is always closed before it
// returns.
func (s *Subscriber) Stream(ctx context.Context, handle func([]byte)) error {
	for {
		err := s.connect(ctx, handle)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			log.Printf("inventory stream disconnected: %v (retrying in %s)", err, s.retry)
		}

		timer := time.NewTimer(s.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (s *Subscriber) connect(ctx context.Context, handle func([]byte)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxEventSize)

	var (
		event string
		data  []string
	)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			// blank line dispatches the event
			if len(data) > 0 && (event == "" || event == "message") {
				handle([]byte(strings.Join(data, "\n")))
			}
			event, data = "", nil
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "data":
			data = append(data, value)
		case "event":
			event = value
		case "retry":
			if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
				s.retry = time.Duration(ms) * time.Millisecond
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stream: %w", err)
	}
	return nil
}
