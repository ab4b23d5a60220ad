package view

import (
	"context"
	"encoding/json"
	"sync"
)

type call struct {
	Method string
	Path   string
	Body   any
}

type response struct {
	value any
	err   error
}

// fakeGateway answers from a table keyed by "METHOD path" and records calls.
type fakeGateway struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []call
	// hooks run before a response is returned, keyed like responses
	hooks map[string]func()
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		responses: map[string]response{},
		hooks:     map[string]func(){},
	}
}

func (f *fakeGateway) on(method, path string, value any, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = response{value: value, err: err}
}

func (f *fakeGateway) answer(method, path string, body, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{Method: method, Path: path, Body: body})
	resp := f.responses[method+" "+path]
	hook := f.hooks[method+" "+path]
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if resp.err != nil {
		return resp.err
	}
	if out != nil && resp.value != nil {
		b, _ := json.Marshal(resp.value)
		return json.Unmarshal(b, out)
	}
	return nil
}

func (f *fakeGateway) Get(ctx context.Context, path string, out any) error {
	return f.answer("GET", path, nil, out)
}

func (f *fakeGateway) Post(ctx context.Context, path string, body, out any) error {
	return f.answer("POST", path, body, out)
}

func (f *fakeGateway) Put(ctx context.Context, path string, body, out any) error {
	return f.answer("PUT", path, body, out)
}

func (f *fakeGateway) Delete(ctx context.Context, path string) error {
	return f.answer("DELETE", path, nil, nil)
}

func (f *fakeGateway) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeGateway) count(method, path string) int {
	n := 0
	for _, c := range f.recorded() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// fakeStream hands the payloads to the handler and then blocks until cancelled.
type fakeStream struct {
	payloads [][]byte
	closed   chan struct{}
}

func (s *fakeStream) Stream(ctx context.Context, handle func([]byte)) error {
	for _, p := range s.payloads {
		handle(p)
	}
	<-ctx.Done()
	close(s.closed)
	return ctx.Err()
}
