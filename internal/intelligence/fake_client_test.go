package intelligence

import (
	"context"
	"sync"

	"github.com/alexanderramin/buildplan/internal/llm"
)

// fakeClient returns canned text per task. Safe for concurrent use.
type fakeClient struct {
	mu        sync.Mutex
	responses map[llm.TaskType]string
	err       error
	requests  []llm.GenerateRequest
}

func (f *fakeClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.responses[req.Task], Model: "fake"}, nil
}

func (f *fakeClient) Available(context.Context) bool { return f.err == nil }

func (f *fakeClient) calls() []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.GenerateRequest(nil), f.requests...)
}
