// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/spottransfer/sptx/internal/services"
)

// MockExecutor is a test double for [jobs.Executor] with per-call hooks.
// Unset hooks return zero values.
type MockExecutor struct {
	StartTransferFunc func(ctx context.Context, req *services.TransferRequest) (*services.JobHandle, error)
	StartDeleteFunc   func(ctx context.Context, req *services.DeleteRequest) (*services.JobHandle, error)
	StatusFunc        func(ctx context.Context, handle *services.JobHandle) (*services.JobSnapshot, error)
	CancelFunc        func(ctx context.Context, handle *services.JobHandle) error
	CloneFunc         func(ctx context.Context, req *services.CloneRequest) (*services.CloneResult, error)
}

func (m *MockExecutor) StartTransfer(ctx context.Context, req *services.TransferRequest) (*services.JobHandle, error) {
	if m.StartTransferFunc == nil {
		return &services.JobHandle{Kind: services.KindTransfer, ID: "mock"}, nil
	}
	return m.StartTransferFunc(ctx, req)
}

func (m *MockExecutor) StartDelete(ctx context.Context, req *services.DeleteRequest) (*services.JobHandle, error) {
	if m.StartDeleteFunc == nil {
		return &services.JobHandle{Kind: services.KindDelete, ID: "mock"}, nil
	}
	return m.StartDeleteFunc(ctx, req)
}

func (m *MockExecutor) Status(ctx context.Context, handle *services.JobHandle) (*services.JobSnapshot, error) {
	if m.StatusFunc == nil {
		return &services.JobSnapshot{Status: services.StatusCompleted}, nil
	}
	return m.StatusFunc(ctx, handle)
}

func (m *MockExecutor) Cancel(ctx context.Context, handle *services.JobHandle) error {
	if m.CancelFunc == nil {
		return nil
	}
	return m.CancelFunc(ctx, handle)
}

func (m *MockExecutor) Clone(ctx context.Context, req *services.CloneRequest) (*services.CloneResult, error) {
	if m.CloneFunc == nil {
		return &services.CloneResult{Message: "created"}, nil
	}
	return m.CloneFunc(ctx, req)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
