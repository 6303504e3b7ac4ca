package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/spottransfer/sptx/internal/services"
	"github.com/spottransfer/sptx/internal/shared"
	tu "github.com/spottransfer/sptx/internal/testing"
)

// These tests live outside the services package so they can reuse the shared
// HTTP test doubles, which themselves depend on services types.

func TestStatusTransport(t *testing.T) {
	t.Run("round trip failure maps to ErrNetworkFailure", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection reset by peer"))}
		svc := services.NewTransferService("http://backend", client)

		_, err := svc.Status(context.Background(), &services.JobHandle{Kind: services.KindTransfer, ID: "t-1"})
		if !errors.Is(err, shared.ErrNetworkFailure) {
			t.Fatalf("expected ErrNetworkFailure, got %v", err)
		}
	})

	t.Run("body read failure maps to ErrNetworkFailure", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: http.Header{}}
		client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}
		svc := services.NewTransferService("http://backend", client)

		_, err := svc.Status(context.Background(), &services.JobHandle{Kind: services.KindTransfer, ID: "t-2"})
		if !errors.Is(err, shared.ErrNetworkFailure) {
			t.Fatalf("expected ErrNetworkFailure, got %v", err)
		}
	})
}
