package main

import (
	"context"
	"net/http"
	"time"
)

// NewAdminClient builds an http.Client for tilectl's blocking admin calls,
// swapped from the teacher's grpc dial (NewSchedulerConn) to a plain HTTP
// client since tile-ingestord/tile-intaked expose a status surface over
// HTTP (internal/adminhttp), not gRPC.
func NewAdminClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// DefaultDeadlineContext bounds a single admin call.
func DefaultDeadlineContext() (context.Context, func()) {
	return context.WithDeadline(context.Background(), time.Now().Add(30*time.Second))
}
