package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/calendar", r.Header.Get("Accept"))
		_, _ = w.Write([]byte("BEGIN:VEVENT\nSUMMARY:Yoga\nEND:VEVENT\n"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), DefaultFetcherConfig(), nil)
	body, err := f.Fetch(context.Background(), srv.URL+"/feed.ics")
	require.NoError(t, err)
	assert.Contains(t, body, "SUMMARY:Yoga")
}

func TestFetcher_RejectsNonHTTP(t *testing.T) {
	f := NewFetcher(nil, DefaultFetcherConfig(), nil)
	_, err := f.Fetch(context.Background(), "file:///etc/passwd")
	assert.Error(t, err)
}

func TestFetcher_OpensBreakerAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), FetcherConfig{FailureThreshold: 2, OpenTimeout: time.Minute}, nil)
	ctx := context.Background()

	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	_, err = f.Fetch(ctx, srv.URL)
	require.Error(t, err)

	_, err = f.Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}
