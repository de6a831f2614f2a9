// Package grpc pkg/grpc/server_test.go
package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerStartStop(t *testing.T) {
	server := NewServer("127.0.0.1:0")

	server.SetServing("monitor")
	server.SetNotServing("api")

	errChan := make(chan error, 1)

	go func() {
		errChan <- server.Start()
	}()

	// Give the listener a moment to come up, then stop.
	time.Sleep(100 * time.Millisecond)
	server.Stop(context.Background())

	select {
	case err := <-errChan:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServerBadAddress(t *testing.T) {
	server := NewServer("treehouse:notaport")

	err := server.Start()
	assert.Error(t, err)
}

func TestServerOptions(t *testing.T) {
	server := NewServer("127.0.0.1:0",
		WithMaxRecvSize(1<<20),
		WithMaxSendSize(1<<20),
	)

	require.NotNil(t, server)
	assert.Len(t, server.serverOpts, 5)
}
