// Package lifecycle pkg/lifecycle/server.go runs the monitor's
// long-lived components and handles coordinated shutdown.
package lifecycle

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfreeman451/unradar/pkg/grpc"
)

const (
	MaxRecvSize     = 4 * 1024 * 1024 // 4MB
	MaxSendSize     = 4 * 1024 * 1024 // 4MB
	ShutdownTimeout = 10 * time.Second
)

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for running the monitor.
type ServerOptions struct {
	GRPCAddr          string
	ServiceName       string
	Services          []Service
	EnableHealthCheck bool
}

// RunServer starts the services and blocks until a signal, a service
// error, or context cancellation. Services are stopped in reverse
// start order.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	var grpcServer *grpc.Server

	if opts.EnableHealthCheck && opts.GRPCAddr != "" {
		grpcServer = grpc.NewServer(opts.GRPCAddr,
			grpc.WithMaxRecvSize(MaxRecvSize),
			grpc.WithMaxSendSize(MaxSendSize),
		)
	}

	// Create error channel for service errors
	errChan := make(chan error, len(opts.Services)+1)

	for _, svc := range opts.Services {
		go func(svc Service) {
			if err := svc.Start(ctx); err != nil {
				select {
				case errChan <- err:
				default:
					log.Printf("Service error: %v", err)
				}
			}
		}(svc)
	}

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				select {
				case errChan <- err:
				default:
					log.Printf("gRPC server error: %v", err)
				}
			}
		}()

		grpcServer.SetServing(opts.ServiceName)
	}

	return handleShutdown(ctx, cancel, grpcServer, opts.Services, errChan)
}

func handleShutdown(
	ctx context.Context, cancel context.CancelFunc, grpcServer *grpc.Server, services []Service, errChan chan error) error {
	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var svcErr error

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)
		svcErr = fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")
		svcErr = ctx.Err()
	}

	// Create timeout context for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	// Cancel main context
	cancel()

	if grpcServer != nil {
		grpcServer.Stop(shutdownCtx)
	}

	// Stop services in reverse start order
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(shutdownCtx); err != nil {
			log.Printf("Error during service shutdown: %v", err)

			if svcErr == nil {
				svcErr = fmt.Errorf("shutdown error: %w", err)
			}
		}
	}

	return svcErr
}
