/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package grpc pkg/grpc/server.go exposes liveness over the standard
// gRPC health protocol so orchestrators can probe the monitor.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServerOption is a function type that modifies Server configuration.
type ServerOption func(*Server)

var (
	errInternalError = fmt.Errorf("internal error")
	errServerStopped = errors.New("server stopped")
)

const (
	shutdownTimer = 5 * time.Second
)

// Server wraps a gRPC server carrying the health service. Components
// report their serving state through SetServing/SetNotServing.
type Server struct {
	srv         *grpc.Server
	healthCheck *health.Server
	addr        string
	mu          sync.Mutex
	services    map[string]struct{}
	serverOpts  []grpc.ServerOption
}

// NewServer creates a new gRPC health server for the given address.
func NewServer(addr string, opts ...ServerOption) *Server {
	defaultOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor,
			RecoveryInterceptor,
		),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     10 * time.Minute,
			MaxConnectionAge:      24 * time.Hour,
			MaxConnectionAgeGrace: 5 * time.Minute,
			Time:                  120 * time.Second,
			Timeout:               20 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             120 * time.Second,
			PermitWithoutStream: true,
		}),
	}

	s := &Server{
		addr:       addr,
		services:   make(map[string]struct{}),
		serverOpts: defaultOpts,
	}

	// Apply custom options
	for _, opt := range opts {
		opt(s)
	}

	s.srv = grpc.NewServer(s.serverOpts...)

	s.healthCheck = health.NewServer()
	healthpb.RegisterHealthServer(s.srv, s.healthCheck)

	// Enable reflection for debugging
	reflection.Register(s.srv)

	return s
}

// WithMaxRecvSize sets the maximum receive message size.
func WithMaxRecvSize(size int) ServerOption {
	return func(s *Server) {
		s.serverOpts = append(s.serverOpts, grpc.MaxRecvMsgSize(size))
	}
}

// WithMaxSendSize sets the maximum send message size.
func WithMaxSendSize(size int) ServerOption {
	return func(s *Server) {
		s.serverOpts = append(s.serverOpts, grpc.MaxSendMsgSize(size))
	}
}

// SetServing marks a named service healthy.
func (s *Server) SetServing(service string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.services[service] = struct{}{}
	s.healthCheck.SetServingStatus(service, healthpb.HealthCheckResponse_SERVING)
}

// SetNotServing marks a named service unhealthy without removing it.
func (s *Server) SetNotServing(service string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.services[service] = struct{}{}
	s.healthCheck.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)
}

// Start starts the gRPC server and blocks until it stops.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	log.Printf("gRPC health server listening on %s", s.addr)

	if err := s.srv.Serve(lis); err != nil && !errors.Is(err, errServerStopped) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// set a timeout on the context
	_, cancel := context.WithTimeout(ctx, shutdownTimer)
	defer cancel()

	// Flip every known service to NOT_SERVING before stopping
	for service := range s.services {
		s.healthCheck.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	// Give some time for graceful shutdown
	stopped := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		log.Printf("gRPC server stopped gracefully")
	case <-time.After(shutdownTimer):
		log.Printf("gRPC server shutdown timed out, forcing stop")
		s.srv.Stop()
	}
}

// LoggingInterceptor logs RPC calls.
func LoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Printf("gRPC call: %s Duration: %v Error: %v",
		info.FullMethod,
		time.Since(start),
		err)

	return resp, err
}

// RecoveryInterceptor handles panics in RPC handlers.
func RecoveryInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in %s: %v", info.FullMethod, r)

			err = errInternalError
		}
	}()

	return handler(ctx, req)
}
