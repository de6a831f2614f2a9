/*-
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

package graphql

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientExecute(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantData  string
		wantErr   bool
		errCheck  func(t *testing.T, err error)
		variables map[string]interface{}
	}{
		{
			name: "successful query",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "secret", r.Header.Get("x-api-key"))
				assert.NotEmpty(t, r.Header.Get("Origin"))

				var req request
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Contains(t, req.Query, "query")

				_, _ = w.Write([]byte(`{"data":{"online":true}}`))
			},
			wantData: `{"online":true}`,
		},
		{
			name: "variables are forwarded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var req request
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "vm-1", req.Variables["id"])

				_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
			},
			variables: map[string]interface{}{"id": "vm-1"},
			wantData:  `{"ok":true}`,
		},
		{
			name: "server reported error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"errors":[{"message":"field not found"}]}`))
			},
			wantErr: true,
			errCheck: func(t *testing.T, err error) {
				t.Helper()

				var respErr *ResponseError

				require.ErrorAs(t, err, &respErr)
				assert.Contains(t, respErr.Error(), "field not found")
				assert.False(t, IsUnauthorized(err))
			},
		},
		{
			name: "unauthenticated extension code",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"errors":[{"message":"bad key","extensions":{"code":"UNAUTHENTICATED"}}]}`))
			},
			wantErr: true,
			errCheck: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, IsUnauthorized(err))
			},
		},
		{
			name: "http unauthorized status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: true,
			errCheck: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, IsUnauthorized(err))
			},
		},
		{
			name: "http server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr: true,
			errCheck: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, errHTTPStatus)
			},
		},
		{
			name: "empty data payload",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"data":null}`))
			},
			wantErr: true,
			errCheck: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, errEmptyResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client, err := NewClient(srv.URL, "secret", true)
			require.NoError(t, err)

			data, err := client.Execute(context.Background(), `query Test { online }`, tt.variables)
			if tt.wantErr {
				require.Error(t, err)

				if tt.errCheck != nil {
					tt.errCheck(t, err)
				}

				return
			}

			require.NoError(t, err)
			assert.JSONEq(t, tt.wantData, string(data))
		})
	}
}

func TestClientUpgradesToHTTPS(t *testing.T) {
	var tlsHits, plainHits int32

	tlsSrv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&tlsHits, 1)
		_, _ = w.Write([]byte(`{"data":{"secure":true}}`))
	}))
	defer tlsSrv.Close()

	plainSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&plainHits, 1)
		w.Header().Set("Location", tlsSrv.URL+graphqlPath)
		w.WriteHeader(http.StatusPermanentRedirect)
	}))
	defer plainSrv.Close()

	client, err := NewClient(plainSrv.URL, "secret", true)
	require.NoError(t, err)

	// The redirect lands on a server with an untrusted certificate, so
	// this exercises both the HTTPS upgrade and the verification retry.
	data, err := client.Execute(context.Background(), `query Test { secure }`, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"secure":true}`, string(data))

	assert.Equal(t, int32(1), atomic.LoadInt32(&plainHits))
	assert.Equal(t, int32(1), atomic.LoadInt32(&tlsHits))
	assert.Equal(t, tlsSrv.URL+graphqlPath, client.Endpoint())
	assert.True(t, client.Insecure())

	// Subsequent requests go straight to the upgraded endpoint.
	_, err = client.Execute(context.Background(), `query Test { secure }`, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&plainHits))
	assert.Equal(t, int32(2), atomic.LoadInt32(&tlsHits))
}

func TestClientRedirectLoop(t *testing.T) {
	var srvURL string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", srvURL+graphqlPath)
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	srvURL = srv.URL

	client, err := NewClient(srv.URL, "secret", true)
	require.NoError(t, err)

	_, err = client.Execute(context.Background(), `query Test { online }`, nil)
	assert.ErrorIs(t, err, errRedirectLoop)
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	endpoint := srv.URL
	srv.Close()

	client, err := NewClient(endpoint, "secret", true)
	require.NoError(t, err)

	_, err = client.Execute(context.Background(), `query Test { online }`, nil)
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClientTimeoutIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(250 * time.Millisecond)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "secret", true, WithTimeout(30*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Execute(context.Background(), `query Test { online }`, nil)
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

func TestClientUpdateAPIKey(t *testing.T) {
	var lastKey atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastKey.Store(r.Header.Get("x-api-key"))
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "old-key", true)
	require.NoError(t, err)

	_, err = client.Execute(context.Background(), `query Test { ok }`, nil)
	require.NoError(t, err)
	assert.Equal(t, "old-key", lastKey.Load())

	client.UpdateAPIKey("new-key")

	_, err = client.Execute(context.Background(), `query Test { ok }`, nil)
	require.NoError(t, err)
	assert.Equal(t, "new-key", lastKey.Load())
}

func TestNewClientRejectsBadEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{name: "no scheme", endpoint: "tower.local"},
		{name: "unsupported scheme", endpoint: "ftp://tower.local"},
		{name: "missing host", endpoint: "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.endpoint, "secret", true)
			assert.Error(t, err)
		})
	}
}

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("request failed: %w", &url.Error{
		Op:  "Post",
		URL: "https://tower.local/graphql",
		Err: x509.UnknownAuthorityError{},
	})

	assert.True(t, IsTLSUntrusted(wrapped))
	assert.False(t, IsUnreachable(wrapped))
	assert.False(t, IsUnauthorized(wrapped))

	assert.False(t, IsTLSUntrusted(errors.New("plain")))
	assert.False(t, IsUnreachable(nil))

	authErr := fmt.Errorf("%w: key rejected", ErrUnauthorized)
	assert.True(t, IsUnauthorized(authErr))
}
