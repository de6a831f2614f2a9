package monitor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfreeman451/unradar/pkg/alerts"
	"github.com/mfreeman451/unradar/pkg/api"
	"github.com/mfreeman451/unradar/pkg/config"
	"github.com/mfreeman451/unradar/pkg/coordinator"
	"github.com/mfreeman451/unradar/pkg/db"
	"github.com/mfreeman451/unradar/pkg/exporter"
	"github.com/mfreeman451/unradar/pkg/metrics"
	"github.com/mfreeman451/unradar/pkg/models"
)

// graphqlStub answers the negotiation, identity, and parity documents
// so setup-path tests can run against a real transport.
type graphqlStub struct {
	*httptest.Server

	mu      sync.Mutex
	apiKeys []string
	refused map[string]bool
}

func newGraphQLStub(t *testing.T) *graphqlStub {
	t.Helper()

	stub := &graphqlStub{refused: make(map[string]bool)}

	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		var req struct {
			Query string `json:"query"`
		}

		_ = json.Unmarshal(body, &req)

		stub.mu.Lock()
		stub.apiKeys = append(stub.apiKeys, r.Header.Get("x-api-key"))
		stub.mu.Unlock()

		var data string

		switch {
		case strings.Contains(req.Query, "query ApiVersion"):
			data = `{"info":{"versions":{"core":{"api":"4.20.1"}}}}`
		case strings.Contains(req.Query, "query ServerInfo"):
			data = `{"server":{"name":"tower","localurl":"http://tower.local"},` +
				`"info":{"versions":{"core":{"unraid":"7.0.1"}}}}`
		case strings.Contains(req.Query, "mutation StartParityCheck"):
			data = stub.parityAnswer("start")
		case strings.Contains(req.Query, "mutation PauseParityCheck"):
			data = stub.parityAnswer("pause")
		case strings.Contains(req.Query, "mutation ResumeParityCheck"):
			data = stub.parityAnswer("resume")
		case strings.Contains(req.Query, "mutation CancelParityCheck"):
			data = stub.parityAnswer("cancel")
		default:
			data = `{}`
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":` + data + `}`))
	}))

	t.Cleanup(stub.Close)

	return stub
}

func (g *graphqlStub) refuse(action string) {
	g.mu.Lock()
	g.refused[action] = true
	g.mu.Unlock()
}

func (g *graphqlStub) parityAnswer(action string) string {
	g.mu.Lock()
	refused := g.refused[action]
	g.mu.Unlock()

	accepted := "true"
	if refused {
		accepted = "false"
	}

	return `{"parityCheck":{"` + action + `":` + accepted + `}}`
}

func (g *graphqlStub) lastAPIKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.apiKeys) == 0 {
		return ""
	}

	return g.apiKeys[len(g.apiKeys)-1]
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	collector := metrics.NewManager(models.MetricsConfig{Enabled: true, Retention: 16})

	return NewService(Config{}, nil, collector, nil, nil)
}

func TestConnectServerAndParityActions(t *testing.T) {
	stub := newGraphQLStub(t)
	svc := newTestService(t)

	handle, err := svc.connectServer(context.Background(), ServerConfig{
		ID:           "tower",
		Endpoint:     stub.URL,
		APIKey:       "secret",
		PollInterval: config.Duration(time.Minute),
	})
	require.NoError(t, err)

	assert.Equal(t, "4.20.1", handle.client.APIVersion())
	assert.Equal(t, "secret", stub.lastAPIKey())

	svc.mu.Lock()
	svc.servers["tower"] = handle
	svc.mu.Unlock()

	require.NoError(t, svc.ParityCheckAction(context.Background(), "tower", "start"))
	require.NoError(t, svc.ParityCheckAction(context.Background(), "tower", "cancel"))

	stub.refuse("pause")
	assert.Error(t, svc.ParityCheckAction(context.Background(), "tower", "pause"))

	assert.ErrorIs(t, svc.ParityCheckAction(context.Background(), "tower", "bounce"),
		errUnknownParityAction)
	assert.ErrorIs(t, svc.ParityCheckAction(context.Background(), "ghost", "start"),
		api.ErrServerNotFound)
}

func TestUpdateCredentialReachesTransport(t *testing.T) {
	stub := newGraphQLStub(t)
	svc := newTestService(t)

	handle, err := svc.connectServer(context.Background(), ServerConfig{
		ID:           "tower",
		Endpoint:     stub.URL,
		APIKey:       "old-key",
		PollInterval: config.Duration(time.Minute),
	})
	require.NoError(t, err)

	svc.mu.Lock()
	svc.servers["tower"] = handle
	svc.mu.Unlock()

	require.NoError(t, svc.UpdateCredential(context.Background(), "tower", "fresh-key"))
	require.NoError(t, svc.ParityCheckAction(context.Background(), "tower", "start"))

	assert.Equal(t, "fresh-key", stub.lastAPIKey())
}

func TestUnknownServerIsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Status("ghost")
	assert.ErrorIs(t, err, api.ErrServerNotFound)

	_, err = svc.Snapshot("ghost")
	assert.ErrorIs(t, err, api.ErrServerNotFound)

	_, err = svc.Events("ghost", 10)
	assert.ErrorIs(t, err, api.ErrServerNotFound)

	assert.ErrorIs(t, svc.RequestRefresh("ghost"), api.ErrServerNotFound)
	assert.ErrorIs(t, svc.UpdateCredential(context.Background(), "ghost", "k"),
		api.ErrServerNotFound)
	assert.ErrorIs(t,
		svc.InvokeMutation(context.Background(), "ghost", models.ClassVMs, "vm1", coordinator.ActionStart),
		api.ErrServerNotFound)

	assert.Empty(t, svc.ServerIDs())
	assert.Nil(t, svc.MetricsHistory("ghost"))
}

func TestRegisterFollowsAppearancesAndRemovals(t *testing.T) {
	ctrl := gomock.NewController(t)
	database := db.NewMockService(ctrl)
	alerter := alerts.NewMockAlertService(ctrl)
	exp := exporter.NewMockSnapshotExporter(ctrl)

	collector := metrics.NewManager(models.MetricsConfig{Enabled: true, Retention: 8})
	svc := NewService(Config{}, database, collector, []alerts.AlertService{alerter}, exp)

	query := coordinator.NewMockQueryClient(ctrl)
	query.EXPECT().APIVersion().Return("4.20.1").AnyTimes()
	query.EXPECT().Metrics(gomock.Any()).
		Return(models.Metrics{CPUPercent: 12, MemoryPercent: 34}, nil).Times(2)
	query.EXPECT().Array(gomock.Any()).
		Return(models.Array{State: models.ArrayStarted}, nil).Times(2)
	gomock.InOrder(
		query.EXPECT().VMs(gomock.Any()).Return(map[string]models.VirtualMachine{
			"vm1": {ID: "vm1", Name: "win11", State: "RUNNING"},
		}, nil),
		query.EXPECT().VMs(gomock.Any()).Return(map[string]models.VirtualMachine{}, nil),
	)

	handle := &serverHandle{
		cfg: ServerConfig{ID: "tower", PollInterval: config.Duration(time.Minute), MonitorVMs: true},
		coord: coordinator.New(coordinator.Config{
			ServerID:     "tower",
			PollInterval: time.Minute,
			MonitorVMs:   true,
		}, query, models.ServerInfo{Name: "tower"}),
	}

	var events []db.ResourceEvent

	database.EXPECT().StoreMetricsSample(gomock.Any()).Return(nil).Times(2)
	database.EXPECT().UpdateServerStatus(gomock.Any()).Return(nil).Times(2)
	database.EXPECT().StoreResourceEvent(gomock.Any()).
		DoAndReturn(func(ev *db.ResourceEvent) error {
			events = append(events, *ev)
			return nil
		}).Times(2)

	exp.EXPECT().Export(gomock.Any(), "tower", gomock.Any()).Return(nil).Times(2)

	var removalAlert *alerts.WebhookAlert

	alerter.EXPECT().IsEnabled().Return(true)
	alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *alerts.WebhookAlert) error {
			removalAlert = a
			return nil
		})

	svc.register(handle)

	_, err := handle.coord.Refresh(context.Background())
	require.NoError(t, err)

	_, err = handle.coord.Refresh(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, string(coordinator.EventAppeared), events[0].Event)
	assert.Equal(t, models.ClassVMs, events[0].Class)
	assert.Equal(t, "vm1", events[0].ResourceID)
	assert.Equal(t, string(coordinator.EventRemoved), events[1].Event)
	assert.Equal(t, "vm1", events[1].ResourceID)

	require.NotNil(t, removalAlert)
	assert.Equal(t, alerts.Info, removalAlert.Level)
	assert.Contains(t, removalAlert.Title, "vm1")
	assert.Equal(t, "tower", removalAlert.ServerID)

	history := svc.MetricsHistory("tower")
	require.Len(t, history, 2)
	assert.InEpsilon(t, 12.0, history[0].CPUPercent, 0.001)

	snap, err := svc.Snapshot("tower")
	require.NoError(t, err)
	assert.Empty(t, snap.VMs)

	status, err := svc.Status("tower")
	require.NoError(t, err)
	assert.Equal(t, "4.20.1", status.APIVersion)
	assert.Empty(t, status.Degraded)
}

func TestSnapshotDegradedTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	database := db.NewMockService(ctrl)
	alerter := alerts.NewMockAlertService(ctrl)

	collector := metrics.NewManager(models.MetricsConfig{Enabled: true, Retention: 8})
	svc := NewService(Config{}, database, collector, []alerts.AlertService{alerter}, nil)

	query := coordinator.NewMockQueryClient(ctrl)
	query.EXPECT().APIVersion().Return("4.20.1").AnyTimes()

	handle := &serverHandle{
		cfg: ServerConfig{ID: "tower", PollInterval: config.Duration(time.Minute)},
		coord: coordinator.New(coordinator.Config{
			ServerID:     "tower",
			PollInterval: time.Minute,
		}, query, models.ServerInfo{Name: "tower"}),
	}

	database.EXPECT().StoreMetricsSample(gomock.Any()).Return(nil).AnyTimes()
	database.EXPECT().UpdateServerStatus(gomock.Any()).Return(nil).AnyTimes()

	var titles []string

	alerter.EXPECT().IsEnabled().Return(true).Times(2)
	alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *alerts.WebhookAlert) error {
			titles = append(titles, a.Title)
			return nil
		}).Times(2)

	degraded := &models.Snapshot{
		Server:    models.ServerInfo{Name: "tower"},
		Degraded:  map[models.ResourceClass]bool{models.ClassVMs: true},
		UpdatedAt: time.Now(),
	}
	svc.onSnapshot(handle, degraded)

	fresh := &models.Snapshot{Server: models.ServerInfo{Name: "tower"}, UpdatedAt: time.Now()}
	svc.onSnapshot(handle, fresh)
	svc.onSnapshot(handle, fresh)

	assert.Equal(t, []string{"Polling Degraded", "Polling Recovered"}, titles)
}

func TestStartStopWithUnreachableServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	database := db.NewMockService(ctrl)
	alerter := alerts.NewMockAlertService(ctrl)
	alerter.EXPECT().IsEnabled().Return(false).AnyTimes()

	cfg := Config{
		Retention: config.Duration(time.Hour),
		Servers: []ServerConfig{{
			ID:           "tower",
			Endpoint:     "http://127.0.0.1:1",
			APIKey:       "k",
			PollInterval: config.Duration(time.Minute),
		}},
	}

	collector := metrics.NewManager(models.MetricsConfig{Enabled: true, Retention: 8})
	svc := NewService(cfg, database, collector, []alerts.AlertService{alerter}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)

	go func() {
		errCh <- svc.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after cancel")
	}

	require.NoError(t, svc.Stop(context.Background()))
}

func TestLiveFeedRecordsPairedSamples(t *testing.T) {
	ctrl := gomock.NewController(t)
	collector := metrics.NewMockMetricCollector(ctrl)

	feed := &liveFeed{serverID: "tower", collector: collector}

	// CPU alone does not record; the first sample waits for memory.
	feed.onCPU(json.RawMessage(`{"metrics":{"cpu":{"percentTotal":41.5}}}`))

	collector.EXPECT().AddSample("tower", gomock.Any(), 41.5, 72.25, gomock.Nil())
	feed.onMemory(json.RawMessage(
		`{"metrics":{"memory":{"free":1024,"total":4096,"percentTotal":72.25,"active":2048,"available":1024}}}`))

	collector.EXPECT().AddSample("tower", gomock.Any(), 50.0, 72.25, gomock.Nil())
	feed.onCPU(json.RawMessage(`{"metrics":{"cpu":{"percentTotal":50}}}`))

	// Malformed payloads are dropped without recording.
	feed.onCPU(json.RawMessage(`{"metrics":`))
	feed.onMemory(json.RawMessage(`[]`))
}
