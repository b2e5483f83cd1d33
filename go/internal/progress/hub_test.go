package progress

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Subscribers() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastsToSubscribers(t *testing.T) {
	hub := NewHub(DefaultHubConfig())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Start(ctx)

	server := httptest.NewServer(hub)
	defer server.Close()

	all := dial(t, server, "")
	defer all.Close()
	onlyLaLiga := dial(t, server, "?league=140")
	defer onlyLaLiga.Close()
	waitForSubscribers(t, hub, 2)

	sink := hub.Sink()
	sink(Event{LeagueExternalID: "39", Step: StepLeague, Message: "Syncing Premier League"})
	sink(Event{LeagueExternalID: "140", Step: StepTeams, Message: "Fetching teams"})

	var got Event
	require.NoError(t, all.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := all.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "39", got.LeagueExternalID)

	_, data, err = all.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "140", got.LeagueExternalID)

	require.NoError(t, onlyLaLiga.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err = onlyLaLiga.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "140", got.LeagueExternalID, "filtered subscriber skips other leagues")
	assert.Equal(t, StepTeams, got.Step)
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub := NewHub(DefaultHubConfig())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Start(ctx)

	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server, "")
	waitForSubscribers(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForSubscribers(t, hub, 0)
}
