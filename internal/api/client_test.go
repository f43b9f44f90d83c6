// internal/api/client_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfden/werewolf-client/internal/models"
)

func testClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(baseURL, logger)
}

func TestCreateGame(t *testing.T) {
	var gotPath, gotSessionID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotSessionID = body["session_id"]

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"session_id": gotSessionID,
			"status":     "created",
		})
	}))
	defer srv.Close()

	id, err := testClient(srv.URL).CreateGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/games/", gotPath)
	assert.Equal(t, gotSessionID, id)

	_, err = uuid.Parse(gotSessionID)
	assert.NoError(t, err, "client offers a real uuid as session id")
}

func TestCreateGameServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateGame(context.Background())
	assert.Error(t, err)
}

func TestAvailableRooms(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rooms":[
			{"session_id":"a","phase":"NIGHT","round":1,"alive_players":10,"total_players":12,"pending_actions_count":2,"waiting_for_actions":true},
			{"session_id":"b","phase":"DAY","round":3,"alive_players":5,"total_players":12,"pending_actions_count":0,"waiting_for_actions":false}
		]}`))
	}))
	defer srv.Close()

	rooms, err := testClient(srv.URL).AvailableRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/games/available_rooms/", gotPath)
	require.Len(t, rooms, 2)
	assert.Equal(t, "a", rooms[0].SessionID)
	assert.Equal(t, models.PhaseNight, rooms[0].Phase)
	assert.True(t, rooms[0].WaitingForActions)
	assert.Equal(t, 5, rooms[1].AlivePlayers)
}

func TestAvailableRoomsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rooms":[]}`))
	}))
	defer srv.Close()

	rooms, err := testClient(srv.URL).AvailableRooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rooms)
}
