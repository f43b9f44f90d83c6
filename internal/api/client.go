// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wolfden/werewolf-client/internal/models"
)

// Routes on the game server. StartGame exists server-side but the client
// starts games over the realtime channel once joined, so it is never called
// here.
const (
	routeCreateGame     = "/api/games/"
	routeAvailableRooms = "/api/games/available_rooms/"
	routeStartGame      = "/api/games/%s/start_game/"
)

// Client talks to the game server's HTTP endpoints. The authoritative game
// engine lives behind them; this side only creates sessions and lists rooms.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// NewClient builds an HTTP API client for the given base URL, without a
// trailing slash.
func NewClient(baseURL string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// CreateGame asks the server for a new session. The client supplies a fresh
// UUID as the session id; the server echoes the id it actually stored.
func (c *Client) CreateGame(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"session_id": uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+routeCreateGame, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create game: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("create game: server returned %s", resp.Status)
	}

	var out struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("create game: response carried no session_id")
	}

	c.logger.WithField("session", out.SessionID).Info("created game session")
	return out.SessionID, nil
}

// AvailableRooms fetches the current joinable sessions. The result is a fresh
// list every call; callers must not retain it across polls.
func (c *Client) AvailableRooms(ctx context.Context) ([]models.RoomSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+routeAvailableRooms, nil)
	if err != nil {
		return nil, fmt.Errorf("build rooms request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list rooms: server returned %s", resp.Status)
	}

	var out struct {
		Rooms []models.RoomSummary `json:"rooms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode rooms response: %w", err)
	}
	return out.Rooms, nil
}
