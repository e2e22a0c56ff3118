package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"focusroom/internal/model"
	syncproto "focusroom/internal/sync"
)

// Client implements the sync protocol's Remote interface over the
// focusroom HTTP API with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Authenticated() bool {
	return c.token != ""
}

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, email, password string) (*model.User, error) {
	return c.authenticate(ctx, "/api/auth/register", email, password)
}

func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	return c.authenticate(ctx, "/api/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*model.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, path, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp.User, nil
}

func (c *Client) FetchProfile(ctx context.Context) (*model.Profile, error) {
	var resp struct {
		Profile model.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

func (c *Client) UpdateCoins(ctx context.Context, coins int) error {
	return c.do(ctx, http.MethodPut, "/api/profile/coins", map[string]int{"coins": coins}, nil)
}

func (c *Client) SetRoomPublic(ctx context.Context, public bool) error {
	return c.do(ctx, http.MethodPut, "/api/profile/public", map[string]bool{"isRoomPublic": public}, nil)
}

func (c *Client) RecordSession(ctx context.Context, minutes int) error {
	return c.do(ctx, http.MethodPost, "/api/sessions", map[string]int{"durationMinutes": minutes}, nil)
}

func (c *Client) FetchRoom(ctx context.Context) (*model.RoomState, error) {
	var resp struct {
		Room model.RoomState `json:"room"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/room", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Room, nil
}

func (c *Client) UpsertRoom(ctx context.Context, state model.RoomState) error {
	return c.do(ctx, http.MethodPut, "/api/room", state, nil)
}

func (c *Client) FetchDailyStat(ctx context.Context, day string) (*model.DailyStat, error) {
	var resp struct {
		Stat model.DailyStat `json:"stat"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/stats/daily/"+day, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Stat, nil
}

func (c *Client) UpsertDailyStat(ctx context.Context, stat model.DailyStat) error {
	return c.do(ctx, http.MethodPut, "/api/stats/daily/"+stat.Day, map[string]int{
		"count":   stat.Count,
		"minutes": stat.Minutes,
	}, nil)
}

func (c *Client) Leaderboard(ctx context.Context, by string) ([]model.LeaderboardEntry, error) {
	var resp struct {
		Entries []model.LeaderboardEntry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/social/leaderboard?by="+by, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return syncproto.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
