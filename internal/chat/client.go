// Package chat is the thin client for the external conversational assistant
// backend. The backend owns all chat logic; this client only proxies its
// session CRUD surface.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/tzapp/weather-planner/internal/httpx"
)

// Message is one turn of a chat session.
type Message struct {
	Role      string     `json:"role"` // user | assistant | system
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Session is a saved chat with its history.
type Session struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SessionID    string    `json:"session_id"`
	Messages     []Message `json:"messages"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
	MessageCount int       `json:"message_count,omitempty"`
}

// SavedRef identifies a chat the backend just saved or renamed.
type SavedRef struct {
	ChatID string `json:"chat_id"`
	Title  string `json:"title"`
}

// Client talks to the chat backend over HTTP with the shared resilience
// policy.
type Client struct {
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewClient(client *http.Client, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff,
		},
		circuit: httpx.NewBreaker("chat-backend"),
	}
}

// List returns all saved chats.
func (c *Client) List(ctx context.Context) ([]Session, error) {
	var payload struct {
		Chats []Session `json:"chats"`
	}
	if err := c.do(ctx, http.MethodGet, "/chat/list", nil, &payload); err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return payload.Chats, nil
}

// Save persists the backend session under a title; an empty title gets a
// timestamped default.
func (c *Client) Save(ctx context.Context, sessionID, title string) (SavedRef, error) {
	if title == "" {
		title = "Chat " + time.Now().Format("2006-01-02 15:04")
	}

	body := map[string]string{
		"session_id": sessionID,
		"title":      title,
	}

	var ref SavedRef
	if err := c.do(ctx, http.MethodPost, "/chat/save", body, &ref); err != nil {
		return SavedRef{}, fmt.Errorf("save chat: %w", err)
	}
	return ref, nil
}

// Load fetches one saved chat with its messages.
func (c *Client) Load(ctx context.Context, chatID string) (Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodGet, "/chat/load/"+chatID, nil, &session); err != nil {
		return Session{}, fmt.Errorf("load chat %s: %w", chatID, err)
	}
	return session, nil
}

// Delete removes a saved chat.
func (c *Client) Delete(ctx context.Context, chatID string) error {
	if err := c.do(ctx, http.MethodDelete, "/chat/delete/"+chatID, nil, nil); err != nil {
		return fmt.Errorf("delete chat %s: %w", chatID, err)
	}
	return nil
}

// Rename changes a saved chat's title.
func (c *Client) Rename(ctx context.Context, chatID, title string) (SavedRef, error) {
	body := map[string]string{"title": title}

	var ref SavedRef
	if err := c.do(ctx, http.MethodPut, "/chat/update/"+chatID, body, &ref); err != nil {
		return SavedRef{}, fmt.Errorf("rename chat %s: %w", chatID, err)
	}
	return ref, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	buildRequest := func() (*http.Request, error) {
		var reader *bytes.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			reader = bytes.NewReader(raw)
		} else {
			reader = bytes.NewReader(nil)
		}

		req, err := http.NewRequest(method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
