// Package store holds the single-user client state: the saved location with
// its last weather snapshot, the user profile, and the cached chat index.
// Writes are last-write-wins with no transactional protection, which is
// acceptable for single-user, single-device state.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tzapp/weather-planner/internal/chat"
	"github.com/tzapp/weather-planner/internal/weather"
)

// ErrNotFound is returned when no record of the requested kind exists.
var ErrNotFound = errors.New("no saved record")

// SavedLocation is the user's pinned location with the weather snapshot that
// was current when it was saved or last refreshed.
type SavedLocation struct {
	ID      string                        `json:"id"`
	Name    string                        `json:"name"`
	Weather weather.NormalizedWeatherData `json:"weatherData"`
	SavedAt time.Time                     `json:"savedAt"`
}

// UserProfile is the single local profile.
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarID  string    `json:"avatarId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Avatar is one selectable profile picture.
type Avatar struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DefaultAvatars are the built-in profile pictures.
var DefaultAvatars = []Avatar{
	{ID: "default", Name: "Default Goat", URL: "/assets/avatars/default.png"},
	{ID: "skiing", Name: "Skiing Goat", URL: "/assets/avatars/skiing.png"},
	{ID: "mascot", Name: "Mascot Goat", URL: "/assets/avatars/mascot.png"},
	{ID: "saved", Name: "Saved Goat", URL: "/assets/avatars/saved.png"},
}

// NewSavedLocation builds a saved-location record with a fresh ID.
func NewSavedLocation(name string, w weather.NormalizedWeatherData, at time.Time) SavedLocation {
	return SavedLocation{
		ID:      uuid.NewString(),
		Name:    name,
		Weather: w,
		SavedAt: at,
	}
}

// ChatIndex is the cached list of saved chats, kept so the chat tab can
// render after a backend outage.
type ChatIndex struct {
	Chats     []chat.Session `json:"chats"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

// MemoryStore is a concurrency-safe in-memory implementation of the client
// state store.
type MemoryStore struct {
	mu        sync.RWMutex
	location  *SavedLocation
	profile   *UserProfile
	chatIndex *ChatIndex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveLocation replaces the saved location wholesale.
func (s *MemoryStore) SaveLocation(loc SavedLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = &loc
}

// Location returns the saved location, or ErrNotFound.
func (s *MemoryStore) Location() (SavedLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.location == nil {
		return SavedLocation{}, ErrNotFound
	}
	return *s.location, nil
}

// RemoveLocation clears the saved location.
func (s *MemoryStore) RemoveLocation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = nil
}

// SaveChatIndex replaces the cached chat index wholesale.
func (s *MemoryStore) SaveChatIndex(idx ChatIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx.Chats = append([]chat.Session(nil), idx.Chats...)
	s.chatIndex = &idx
}

// ChatIndex returns the cached chat index, or ErrNotFound.
func (s *MemoryStore) ChatIndex() (ChatIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.chatIndex == nil {
		return ChatIndex{}, ErrNotFound
	}
	idx := *s.chatIndex
	idx.Chats = append([]chat.Session(nil), idx.Chats...)
	return idx, nil
}

// RemoveChatIndex drops the cache; called after any chat mutation so a stale
// list is never served in place of a fresh one.
func (s *MemoryStore) RemoveChatIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatIndex = nil
}

// SaveProfile replaces the user profile wholesale.
func (s *MemoryStore) SaveProfile(p UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
}

// Profile returns the user profile, creating a default one on first access.
func (s *MemoryStore) Profile() UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		s.profile = &UserProfile{
			ID:        uuid.NewString(),
			Name:      "traveler",
			AvatarID:  DefaultAvatars[0].ID,
			CreatedAt: time.Now(),
		}
	}
	return *s.profile
}
