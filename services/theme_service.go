package services

import (
	"context"
	"itsector/types"
	"sync"

	"go.uber.org/zap"
)

// ThemePreferenceKey is the single persisted preference.
const ThemePreferenceKey = "theme"

// PreferenceStore is a small string key/value store for UI preferences.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore keeps preferences for the lifetime of the process.
func NewMemoryStore() PreferenceStore {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

type ThemeServiceI interface {
	Load(ctx context.Context) types.Theme
	Toggle(ctx context.Context, current types.Theme) types.Theme
}

type themeService struct {
	store PreferenceStore
}

func NewThemeService(store PreferenceStore) ThemeServiceI {
	if store == nil {
		store = NewMemoryStore()
	}
	return &themeService{store: store}
}

// Load returns the persisted theme. Anything missing, unreadable or unknown is light.
func (s *themeService) Load(ctx context.Context) types.Theme {
	value, ok, err := s.store.Get(ctx, ThemePreferenceKey)
	if err != nil {
		zap.L().Warn("Error reading theme preference", zap.Error(err))
		return types.ThemeLight
	}
	theme := types.Theme(value)
	if !ok || !theme.Valid() {
		return types.ThemeLight
	}
	return theme
}

// Toggle flips the theme and persists it. A failed write still flips the theme.
func (s *themeService) Toggle(ctx context.Context, current types.Theme) types.Theme {
	next := types.ThemeDark
	if current == types.ThemeDark {
		next = types.ThemeLight
	}
	if err := s.store.Set(ctx, ThemePreferenceKey, string(next)); err != nil {
		zap.L().Error("Error persisting theme preference", zap.Error(err), zap.String("theme", string(next)))
	}
	return next
}
