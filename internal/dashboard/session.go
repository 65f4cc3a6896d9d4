package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// APIKeySetting is the settings key under which the marketstack access key is persisted.
const APIKeySetting = "marketstack_api_key"

// KeyStore is durable key/value storage for session settings.
type KeyStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Session holds the little state the dashboard keeps between requests:
// the access key and the last successfully fetched stock list.
type Session struct {
	mu     sync.RWMutex
	store  KeyStore
	apiKey string
	stocks []StockRecord
}

// NewSession initializes a session from durable storage.
func NewSession(ctx context.Context, store KeyStore) (*Session, error) {
	s := &Session{store: store}
	if store == nil {
		return s, nil
	}
	key, ok, err := store.Get(ctx, APIKeySetting)
	if err != nil {
		return nil, fmt.Errorf("loading api key: %w", err)
	}
	if ok {
		s.apiKey = key
	}
	return s, nil
}

// APIKey returns the current access key.
func (s *Session) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

// SaveAPIKey validates, persists and activates a new access key.
func (s *Session) SaveAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return InputError("Please enter a valid API key")
	}
	if s.store != nil {
		if err := s.store.Set(ctx, APIKeySetting, key); err != nil {
			return fmt.Errorf("saving api key: %w", err)
		}
	}
	s.mu.Lock()
	s.apiKey = key
	s.mu.Unlock()
	return nil
}

// Stocks returns a copy of the last fetched stock list.
func (s *Session) Stocks() []StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StockRecord, len(s.stocks))
	copy(out, s.stocks)
	return out
}

func (s *Session) setStocks(records []StockRecord) {
	cp := make([]StockRecord, len(records))
	copy(cp, records)
	s.mu.Lock()
	s.stocks = cp
	s.mu.Unlock()
}

func (s *Session) clearStocks() {
	s.mu.Lock()
	s.stocks = nil
	s.mu.Unlock()
}
