package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"corpfinityAPI/internal/cache"
	"corpfinityAPI/internal/notification"
)

type fakeTokenStore struct {
	tokens  map[uuid.UUID][]string
	deleted []string
}

func (f *fakeTokenStore) Register(ctx context.Context, userID uuid.UUID, req *notification.RegisterTokenRequest) (*notification.DeviceToken, error) {
	f.tokens[userID] = append(f.tokens[userID], req.Token)
	return &notification.DeviceToken{UserID: userID, Token: req.Token}, nil
}

func (f *fakeTokenStore) Unregister(ctx context.Context, userID uuid.UUID, token string) error {
	return nil
}

func (f *fakeTokenStore) TokensForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return f.tokens[userID], nil
}

func (f *fakeTokenStore) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	f.deleted = append(f.deleted, token)
	remaining := []string{}
	for _, t := range f.tokens[userID] {
		if t != token {
			remaining = append(remaining, t)
		}
	}
	f.tokens[userID] = remaining
	return nil
}

type fakeProvider struct {
	result *notification.PushResult
	err    error
	calls  int
}

func (f *fakeProvider) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (*notification.PushResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestNotificationService(t *testing.T, store tokenStore) *NotificationService {
	t.Helper()
	s := NewNotificationService(nil, &cache.Client{})
	t.Cleanup(s.Stop)
	s.tokens = store
	return s
}

func TestSendNoTokensReturnsEmptyResult(t *testing.T) {
	store := &fakeTokenStore{tokens: map[uuid.UUID][]string{}}
	provider := &fakeProvider{}
	s := newTestNotificationService(t, store)
	s.SetPushProvider(provider)

	result, err := s.Send(context.Background(), uuid.New(), "Title", "Body", nil)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if result.Success != 0 || result.Failure != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for user with no tokens", provider.calls)
	}
}

func TestSendWithoutProviderSkips(t *testing.T) {
	userID := uuid.New()
	store := &fakeTokenStore{tokens: map[uuid.UUID][]string{userID: {"tok-1"}}}
	s := newTestNotificationService(t, store)

	result, err := s.Send(context.Background(), userID, "Title", "Body", nil)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if result.Success != 0 || result.Failure != 0 {
		t.Errorf("expected empty result without provider, got %+v", result)
	}
}

func TestSendTransportOutageAbsorbed(t *testing.T) {
	userID := uuid.New()
	store := &fakeTokenStore{tokens: map[uuid.UUID][]string{userID: {"tok-1", "tok-2"}}}
	provider := &fakeProvider{err: errors.New("fcm unreachable")}
	s := newTestNotificationService(t, store)
	s.SetPushProvider(provider)

	result, err := s.Send(context.Background(), userID, "Title", "Body", nil)
	if err != nil {
		t.Fatalf("transport outage should not surface as an error, got %v", err)
	}
	if result.Failure != 2 {
		t.Errorf("Failure = %d, want 2", result.Failure)
	}
	if len(store.deleted) != 0 {
		t.Errorf("no tokens should be pruned on outage, pruned %v", store.deleted)
	}
}

func TestSendPrunesInvalidTokens(t *testing.T) {
	userID := uuid.New()
	store := &fakeTokenStore{tokens: map[uuid.UUID][]string{userID: {"tok-live", "tok-dead"}}}
	provider := &fakeProvider{result: &notification.PushResult{
		Success:       1,
		Failure:       1,
		InvalidTokens: []string{"tok-dead"},
	}}
	s := newTestNotificationService(t, store)
	s.SetPushProvider(provider)

	result, err := s.Send(context.Background(), userID, "Title", "Body", nil)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if result.Success != 1 || result.Failure != 1 {
		t.Errorf("result = %+v, want success 1 failure 1", result)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "tok-dead" {
		t.Errorf("pruned tokens = %v, want [tok-dead]", store.deleted)
	}
	if len(store.tokens[userID]) != 1 || store.tokens[userID][0] != "tok-live" {
		t.Errorf("remaining tokens = %v, want [tok-live]", store.tokens[userID])
	}
}

func TestSendStoreErrorSurfaces(t *testing.T) {
	s := newTestNotificationService(t, errTokenStore{})
	s.SetPushProvider(&fakeProvider{})

	if _, err := s.Send(context.Background(), uuid.New(), "Title", "Body", nil); err == nil {
		t.Fatal("expected error from failing token store")
	}
}

type errTokenStore struct{}

func (errTokenStore) Register(ctx context.Context, userID uuid.UUID, req *notification.RegisterTokenRequest) (*notification.DeviceToken, error) {
	return nil, errors.New("store down")
}

func (errTokenStore) Unregister(ctx context.Context, userID uuid.UUID, token string) error {
	return errors.New("store down")
}

func (errTokenStore) TokensForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return nil, errors.New("store down")
}

func (errTokenStore) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	return errors.New("store down")
}
