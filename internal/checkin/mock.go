package checkin

import "sync"

// MockLocationProvider is a LocationProvider for tests with a settable result.
type MockLocationProvider struct {
	mu  sync.Mutex
	pos Position
	err error

	CurrentCalls []string
}

func NewMockLocationProvider() *MockLocationProvider {
	return &MockLocationProvider{}
}

// Set makes subsequent Current calls return pos.
func (m *MockLocationProvider) Set(pos Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = pos
	m.err = nil
}

// SetError makes subsequent Current calls fail with err.
func (m *MockLocationProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockLocationProvider) Current(playerID string) (Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentCalls = append(m.CurrentCalls, playerID)
	if m.err != nil {
		return Position{}, m.err
	}
	return m.pos, nil
}

// CheckInCall records the arguments of a MockStore.CheckIn call.
type CheckInCall struct {
	MatchID  string
	PlayerID string
	Lat      float64
	Lng      float64
	Now      int64
}

// MockStore is a mock implementation of the Store interface.
type MockStore struct {
	mu           sync.Mutex
	CheckInFunc  func(matchID, playerID string, lat, lng float64, now int64) error
	CheckInCalls []CheckInCall
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CheckIn(matchID, playerID string, lat, lng float64, now int64) error {
	m.mu.Lock()
	m.CheckInCalls = append(m.CheckInCalls, CheckInCall{MatchID: matchID, PlayerID: playerID, Lat: lat, Lng: lng, Now: now})
	m.mu.Unlock()
	if m.CheckInFunc != nil {
		return m.CheckInFunc(matchID, playerID, lat, lng, now)
	}
	return nil
}

// Calls returns a copy of the recorded CheckIn calls.
func (m *MockStore) Calls() []CheckInCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CheckInCall, len(m.CheckInCalls))
	copy(out, m.CheckInCalls)
	return out
}
