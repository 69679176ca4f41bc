package match

import "sync"

// MockStore is a hand-written mock implementation of MatchStore for testing.
// It records calls and delegates to the optional Func fields.
type MockStore struct {
	mu sync.Mutex

	CreateMatchFunc             func(m *Match) error
	GetMatchFunc                func(matchID string) (*Match, error)
	GetAllMatchesFunc           func() ([]*Match, error)
	GetMatchesForProcessingFunc func() ([]*Match, error)
	UpdateStatusFunc            func(matchID string, status Status) error
	MarkBookingNotifiedFunc     func(matchID string, ts int64) error
	AddParticipantFunc          func(matchID, playerID string) error
	AddPaidParticipantFunc      func(matchID, playerID string, fee float64, txnID string, now int64) error
	GetParticipantFunc          func(matchID, playerID string) (*Participant, error)
	ListParticipantsFunc        func(matchID string) ([]Participant, error)
	CheckInFunc                 func(matchID, playerID string, lat, lng float64, now int64) error
	SubmitRatingFunc            func(r *Rating) error
	ListRatingsFunc             func(matchID string) ([]Rating, error)

	CreateMatchCalls        []*Match
	UpdateStatusCalls       []UpdateStatusCall
	CheckInCalls            []CheckInCall
	AddPaidParticipantCalls []AddPaidParticipantCall
	SubmitRatingCalls       []*Rating
	MarkNotifiedCalls       []string
	ClearCalls              int
	ClearMatchCalls         []string
}

// AddPaidParticipantCall holds the arguments for a call to AddPaidParticipant.
type AddPaidParticipantCall struct {
	MatchID  string
	PlayerID string
	Fee      float64
}

// UpdateStatusCall holds the arguments for a call to UpdateStatus.
type UpdateStatusCall struct {
	MatchID string
	Status  Status
}

// CheckInCall holds the arguments for a call to CheckIn.
type CheckInCall struct {
	MatchID  string
	PlayerID string
	Lat, Lng float64
	Now      int64
}

// NewMock creates a new mock MatchStore.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateMatch(match *Match) error {
	m.mu.Lock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetAllMatches() ([]*Match, error) {
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) GetMatchesForProcessing() ([]*Match, error) {
	if m.GetMatchesForProcessingFunc != nil {
		return m.GetMatchesForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateStatus(matchID string, status Status) error {
	m.mu.Lock()
	m.UpdateStatusCalls = append(m.UpdateStatusCalls, UpdateStatusCall{MatchID: matchID, Status: status})
	m.mu.Unlock()
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(matchID, status)
	}
	return nil
}

func (m *MockStore) MarkBookingNotified(matchID string, ts int64) error {
	m.mu.Lock()
	m.MarkNotifiedCalls = append(m.MarkNotifiedCalls, matchID)
	m.mu.Unlock()
	if m.MarkBookingNotifiedFunc != nil {
		return m.MarkBookingNotifiedFunc(matchID, ts)
	}
	return nil
}

func (m *MockStore) AddParticipant(matchID, playerID string) error {
	if m.AddParticipantFunc != nil {
		return m.AddParticipantFunc(matchID, playerID)
	}
	return nil
}

func (m *MockStore) AddPaidParticipant(matchID, playerID string, fee float64, txnID string, now int64) error {
	m.mu.Lock()
	m.AddPaidParticipantCalls = append(m.AddPaidParticipantCalls, AddPaidParticipantCall{MatchID: matchID, PlayerID: playerID, Fee: fee})
	m.mu.Unlock()
	if m.AddPaidParticipantFunc != nil {
		return m.AddPaidParticipantFunc(matchID, playerID, fee, txnID, now)
	}
	return nil
}

func (m *MockStore) GetParticipant(matchID, playerID string) (*Participant, error) {
	if m.GetParticipantFunc != nil {
		return m.GetParticipantFunc(matchID, playerID)
	}
	return nil, ErrNotRegistered
}

func (m *MockStore) ListParticipants(matchID string) ([]Participant, error) {
	if m.ListParticipantsFunc != nil {
		return m.ListParticipantsFunc(matchID)
	}
	return nil, nil
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

func (m *MockStore) SubmitRating(r *Rating) error {
	m.mu.Lock()
	m.SubmitRatingCalls = append(m.SubmitRatingCalls, r)
	m.mu.Unlock()
	if m.SubmitRatingFunc != nil {
		return m.SubmitRatingFunc(r)
	}
	return nil
}

func (m *MockStore) ListRatings(matchID string) ([]Rating, error) {
	if m.ListRatingsFunc != nil {
		return m.ListRatingsFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
}

func (m *MockStore) ClearMatch(matchID string) {
	m.mu.Lock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
	m.mu.Unlock()
}
