package match

// MatchStore defines the interface for interacting with match data.
type MatchStore interface {
	CreateMatch(m *Match) error
	GetMatch(matchID string) (*Match, error)
	GetAllMatches() ([]*Match, error)
	GetMatchesForProcessing() ([]*Match, error)
	UpdateStatus(matchID string, status Status) error
	MarkBookingNotified(matchID string, ts int64) error

	AddParticipant(matchID, playerID string) error
	AddPaidParticipant(matchID, playerID string, fee float64, txnID string, now int64) error
	GetParticipant(matchID, playerID string) (*Participant, error)
	ListParticipants(matchID string) ([]Participant, error)
	CheckIn(matchID, playerID string, lat, lng float64, now int64) error

	SubmitRating(r *Rating) error
	ListRatings(matchID string) ([]Rating, error)

	Clear()
	ClearMatch(matchID string)
}
