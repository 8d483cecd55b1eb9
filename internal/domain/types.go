package domain

// Player identifies who owns a cell or whose turn it is.
// The zero value doubles as the empty cell.
type Player int

const (
	Empty    Player = 0
	Human    Player = 1
	Computer Player = 2

	NoPlayer = Empty
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Opponent returns the other side. Empty has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case Human:
		return Computer
	case Computer:
		return Human
	default:
		return Empty
	}
}

func (p Player) String() string {
	switch p {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		return "empty"
	}
}

// RoundState is the state of the current round
type RoundState string

const (
	StateInProgress RoundState = "in_progress"
	StateFinished   RoundState = "finished"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn   Error = "column out of range"
	ErrColumnFull      Error = "column is full"
	ErrNoLegalMove     Error = "no legal move left on the board"
	ErrRoundFinished   Error = "round is already finished"
	ErrNotYourTurn     Error = "it is not the human's turn"
	ErrSessionNotFound Error = "game session not found"
)
