package round

import (
	"fmt"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/engine"
)

const (
	MsgYourTurn     = "Click a column to place a piece."
	MsgColumnFull   = "That column is full. Choose a different column."
	MsgHumanWins    = "Congratulations! You've won!"
	MsgComputerWins = "Sorry, but the computer's beat you..."
	MsgDraw         = "The board is full. It's a draw."
)

// Move is one placed piece.
type Move struct {
	Player domain.Player `json:"player"`
	Row    int           `json:"row"`
	Column int           `json:"column"`
}

// TurnResult describes what happened after the human picked a column.
type TurnResult struct {
	HumanMove    *Move         `json:"humanMove,omitempty"`
	ComputerMove *Move         `json:"computerMove,omitempty"`
	ColumnFull   bool          `json:"columnFull"`
	Finished     bool          `json:"finished"`
	Draw         bool          `json:"draw"`
	Winner       domain.Player `json:"winner"`
	Message      string        `json:"message"`
}

// Status is a read-only view of the round.
type Status struct {
	Board         [][]int           `json:"board"`
	CurrentPlayer domain.Player     `json:"currentPlayer"`
	State         domain.RoundState `json:"state"`
	Winner        domain.Player     `json:"winner"`
	Draw          bool              `json:"draw"`
	MoveCount     int               `json:"moveCount"`
	Message       string            `json:"message"`
}

// Round runs the place, check, hand-over sequence for a human against the
// computer on top of an Engine.
type Round struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *Round {
	return &Round{engine: e}
}

func NewSeeded(seed int64) *Round {
	return New(engine.NewSeeded(seed))
}

// PlayTurn plays the human's piece in column and, unless that ends the
// round, answers with the computer's piece.
func (r *Round) PlayTurn(column int) (TurnResult, error) {
	e := r.engine

	if e.HasWinner() || e.IsDraw() {
		return TurnResult{}, domain.ErrRoundFinished
	}
	if e.CurrentPlayer() != domain.Human {
		return TurnResult{}, domain.ErrNotYourTurn
	}
	if !domain.IsValidColumn(column) {
		return TurnResult{}, fmt.Errorf("column %d: %w", column, domain.ErrInvalidColumn)
	}

	if !e.PlacePiece(column) {
		return TurnResult{ColumnFull: true, Message: MsgColumnFull}, nil
	}

	row := e.LandingRow(column)
	result := TurnResult{
		HumanMove: &Move{Player: domain.Human, Row: row, Column: column},
		Message:   MsgYourTurn,
	}

	if e.HasWon(row, column) {
		return finish(result, domain.Human), nil
	}
	if e.IsDraw() {
		return draw(result), nil
	}

	e.NextPlayer()

	computerRow, computerColumn, err := e.ComputerMove()
	if err != nil {
		// the draw check above makes this unreachable; hand the turn back anyway
		e.NextPlayer()
		return result, fmt.Errorf("computer move: %w", err)
	}
	result.ComputerMove = &Move{Player: domain.Computer, Row: computerRow, Column: computerColumn}

	if e.HasWon(computerRow, computerColumn) {
		return finish(result, domain.Computer), nil
	}

	e.NextPlayer()

	if e.IsDraw() {
		return draw(result), nil
	}
	return result, nil
}

func finish(result TurnResult, winner domain.Player) TurnResult {
	result.Finished = true
	result.Winner = winner
	if winner == domain.Human {
		result.Message = MsgHumanWins
	} else {
		result.Message = MsgComputerWins
	}
	return result
}

func draw(result TurnResult) TurnResult {
	result.Finished = true
	result.Draw = true
	result.Message = MsgDraw
	return result
}

// Reset starts a fresh round with the human to move.
func (r *Round) Reset() {
	r.engine.Reset()
}

func (r *Round) Status() Status {
	e := r.engine
	status := Status{
		Board:         e.Snapshot(),
		CurrentPlayer: e.CurrentPlayer(),
		State:         e.State(),
		Winner:        e.Winner(),
		Draw:          e.IsDraw(),
		MoveCount:     e.MoveCount(),
		Message:       MsgYourTurn,
	}

	switch {
	case status.Winner == domain.Human:
		status.Message = MsgHumanWins
	case status.Winner == domain.Computer:
		status.Message = MsgComputerWins
	case status.Draw:
		status.State = domain.StateFinished
		status.Message = MsgDraw
	}
	return status
}

// String is the board as ascii art.
func (r *Round) String() string {
	return r.engine.String()
}
