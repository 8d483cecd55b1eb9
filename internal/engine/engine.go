// Package engine is the call surface a presentation layer drives: it owns one
// round of human versus computer and exposes only values to its caller.
//
// The engine is synchronous and holds no locks; callers that share an Engine
// between goroutines must serialise access themselves.
package engine

import (
	"math/rand"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
)

type Engine struct {
	game *domain.Game
	bot  *bot.RandomBot
}

// New creates an engine whose computer moves are drawn from rng.
// A nil rng falls back to a time-seeded source.
func New(rng *rand.Rand) *Engine {
	return &Engine{
		game: domain.NewGame(),
		bot:  bot.NewRandomBot(rng),
	}
}

func NewSeeded(seed int64) *Engine {
	return New(rand.New(rand.NewSource(seed)))
}

// PlacePiece drops a piece for the current player. A full or out-of-range
// column, or a finished round, returns false and changes nothing.
func (e *Engine) PlacePiece(column int) bool {
	return e.game.PlacePiece(column)
}

// LandingRow is the row of the piece most recently dropped into column.
// It is -1 when the column has no piece.
func (e *Engine) LandingRow(column int) int {
	return e.game.TopRow(column)
}

// HasWon reports whether the piece at (row, column) completes a run of four.
// A true result records the winner and finishes the round.
func (e *Engine) HasWon(row, column int) bool {
	return e.game.HasWon(row, column)
}

// ComputerMove drops a piece for the computer in a random legal column.
// It neither checks for a win nor advances the turn.
func (e *Engine) ComputerMove() (row, column int, err error) {
	if e.game.HasWinner() {
		return -1, -1, domain.ErrRoundFinished
	}

	board := e.game.Board()
	column, err = e.bot.ChooseColumn(&board)
	if err != nil {
		return -1, -1, err
	}

	row, err = e.game.PlaceFor(column, domain.Computer)
	if err != nil {
		return -1, -1, err
	}
	return row, column, nil
}

func (e *Engine) CurrentPlayer() domain.Player {
	return e.game.CurrentPlayer()
}

func (e *Engine) NextPlayer() {
	e.game.NextPlayer()
}

func (e *Engine) HasWinner() bool {
	return e.game.HasWinner()
}

func (e *Engine) Winner() domain.Player {
	return e.game.Winner()
}

func (e *Engine) State() domain.RoundState {
	return e.game.State()
}

func (e *Engine) IsDraw() bool {
	return e.game.IsDraw()
}

func (e *Engine) FillCount(column int) int {
	return e.game.FillCount(column)
}

func (e *Engine) MoveCount() int {
	return e.game.MoveCount()
}

// Board returns a copy; mutating it does not affect the engine.
func (e *Engine) Board() domain.Board {
	return e.game.Board()
}

func (e *Engine) Snapshot() [][]int {
	board := e.game.Board()
	return board.Grid()
}

func (e *Engine) String() string {
	board := e.game.Board()
	return board.String()
}

// Reset clears the board and gives the first move back to the human.
func (e *Engine) Reset() {
	e.game.Reset()
}
