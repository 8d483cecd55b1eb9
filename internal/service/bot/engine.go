package bot

import (
	"math/rand"
	"time"

	"github.com/iamasit07/connect4-solo/internal/domain"
)

// RandomBot picks the computer's column uniformly among the legal ones.
// It is not safe for concurrent use; every game owns its own bot.
type RandomBot struct {
	rng *rand.Rand
}

func NewRandomBot(rng *rand.Rand) *RandomBot {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomBot{rng: rng}
}

// NewSeededBot returns a bot whose choices are reproducible for a given seed.
func NewSeededBot(seed int64) *RandomBot {
	return NewRandomBot(rand.New(rand.NewSource(seed)))
}

// ChooseColumn returns a random column with a free cell, or ErrNoLegalMove
// when the board is full.
func (b *RandomBot) ChooseColumn(board *domain.Board) (int, error) {
	validColumns := board.GetValidMoves()
	if len(validColumns) == 0 {
		return -1, domain.ErrNoLegalMove
	}

	return validColumns[b.rng.Intn(len(validColumns))], nil
}
