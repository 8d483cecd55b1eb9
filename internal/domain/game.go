package domain

// Game is the state of one round: the board, whose turn it is and
// whether a winning run has been detected.
type Game struct {
	board         Board
	currentPlayer Player
	hasWinner     bool
	winner        Player
	moveCount     int
}

func NewGame() *Game {
	return &Game{
		board:         NewBoard(),
		currentPlayer: Human,
	}
}

// PlacePiece drops a piece for the current player. It returns false, without
// touching the state, when the column is out of range, full, or the round is over.
func (g *Game) PlacePiece(column int) bool {
	_, err := g.PlaceFor(column, g.currentPlayer)
	return err == nil
}

// PlaceFor drops a piece for the given player regardless of whose turn it is.
// Turn order and win detection are left to the caller.
func (g *Game) PlaceFor(column int, player Player) (int, error) {
	if g.hasWinner {
		return -1, ErrRoundFinished
	}

	row, err := g.board.DropDisk(column, player)
	if err != nil {
		return -1, err
	}

	g.moveCount++
	return row, nil
}

// TopRow is the row of the latest piece dropped into column.
func (g *Game) TopRow(column int) int {
	return g.board.TopRow(column)
}

// HasWon checks the lines through (row, column). A winning result finishes the round.
func (g *Game) HasWon(row, column int) bool {
	if !CheckWin(&g.board, row, column) {
		return false
	}

	g.hasWinner = true
	g.winner = g.board.Cell(row, column)
	return true
}

func (g *Game) NextPlayer() {
	g.currentPlayer = g.currentPlayer.Opponent()
}

func (g *Game) CurrentPlayer() Player {
	return g.currentPlayer
}

func (g *Game) HasWinner() bool {
	return g.hasWinner
}

// Winner is the owner of the winning run, NoPlayer while none was found.
func (g *Game) Winner() Player {
	return g.winner
}

func (g *Game) State() RoundState {
	if g.hasWinner {
		return StateFinished
	}
	return StateInProgress
}

// IsDraw is true once every column is full and nobody has won.
func (g *Game) IsDraw() bool {
	return !g.hasWinner && g.board.IsFull()
}

func (g *Game) IsFinished() bool {
	return g.hasWinner || g.board.IsFull()
}

func (g *Game) MoveCount() int {
	return g.moveCount
}

func (g *Game) FillCount(column int) int {
	return g.board.FillCount(column)
}

// Board returns a copy of the board.
func (g *Game) Board() Board {
	return g.board
}

// Reset starts a new round with the human to move.
func (g *Game) Reset() {
	*g = Game{
		board:         NewBoard(),
		currentPlayer: Human,
	}
}
