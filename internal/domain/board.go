package domain

import "strings"

// Board is a fixed 6x7 grid. Row 0 is the top row, so pieces
// land at the highest free row index of a column.
type Board struct {
	cells [Rows][Columns]Player
	fill  [Columns]int
}

func NewBoard() Board {
	return Board{}
}

func IsValidColumn(column int) bool {
	return column >= 0 && column < Columns
}

func IsValidCell(row, column int) bool {
	return row >= 0 && row < Rows && IsValidColumn(column)
}

// Cell returns the owner of a cell, or Empty when it is free or off the board.
func (b *Board) Cell(row, column int) Player {
	if !IsValidCell(row, column) {
		return Empty
	}
	return b.cells[row][column]
}

func (b *Board) FillCount(column int) int {
	if !IsValidColumn(column) {
		return 0
	}
	return b.fill[column]
}

func (b *Board) IsValidMove(column int) bool {
	return IsValidColumn(column) && b.fill[column] < Rows
}

// DropDisk puts a piece for player into the lowest free row of column
// and returns that row.
func (b *Board) DropDisk(column int, player Player) (int, error) {
	if !IsValidColumn(column) {
		return -1, ErrInvalidColumn
	}
	if b.fill[column] == Rows {
		return -1, ErrColumnFull
	}

	row := Rows - 1 - b.fill[column]
	b.cells[row][column] = player
	b.fill[column]++
	return row, nil
}

// TopRow returns the row of the topmost piece in column, -1 if the column is empty.
func (b *Board) TopRow(column int) int {
	if !IsValidColumn(column) || b.fill[column] == 0 {
		return -1
	}
	return Rows - b.fill[column]
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b.fill[c] < Rows {
			return false
		}
	}
	return true
}

// GetValidMoves lists the columns that still accept a piece, left to right.
func (b *Board) GetValidMoves() []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.fill[col] < Rows {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

func (b *Board) CountDisks() int {
	total := 0
	for _, n := range b.fill {
		total += n
	}
	return total
}

// Grid converts the board to plain ints for the wire, row 0 first.
func (b *Board) Grid() [][]int {
	grid := make([][]int, Rows)
	for r := range grid {
		grid[r] = make([]int, Columns)
		for c := range grid[r] {
			grid[r][c] = int(b.cells[r][c])
		}
	}
	return grid
}

// String draws the board as ascii art, mostly for logs and test failures.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("+-0-1-2-3-4-5-6-+\n")
	for r := 0; r < Rows; r++ {
		sb.WriteString("| ")
		for c := 0; c < Columns; c++ {
			switch b.cells[r][c] {
			case Human:
				sb.WriteString("X ")
			case Computer:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+---------------+")
	return sb.String()
}

// this counts the disks of player in one direction, not including the start cell
func (b *Board) CountDiskInDirection(row, column, deltaRow, deltaCol int, player Player) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for IsValidCell(r, c) && b.cells[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
