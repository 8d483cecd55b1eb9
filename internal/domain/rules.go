package domain

// axes are the four alignment directions; each is walked both ways.
var axes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// CheckWin reports whether the piece at (row, column) is part of a run of
// at least ToWin pieces of the same owner. Only lines through that cell are
// scanned, since a new run can only appear through the last placement.
func CheckWin(board *Board, row, column int) bool {
	player := board.Cell(row, column)
	if player == Empty {
		return false
	}

	for _, axis := range axes {
		count := 1
		count += board.CountDiskInDirection(row, column, axis[0], axis[1], player)
		if count >= ToWin {
			return true
		}
		count += board.CountDiskInDirection(row, column, -axis[0], -axis[1], player)
		if count >= ToWin {
			return true
		}
	}

	return false
}
