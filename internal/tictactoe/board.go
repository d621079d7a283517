package tictactoe

import (
	"fmt"
	"strings"
)

const (
	DefaultRows    = 3
	DefaultColumns = 3

	minWinLength = 2
)

// Config describes the board geometry. Zero values select the defaults:
// a 3x3 board and a win length equal to the shorter side.
type Config struct {
	Rows      int `yaml:"rows" json:"rows"`
	Columns   int `yaml:"columns" json:"columns"`
	WinLength int `yaml:"win-length" json:"win_length"`
}

type direction struct {
	dRow, dColumn int
}

var directions = [...]direction{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // main diagonal
	{1, -1}, // anti-diagonal
}

// Board is a rows x columns grid of pieces stored row-major.
//
// A Board is always consistent: the piece counts differ by at most one and at
// most one piece holds a winning run. Once a winner exists the board is locked.
type Board struct {
	cells     []Piece
	rows      int
	columns   int
	winLength int
	winner    Piece
}

// NewBoard parses grid into a Board. A nil or empty grid yields an empty board
// of the configured size.
func NewBoard(grid [][]string, conf Config) (*Board, error) {
	pieces := make([][]Piece, len(grid))
	for row, symbols := range grid {
		pieces[row] = make([]Piece, len(symbols))
		for column, symbol := range symbols {
			piece, err := ParsePiece(symbol)
			if err != nil {
				return nil, fmt.Errorf("%w at row %d, column %d", err, row, column)
			}
			pieces[row][column] = piece
		}
	}

	return NewBoardFromPieces(pieces, conf)
}

// NewBoardFromPieces validates grid against the rules of alternating play and
// returns a Board holding a copy of it.
func NewBoardFromPieces(grid [][]Piece, conf Config) (*Board, error) {
	if len(grid) == 0 {
		empty, err := emptyGrid(conf)
		if err != nil {
			return nil, err
		}
		grid = empty
	}

	rows, columns := len(grid), len(grid[0])
	for row, pieces := range grid {
		if len(pieces) != columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, row 0 has %d",
				ErrInconsistentRowLength, row, len(pieces), columns)
		}
	}

	if columns == 0 {
		return nil, fmt.Errorf("%w: rows have no cells", ErrInvalidDimensions)
	}

	if (conf.Rows != 0 && conf.Rows != rows) || (conf.Columns != 0 && conf.Columns != columns) {
		return nil, fmt.Errorf("%w: configured %dx%d, got %dx%d grid",
			ErrInvalidDimensions, conf.Rows, conf.Columns, rows, columns)
	}

	board := &Board{
		cells:   make([]Piece, 0, rows*columns),
		rows:    rows,
		columns: columns,
	}

	for row, pieces := range grid {
		for column, piece := range pieces {
			if piece > O {
				return nil, fmt.Errorf("%w: piece %d at row %d, column %d",
					ErrInvalidSymbol, piece, row, column)
			}
			board.cells = append(board.cells, piece)
		}
	}

	countX, countO := board.Count(X), board.Count(O)
	if countX-countO > 1 || countO-countX > 1 {
		return nil, fmt.Errorf("%w: X=%d, O=%d", ErrInvalidPieceCount, countX, countO)
	}

	maxWinLength := min(rows, columns)
	board.winLength = conf.WinLength
	if board.winLength == 0 {
		board.winLength = maxWinLength
	}

	if board.winLength < minWinLength || board.winLength > maxWinLength {
		return nil, fmt.Errorf("%w: %d is not between %d and %d",
			ErrInvalidWinLength, board.winLength, minWinLength, maxWinLength)
	}

	winner, err := board.searchWinner()
	if err != nil {
		return nil, err
	}
	board.winner = winner

	return board, nil
}

func emptyGrid(conf Config) ([][]Piece, error) {
	rows, columns := conf.Rows, conf.Columns
	if rows == 0 {
		rows = DefaultRows
	}
	if columns == 0 {
		columns = DefaultColumns
	}

	if rows < 0 || columns < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, columns)
	}

	grid := make([][]Piece, rows)
	for row := range grid {
		grid[row] = make([]Piece, columns)
	}

	return grid, nil
}

func (that *Board) Rows() int {
	return that.rows
}

func (that *Board) Columns() int {
	return that.columns
}

func (that *Board) WinLength() int {
	return that.winLength
}

// Winner returns the piece holding a winning run, if any.
func (that *Board) Winner() (Piece, bool) {
	return that.winner, that.winner != Empty
}

// Count returns how many cells hold piece.
func (that *Board) Count(piece Piece) int {
	count := 0
	for _, cell := range that.cells {
		if cell == piece {
			count++
		}
	}

	return count
}

// PlayerMustStart returns the piece that has to move next when the counts
// force it. With equal counts either piece may move and ok is false.
func (that *Board) PlayerMustStart() (Piece, bool) {
	countX, countO := that.Count(X), that.Count(O)

	switch {
	case countX > countO:
		return O, true
	case countO > countX:
		return X, true
	default:
		return Empty, false
	}
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that *Board) Get(index int) (Piece, error) {
	if !that.validIndex(index) {
		return Empty, that.indexError(index)
	}

	return that.cells[index], nil
}

// Set places piece on an empty cell and updates the winner from that cell only.
func (that *Board) Set(index int, piece Piece) error {
	if !that.validIndex(index) {
		return that.indexError(index)
	}

	if that.winner != Empty {
		return fmt.Errorf("%w: %s already won", ErrGameOver, that.winner)
	}

	if that.cells[index] != Empty {
		return fmt.Errorf("%w: cell %d holds %s", ErrOccupiedCell, index, that.cells[index])
	}

	if piece != X && piece != O {
		return fmt.Errorf("%w: cannot place %q", ErrInvalidSymbol, piece.String())
	}

	that.cells[index] = piece
	that.winner = that.winnerAt(index)

	return nil
}

// Copy returns a snapshot that shares no state with the board.
func (that *Board) Copy() *Board {
	cells := make([]Piece, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		cells:     cells,
		rows:      that.rows,
		columns:   that.columns,
		winLength: that.winLength,
		winner:    that.winner,
	}
}

// Grid renders the board as rows of symbols, the format NewBoard accepts.
func (that *Board) Grid() [][]string {
	grid := make([][]string, that.rows)
	for row := range grid {
		grid[row] = make([]string, that.columns)
		for column := range grid[row] {
			grid[row][column] = that.cells[that.index(row, column)].String()
		}
	}

	return grid
}

func (that *Board) String() string {
	var sb strings.Builder
	for row, symbols := range that.Grid() {
		if row > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(symbols, "|"))
	}

	return sb.String()
}

// searchWinner scans every cell. It fails if both pieces hold a winning run.
func (that *Board) searchWinner() (Piece, error) {
	winner := Empty
	for index := range that.cells {
		piece := that.winnerAt(index)
		if piece == Empty {
			continue
		}

		if winner != Empty && winner != piece {
			return Empty, fmt.Errorf("%w: %s and %s", ErrMultipleWinners, winner, piece)
		}
		winner = piece
	}

	return winner, nil
}

// winnerAt returns the piece at index if it is part of a winning run.
func (that *Board) winnerAt(index int) Piece {
	piece := that.cells[index]
	if piece == Empty {
		return Empty
	}

	row, column := that.position(index)
	for _, dir := range directions {
		if that.runLength(row, column, dir) >= that.winLength {
			return piece
		}
	}

	return Empty
}

// runLength counts the contiguous cells holding the same piece as (row, column)
// along dir, in both senses.
func (that *Board) runLength(row, column int, dir direction) int {
	piece := that.cells[that.index(row, column)]
	length := 1

	for _, sense := range [...]int{1, -1} {
		r, c := row+sense*dir.dRow, column+sense*dir.dColumn
		for that.contains(r, c) && that.cells[that.index(r, c)] == piece {
			length++
			r += sense * dir.dRow
			c += sense * dir.dColumn
		}
	}

	return length
}

func (that *Board) position(index int) (row, column int) {
	return index / that.columns, index % that.columns
}

func (that *Board) index(row, column int) int {
	return row*that.columns + column
}

func (that *Board) contains(row, column int) bool {
	return row >= 0 && row < that.rows && column >= 0 && column < that.columns
}

func (that *Board) validIndex(index int) bool {
	return index >= 0 && index < len(that.cells)
}

func (that *Board) indexError(index int) error {
	return fmt.Errorf("%w: %d is not in [0, %d)", ErrIndexOutOfRange, index, len(that.cells))
}
