package sos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/sos-backend/internal/entity"
)

// boardFrom builds a board from rows of '.', 'S' and 'O'. Owners are irrelevant to detection.
func boardFrom(t *testing.T, rows ...string) *entity.Board {
	t.Helper()

	board, err := entity.NewBoard(len(rows))
	require.NoError(t, err)

	for row, line := range rows {
		require.Len(t, line, len(rows))
		for col, ch := range line {
			switch ch {
			case 'S':
				require.NoError(t, board.Place(row, col, entity.PlayerRed, entity.LetterS))
			case 'O':
				require.NoError(t, board.Place(row, col, entity.PlayerRed, entity.LetterO))
			}
		}
	}

	return board
}

func pos(row, col int) entity.Position {
	return entity.Position{Row: row, Col: col}
}

func TestLines(t *testing.T) {
	t.Run("O between two S in a row", func(t *testing.T) {
		// Given: S . S
		board := boardFrom(t,
			"S.S",
			"...",
			"...",
		)

		// When: checking O at (0, 1)
		lines := Lines(board, 0, 1, entity.LetterO)

		// Then: exactly one line is found, not one per direction
		require.Len(t, lines, 1)
		assert.Equal(t, Line{pos(0, 0), pos(0, 1), pos(0, 2)}, lines[0])
	})

	t.Run("S forward and backward checks of the same line count once", func(t *testing.T) {
		// Given: . O S
		board := boardFrom(t,
			".OS",
			"...",
			"...",
		)

		// When: checking S at (0, 0)
		count := CountLines(board, 0, 0, entity.LetterS)

		// Then: the line is counted once
		assert.Equal(t, 1, count)
	})

	t.Run("S closing lines on both sides", func(t *testing.T) {
		// Given: S O . O S
		board := boardFrom(t,
			"SO.OS",
			".....",
			".....",
			".....",
			".....",
		)

		// When: checking S in the middle
		count := CountLines(board, 0, 2, entity.LetterS)

		// Then: two distinct lines complete
		assert.Equal(t, 2, count)
	})

	t.Run("O completing four lines at once", func(t *testing.T) {
		// Given: S on every neighbour of the centre
		board := boardFrom(t,
			"SSS",
			"S.S",
			"SSS",
		)

		// When: checking O in the centre
		count := CountLines(board, 1, 1, entity.LetterO)

		// Then: rows, columns and both diagonals each count once
		assert.Equal(t, 4, count)
	})

	t.Run("S in a corner closing three lines", func(t *testing.T) {
		// Given: lines ending at (2, 2) horizontally, vertically and diagonally
		board := boardFrom(t,
			"S.S",
			".OO",
			"SO.",
		)

		// When: checking S at (2, 2)
		count := CountLines(board, 2, 2, entity.LetterS)

		// Then: all three lines count
		assert.Equal(t, 3, count)
	})

	t.Run("Edges are skipped, not errors", func(t *testing.T) {
		// Given: an O on the edge with nothing beyond
		board := boardFrom(t,
			"O..",
			"...",
			"...",
		)

		// Then: no line is reported for S next to it
		assert.Zero(t, CountLines(board, 0, 1, entity.LetterS))
		assert.False(t, WouldScore(board, 0, 1, entity.LetterS))
	})

	t.Run("Wrong letter never matches", func(t *testing.T) {
		board := boardFrom(t,
			"S.S",
			"...",
			"...",
		)

		assert.False(t, WouldScore(board, 0, 1, entity.LetterS))
		assert.True(t, WouldScore(board, 0, 1, entity.LetterO))
	})

	t.Run("Hypothetical cell is not read", func(t *testing.T) {
		// Given: the letter already sits in the cell being checked
		board := boardFrom(t,
			"SOS",
			"...",
			"...",
		)

		// Then: the check gives the same answer as before placement
		assert.Equal(t, 1, CountLines(board, 0, 1, entity.LetterO))
		assert.Equal(t, 1, CountLines(board, 0, 2, entity.LetterS))
	})
}

func TestLines_Consistency(t *testing.T) {
	boards := [][]string{
		{"S.S", ".O.", "S.S"},
		{"SO.OS", "O.O.O", "..S..", "O.O.O", "SO.OS"},
		{"S.S.S", ".....", "S.S.S", ".....", "S.S.S"},
		{"OSO", "S.S", "OSO"},
	}

	for _, rows := range boards {
		board := boardFrom(t, rows...)

		for row := 0; row < board.Size(); row++ {
			for col := 0; col < board.Size(); col++ {
				for _, letter := range []entity.Letter{entity.LetterS, entity.LetterO} {
					lines := Lines(board, row, col, letter)
					count := CountLines(board, row, col, letter)

					// Then: the three queries agree and no line is reported twice
					assert.Len(t, lines, count, "%v at (%d, %d)", letter, row, col)
					assert.Equal(t, count > 0, WouldScore(board, row, col, letter), "%v at (%d, %d)", letter, row, col)

					seen := make(map[Line]bool, len(lines))
					for _, line := range lines {
						assert.False(t, seen[line], "duplicate %v", line)
						seen[line] = true
						assert.Contains(t, line[:], pos(row, col))
					}
				}
			}
		}
	}
}

func TestLines_StarOfEight(t *testing.T) {
	// Given: an S at the centre of a 5x5 board closes a line in every direction
	board := boardFrom(t,
		"S.S.S",
		".OOO.",
		"SO.OS",
		".OOO.",
		"S.S.S",
	)

	// When: checking S at the centre
	lines := Lines(board, 2, 2, entity.LetterS)

	// Then: all eight lines are reported in canonical order
	assert.Len(t, lines, 8)
	assert.Contains(t, lines, Line{pos(0, 0), pos(1, 1), pos(2, 2)})
	assert.Contains(t, lines, Line{pos(2, 2), pos(3, 3), pos(4, 4)})
	assert.Contains(t, lines, Line{pos(0, 4), pos(1, 3), pos(2, 2)})
	assert.Contains(t, lines, Line{pos(2, 2), pos(3, 1), pos(4, 0)})
	assert.True(t, WouldScore(board, 2, 2, entity.LetterS))
	assert.Zero(t, CountLines(board, 2, 2, entity.LetterO))
}

func TestLines_NoAllocations(t *testing.T) {
	board := boardFrom(t,
		"SSS",
		"S.S",
		"SSS",
	)

	assert.Zero(t, testing.AllocsPerRun(100, func() {
		_ = CountLines(board, 1, 1, entity.LetterO)
	}))
	assert.Zero(t, testing.AllocsPerRun(100, func() {
		_ = WouldScore(board, 1, 1, entity.LetterO)
	}))
	assert.Nil(t, Lines(board, 0, 0, entity.LetterO))
}

func TestHasPotential(t *testing.T) {
	t.Run("S next to an open run", func(t *testing.T) {
		board := boardFrom(t,
			"...",
			"...",
			"...",
		)

		assert.True(t, HasPotential(board, 0, 0, entity.LetterS))
		assert.True(t, HasPotential(board, 1, 1, entity.LetterO))
	})

	t.Run("S surrounded by blocking letters", func(t *testing.T) {
		// Given: every direction from (0, 0) is blocked at distance one by S
		board := boardFrom(t,
			".S.",
			"SS.",
			"...",
		)

		// Then: S has no potential, O at (0, 0) has no axis with both neighbours on board
		assert.False(t, HasPotential(board, 0, 0, entity.LetterS))
		assert.False(t, HasPotential(board, 0, 0, entity.LetterO))
	})

	t.Run("O needs both neighbours open on one axis", func(t *testing.T) {
		// Given: O candidates around (1, 1) blocked by O
		board := boardFrom(t,
			"OOO",
			"O.O",
			"OOO",
		)

		// Then: no axis is open
		assert.False(t, HasPotential(board, 1, 1, entity.LetterO))
		assert.False(t, HasPotential(board, 1, 1, entity.LetterS))
	})

	t.Run("S with O then S ahead has potential", func(t *testing.T) {
		board := boardFrom(t,
			".OS",
			"SSS",
			"SSS",
		)

		assert.True(t, HasPotential(board, 0, 0, entity.LetterS))
	})
}
