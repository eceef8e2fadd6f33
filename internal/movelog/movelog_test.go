package movelog

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/sos-backend/internal/apperror"
	"github.com/rocketscienceinc/sos-backend/internal/entity"
	"github.com/rocketscienceinc/sos-backend/internal/sos"
)

const sampleLog = `GameMode: General
BoardSize: 3
RedIsComputer: false
BlueIsComputer: true
Moves:
Red,0,0,S
Blue,0,1,O
Red,0,2,S
Red,1,1,O
`

// recordGame plays the moves on a fresh engine and records the accepted ones.
func recordGame(t *testing.T, header Header, moves ...entity.Move) (*sos.Engine, *Log) {
	t.Helper()

	engine, err := sos.NewEngine(header.BoardSize, header.Mode)
	require.NoError(t, err)

	moveLog := New(header)
	for _, move := range moves {
		turn, ok := engine.MakeMove(move.Row, move.Col, move.Letter)
		require.True(t, ok, "move %s rejected", move)
		moveLog.Record(turn.Move)
	}

	return engine, moveLog
}

func generalGame(t *testing.T) (*sos.Engine, *Log) {
	t.Helper()

	return recordGame(t, Header{Mode: entity.ModeGeneral, BoardSize: 3, BlueIsComputer: true},
		entity.Move{Row: 0, Col: 0, Letter: entity.LetterS},
		entity.Move{Row: 0, Col: 1, Letter: entity.LetterO},
		entity.Move{Row: 0, Col: 2, Letter: entity.LetterS},
		entity.Move{Row: 1, Col: 1, Letter: entity.LetterO},
	)
}

func TestLog_WriteTo(t *testing.T) {
	t.Run("Writes header, marker and moves in order", func(t *testing.T) {
		// Given: a General game where Red scored and moved again
		_, moveLog := generalGame(t)

		// When: writing the log
		var buf bytes.Buffer
		n, err := moveLog.WriteTo(&buf)

		// Then: the text matches the line format exactly
		require.NoError(t, err)
		assert.Equal(t, sampleLog, buf.String())
		assert.Equal(t, int64(len(sampleLog)), n)
	})

	t.Run("Empty game writes only the header", func(t *testing.T) {
		moveLog := New(Header{Mode: entity.ModeSimple, BoardSize: 8, RedIsComputer: true})

		text, err := moveLog.MarshalText()

		require.NoError(t, err)
		assert.Equal(t, "GameMode: Simple\nBoardSize: 8\nRedIsComputer: true\nBlueIsComputer: false\nMoves:\n", string(text))
	})
}

func TestParse(t *testing.T) {
	t.Run("Round trip replays to the same state", func(t *testing.T) {
		// Given: a recorded game
		played, moveLog := generalGame(t)
		text, err := moveLog.MarshalText()
		require.NoError(t, err)

		// When: parsing and replaying the text
		parsed, err := Parse(bytes.NewReader(text))
		require.NoError(t, err)
		replayed, err := parsed.Replay()
		require.NoError(t, err)

		// Then: header, moves and final state match the played game
		assert.Equal(t, moveLog.Header, parsed.Header)
		assert.Equal(t, moveLog.Moves(), parsed.Moves())
		assert.Equal(t, played.CurrentPlayer(), replayed.CurrentPlayer())
		assert.Equal(t, played.RedScore(), replayed.RedScore())
		assert.Equal(t, played.BlueScore(), replayed.BlueScore())
		assert.Equal(t, played.IsOver(), replayed.IsOver())
		assert.Equal(t, played.Winner(), replayed.Winner())
		assert.Equal(t, played.EmptyCells(), replayed.EmptyCells())

		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				expected, err := played.CellOwner(row, col)
				require.NoError(t, err)
				actual, err := replayed.CellOwner(row, col)
				require.NoError(t, err)
				assert.Equal(t, expected, actual)
			}
		}
	})

	t.Run("Boolean headers are case insensitive", func(t *testing.T) {
		// Given: capitalised booleans and CRLF line endings
		text := "GameMode: Simple\r\nBoardSize: 4\r\nRedIsComputer: True\r\nBlueIsComputer: FALSE\r\nMoves:\r\nRed,1,2,s\r\n"

		// When: parsing
		moveLog, err := Parse(strings.NewReader(text))

		// Then: the header and the move are read
		require.NoError(t, err)
		assert.Equal(t, Header{Mode: entity.ModeSimple, BoardSize: 4, RedIsComputer: true}, moveLog.Header)
		assert.Equal(t, []entity.Move{{Player: entity.PlayerRed, Row: 1, Col: 2, Letter: entity.LetterS}}, moveLog.Moves())
	})

	t.Run("Trailing blank lines are ignored", func(t *testing.T) {
		moveLog, err := Parse(strings.NewReader(sampleLog + "\n\n"))

		require.NoError(t, err)
		assert.Equal(t, 4, moveLog.Len())
	})

	corrupted := []struct {
		name string
		text string
	}{
		{name: "empty input", text: ""},
		{name: "unknown mode", text: strings.Replace(sampleLog, "General", "Blitz", 1)},
		{name: "board too small", text: strings.Replace(sampleLog, "BoardSize: 3", "BoardSize: 2", 1)},
		{name: "board too large", text: strings.Replace(sampleLog, "BoardSize: 3", "BoardSize: 31", 1)},
		{name: "board size overflowing the cell count", text: strings.Replace(sampleLog, "BoardSize: 3", "BoardSize: 4294967296", 1)},
		{name: "non numeric size", text: strings.Replace(sampleLog, "BoardSize: 3", "BoardSize: three", 1)},
		{name: "bad boolean", text: strings.Replace(sampleLog, "RedIsComputer: false", "RedIsComputer: maybe", 1)},
		{name: "headers out of order", text: "BoardSize: 3\nGameMode: General\nRedIsComputer: false\nBlueIsComputer: true\nMoves:\n"},
		{name: "missing marker", text: "GameMode: General\nBoardSize: 3\nRedIsComputer: false\nBlueIsComputer: true\nRed,0,0,S\n"},
		{name: "too few fields", text: strings.Replace(sampleLog, "Blue,0,1,O", "Blue,0,1", 1)},
		{name: "unknown letter", text: strings.Replace(sampleLog, "Blue,0,1,O", "Blue,0,1,X", 1)},
		{name: "None cannot move", text: strings.Replace(sampleLog, "Blue,0,1,O", "None,0,1,O", 1)},
		{name: "move after a blank line", text: strings.Replace(sampleLog, "Red,0,2,S", "\nRed,0,2,S", 1)},
	}

	for _, tc := range corrupted {
		t.Run("Corrupted: "+tc.name, func(t *testing.T) {
			// When: parsing a malformed log
			moveLog, err := Parse(strings.NewReader(tc.text))

			// Then: ErrCorruptedLog is returned
			require.ErrorIs(t, err, apperror.ErrCorruptedLog)
			assert.Nil(t, moveLog)
		})
	}
}

func TestLog_Replay(t *testing.T) {
	replayFailures := []struct {
		name string
		text string
	}{
		{name: "occupied cell", text: strings.Replace(sampleLog, "Blue,0,1,O", "Blue,0,0,O", 1)},
		{name: "out of range cell", text: strings.Replace(sampleLog, "Blue,0,1,O", "Blue,5,1,O", 1)},
		{name: "out of turn", text: strings.Replace(sampleLog, "Blue,0,1,O", "Red,0,1,O", 1)},
		{name: "move after the game ended", text: "GameMode: Simple\nBoardSize: 3\nRedIsComputer: false\nBlueIsComputer: false\n" +
			"Moves:\nRed,0,0,S\nBlue,1,1,O\nRed,2,2,S\nBlue,0,1,O\n"},
	}

	for _, tc := range replayFailures {
		t.Run("Fails: "+tc.name, func(t *testing.T) {
			// Given: a log that parses
			moveLog, err := Parse(strings.NewReader(tc.text))
			require.NoError(t, err)

			// When: replaying it
			engine, err := moveLog.Replay()

			// Then: the log is reported as corrupted
			require.ErrorIs(t, err, apperror.ErrCorruptedLog)
			assert.Nil(t, engine)
		})
	}
}

func TestLog_Replay_InvalidHeader(t *testing.T) {
	for _, header := range []Header{
		{Mode: entity.ModeSimple, BoardSize: 1 << 32},
		{Mode: entity.ModeSimple, BoardSize: entity.MaxBoardSize + 1},
		{Mode: entity.Mode(7), BoardSize: 3},
	} {
		// Given: a header built in code that never went through Parse
		moveLog := New(header)
		moveLog.Record(entity.Move{Player: entity.PlayerRed, Row: 0, Col: 0, Letter: entity.LetterS})

		// When: replaying it
		engine, err := moveLog.Replay()

		// Then: no engine is built and the log is reported as corrupted
		require.ErrorIs(t, err, apperror.ErrCorruptedLog)
		assert.Nil(t, engine)
	}
}

func TestSaveLoad(t *testing.T) {
	t.Run("Saved log loads back unchanged", func(t *testing.T) {
		// Given: a recorded game and a temporary file
		_, moveLog := generalGame(t)
		path := filepath.Join(t.TempDir(), "game.txt")

		// When: saving and loading
		require.NoError(t, moveLog.Save(path))
		loaded, err := Load(path)

		// Then: the loaded log is identical
		require.NoError(t, err)
		assert.Equal(t, moveLog.Header, loaded.Header)
		assert.Equal(t, moveLog.Moves(), loaded.Moves())
	})

	t.Run("Missing file is not a corruption", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))

		require.Error(t, err)
		assert.NotErrorIs(t, err, apperror.ErrCorruptedLog)
	})
}

func TestHeader_IsComputer(t *testing.T) {
	header := Header{RedIsComputer: true}

	assert.True(t, header.IsComputer(entity.PlayerRed))
	assert.False(t, header.IsComputer(entity.PlayerBlue))
	assert.False(t, header.IsComputer(entity.PlayerNone))
}
