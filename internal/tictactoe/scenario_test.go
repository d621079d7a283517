package tictactoe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var scenarioErrors = map[string]error{
	"invalid_symbol":          ErrInvalidSymbol,
	"invalid_dimensions":      ErrInvalidDimensions,
	"inconsistent_row_length": ErrInconsistentRowLength,
	"invalid_piece_count":     ErrInvalidPieceCount,
	"invalid_win_length":      ErrInvalidWinLength,
	"multiple_winners":        ErrMultipleWinners,
	"invalid_current_player":  ErrInvalidCurrentPlayer,
	"invalid_turn":            ErrInvalidTurn,
	"index_out_of_range":      ErrIndexOutOfRange,
	"game_over":               ErrGameOver,
	"occupied_cell":           ErrOccupiedCell,
}

type scenario struct {
	Game struct {
		Board         [][]string `yaml:"board"`
		Rows          int        `yaml:"rows"`
		Columns       int        `yaml:"columns"`
		WinLength     int        `yaml:"win-length"`
		CurrentPlayer *string    `yaml:"current-player"`
		Error         string     `yaml:"error"`
	} `yaml:"game"`
	Actions []scenarioAction `yaml:"actions"`
}

type scenarioAction struct {
	Type  string `yaml:"type"`
	Index int    `yaml:"index"`
	Error string `yaml:"error"`
	State string `yaml:"state"`
}

func loadScenario(t *testing.T, path string) scenario {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var sc scenario
	require.NoError(t, yaml.Unmarshal(data, &sc))

	return sc
}

func scenarioError(t *testing.T, name string) error {
	t.Helper()

	err, ok := scenarioErrors[name]
	require.True(t, ok, "unknown error %q", name)

	return err
}

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			sc := loadScenario(t, path)

			currentPlayer := X.String()
			if sc.Game.CurrentPlayer != nil {
				currentPlayer = *sc.Game.CurrentPlayer
			}

			conf := Config{Rows: sc.Game.Rows, Columns: sc.Game.Columns, WinLength: sc.Game.WinLength}
			game, err := NewGame(sc.Game.Board, conf, currentPlayer)

			if sc.Game.Error != "" {
				require.Empty(t, sc.Actions, "a failing game has no actions")
				require.ErrorIs(t, err, scenarioError(t, sc.Game.Error))
				assert.Nil(t, game)
				return
			}
			require.NoError(t, err)

			for i, action := range sc.Actions {
				switch action.Type {
				case "move":
					err = game.Play(action.Index)
					if action.Error != "" {
						require.ErrorIs(t, err, scenarioError(t, action.Error), "action %d", i+1)
						continue
					}
					require.NoError(t, err, "action %d", i+1)
				case "check_state":
					expected, err := ParseState(action.State)
					require.NoError(t, err)
					assert.Equal(t, expected, game.State(), "action %d", i+1)
				default:
					t.Fatalf("action %d: unknown type %q", i+1, action.Type)
				}
			}
		})
	}
}
