package term_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/halcyon-term/vtcore/buffer"
	"github.com/halcyon-term/vtcore/term"
)

type scenario struct {
	Name       string `yaml:"name"`
	Cols       int    `yaml:"cols"`
	Rows       int    `yaml:"rows"`
	Input      string `yaml:"input"`
	WantLines  []string `yaml:"want_lines"`
	WantCursor [2]int `yaml:"want_cursor"`
}

func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	data, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)
	var out []scenario
	require.NoError(t, yaml.Unmarshal(data, &out))
	return out
}

func rowText(row []buffer.Cell) string {
	var b strings.Builder
	for _, c := range row {
		if c.Width == 0 {
			continue
		}
		b.WriteRune(c.Char)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestScenarios(t *testing.T) {
	for _, sc := range loadScenarios(t) {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			tm := term.New(sc.Cols, sc.Rows, nil)
			tm.Feed([]byte(sc.Input))

			snap := tm.Snapshot()
			require.Len(t, snap, sc.Rows)
			for y, want := range sc.WantLines {
				require.Equal(t, want, rowText(snap[y]), "row %d", y)
			}

			x, y, _ := tm.Cursor()
			require.Equal(t, sc.WantCursor[0], x, "cursor x")
			require.Equal(t, sc.WantCursor[1], y, "cursor y")
		})
	}
}

func TestScenariosToleratesByteAtATimeFeed(t *testing.T) {
	for _, sc := range loadScenarios(t) {
		sc := sc
		t.Run(sc.Name+"/chunked", func(t *testing.T) {
			tm := term.New(sc.Cols, sc.Rows, nil)
			for i := 0; i < len(sc.Input); i++ {
				tm.Feed([]byte(sc.Input[i : i+1]))
			}
			x, y, _ := tm.Cursor()
			require.Equal(t, sc.WantCursor[0], x)
			require.Equal(t, sc.WantCursor[1], y)
		})
	}
}
