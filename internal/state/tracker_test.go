package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_Record(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "state.json")
	tr := NewTracker(path)

	s := tr.Record("2024-05-01", 0)
	assert.Equal(t, "2024-05-01", s.FirstRun)
	assert.Empty(t, s.DaysWithSignals)

	s = tr.Record("2024-05-02", 3)
	assert.Equal(t, "2024-05-01", s.FirstRun)
	assert.Equal(t, []string{"2024-05-02"}, s.DaysWithSignals)

	s = tr.Record("2024-05-02", 1)
	assert.Equal(t, []string{"2024-05-02"}, s.DaysWithSignals, "a day is counted once")

	reloaded := NewTracker(path).GetState()
	assert.Equal(t, "2024-05-01", reloaded.FirstRun)
	assert.Equal(t, []string{"2024-05-02"}, reloaded.DaysWithSignals)
}

func TestTracker_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	tr := NewTracker(path)
	assert.Equal(t, "", tr.GetState().FirstRun)

	s := tr.Record("2024-05-03", 1)
	assert.Equal(t, "2024-05-03", s.FirstRun)
	assert.Equal(t, []string{"2024-05-03"}, s.DaysWithSignals)
}

func TestLoadState_Missing(t *testing.T) {
	s, err := LoadState(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, "", s.FirstRun)
}
