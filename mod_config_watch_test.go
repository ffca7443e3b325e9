package hellomesh

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigEvents(t *testing.T) {
	prev := DefaultConfig()
	assert.Empty(t, configEvents(prev, prev))

	next := prev
	next.Shape = "Cube"
	next.Wireframe = true
	next.Scale = 1.5
	next.ClearColor = "white"
	assert.Equal(t, []ControlEvent{
		ShapeSelected{Index: 1},
		WireframeToggled{On: true},
		ScaleChanged{Scale: 1.5},
	}, configEvents(prev, next))
}

func TestConfigWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hellomesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shape: Triangle\n"), 0o644))

	events := NewControlEvents(8, nil)
	w, err := NewConfigWatcher(path, DefaultConfig(), events, NewNopLogger())
	require.NoError(t, err)
	defer w.Close()

	// malformed content is ignored
	require.NoError(t, os.WriteFile(path, []byte("shape: ["), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("shape: Cube\nwireframe: true\n"), 0o644))

	var got []ControlEvent
	require.Eventually(t, func() bool {
		got = append(got, events.Drain()...)
		return len(got) >= 2
	}, 5*time.Second, 20*time.Millisecond)

	assert.Contains(t, got, ControlEvent(ShapeSelected{Index: 1}))
	assert.Contains(t, got, ControlEvent(WireframeToggled{On: true}))
	assert.Equal(t, "Cube", w.Current().Shape)
}
