package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLive(t *testing.T, preset string) Model {
	t.Helper()
	cfg, err := config.GetPreset(preset)
	require.NoError(t, err)
	m, err := NewModel(cfg)
	require.NoError(t, err)
	return m
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestLiveFirstTickOnlyStarts(t *testing.T) {
	m := newLive(t, "cube")
	t0 := time.Unix(1000, 0)

	m = send(m, TickMsg(t0))
	assert.Equal(t, 0, m.stepper.Ticks())
	assert.True(t, m.stepper.Started())

	m = send(m, TickMsg(t0.Add(16*time.Millisecond)), TickMsg(t0.Add(33*time.Millisecond)))
	assert.Equal(t, 2, m.stepper.Ticks())
	assert.Len(t, m.stretch, 2)
}

func TestLivePause(t *testing.T) {
	m := newLive(t, "cube")
	t0 := time.Unix(1000, 0)
	m = send(m, TickMsg(t0), TickMsg(t0.Add(time.Second/60)))

	m = send(m, keyMsg(" "), TickMsg(t0.Add(time.Second)))
	assert.False(t, m.running)
	assert.Equal(t, 1, m.stepper.Ticks())

	m = send(m, keyMsg(" "), TickMsg(t0.Add(2*time.Second)))
	assert.Equal(t, 2, m.stepper.Ticks())
}

func TestLiveReset(t *testing.T) {
	m := newLive(t, "drop")
	t0 := time.Unix(0, 0)
	for i := 0; i < 5; i++ {
		m = send(m, TickMsg(t0.Add(time.Duration(i)*time.Second/60)))
	}
	require.Equal(t, 4, m.stepper.Ticks())

	m = send(m, keyMsg("r"))
	assert.Equal(t, 0, m.stepper.Ticks())
	assert.False(t, m.stepper.Started())
	assert.Empty(t, m.stretch)
	for _, p := range m.cloth.Particles {
		assert.Equal(t, p.Original, p.Position)
	}
}

func TestLiveWindCycle(t *testing.T) {
	m := newLive(t, "cube")
	require.Equal(t, "oscillating", WindModes[m.windMode])

	m = send(m, keyMsg("w"))
	assert.Equal(t, "noise", WindModes[m.windMode])
	assert.NotNil(t, m.stepper.Params().Wind)

	m = send(m, keyMsg("w"))
	assert.Equal(t, "none", WindModes[m.windMode])
	assert.Nil(t, m.stepper.Params().Wind)

	m = send(m, keyMsg("w"))
	assert.Equal(t, "constant", WindModes[m.windMode])
	assert.NotNil(t, m.stepper.Params().Wind)
}

func TestLivePins(t *testing.T) {
	m := newLive(t, "curtain")
	pinned := m.cloth.Pins()
	require.NotEmpty(t, pinned)

	m = send(m, keyMsg("p"))
	assert.Empty(t, m.cloth.Pins())
	m = send(m, keyMsg("p"))
	assert.Equal(t, pinned, m.cloth.Pins())
}

func TestLiveIterations(t *testing.T) {
	m := newLive(t, "cube")
	base := m.stepper.Params().Iterations

	m = send(m, keyMsg("+"))
	assert.Equal(t, base+1, m.stepper.Params().Iterations)

	for i := 0; i < base+5; i++ {
		m = send(m, keyMsg("-"))
	}
	assert.Equal(t, 1, m.stepper.Params().Iterations)
}

func TestLiveCameraKeys(t *testing.T) {
	m := newLive(t, "cube")
	yaw, pitch, zoom := m.camera.Yaw, m.camera.Pitch, m.camera.Zoom

	m = send(m, keyMsg("left"), keyMsg("up"), keyMsg("z"))
	assert.Less(t, m.camera.Yaw, yaw)
	assert.Greater(t, m.camera.Pitch, pitch)
	assert.Greater(t, m.camera.Zoom, zoom)
}

func TestLiveQuit(t *testing.T) {
	m := newLive(t, "cube")
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestLiveView(t *testing.T) {
	m := newLive(t, "curtain")
	t0 := time.Unix(0, 0)
	m = send(m, TickMsg(t0), TickMsg(t0.Add(time.Second/60)), TickMsg(t0.Add(time.Second/30)))

	view := m.View()
	assert.Contains(t, view, "CURTAIN")
	assert.Contains(t, view, "Iterations")
	assert.True(t, strings.ContainsFunc(m.canvas.String(), func(r rune) bool { return r > 0x2800 }), "cloth drawn")
}

func TestMenuOpensPreset(t *testing.T) {
	var menu tea.Model = NewMenu()
	assert.Contains(t, menu.View(), "curtain")

	menu, _ = menu.Update(keyMsg("j"))
	menu, cmd := menu.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.NotNil(t, menu.(Menu).live)
	assert.Contains(t, menu.View(), "Tick")
}
