package synth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sfx/blueprint"
)

func newTestEngine(t *testing.T) (*Engine, *NullOutput) {
	t.Helper()
	out := NewNullOutput()
	e, err := New(DefaultConfig(), WithOutput(out))
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	return e, out
}

func blip() blueprint.Blueprint {
	bp := blueprint.Default()
	bp.Duration = 0.05
	bp.Envelope = blueprint.Envelope{Attack: 0.005, Decay: 0.01, Sustain: 0.5, Release: 0.02}
	return bp
}

func drain(t *testing.T, e *Engine, out *NullOutput) {
	t.Helper()
	for i := 0; i < 1000 && e.Active() > 0; i++ {
		require.NoError(t, out.Advance(1024))
	}
}

func TestOperationsBeforeInitialize(t *testing.T) {
	e, err := New(DefaultConfig(), WithOutput(NewNullOutput()))
	require.NoError(t, err)

	require.ErrorIs(t, e.PlayBlueprint(blip()), ErrNotInitialized)
	require.ErrorIs(t, e.TriggerInstrument(InstrumentKeystroke), ErrNotInitialized)
	require.ErrorIs(t, e.Reset(), ErrNotInitialized)
	_, err = e.Latency()
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestInitializeIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Initialize())
}

func TestShutdown(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Shutdown())
	require.NoError(t, e.Shutdown())
	require.ErrorIs(t, e.PlayBlueprint(blip()), ErrClosed)
	require.ErrorIs(t, e.Initialize(), ErrClosed)
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterGain = 2
	_, err := New(cfg)
	require.Error(t, err)
}

func TestPlayBlueprintSchedulesAndFinishes(t *testing.T) {
	e, out := newTestEngine(t)

	require.NoError(t, e.PlayBlueprint(blip()))
	require.NoError(t, e.PlayBlueprint(blip()))
	assert.Equal(t, 2, e.Active())

	drain(t, e, out)
	assert.Zero(t, e.Active())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.WaitIdle(ctx))
	assert.Greater(t, e.CurrentTime(), 0.05)
}

func TestPlayBlueprintRejectsInvalid(t *testing.T) {
	e, _ := newTestEngine(t)
	bp := blip()
	bp.Envelope.Sustain = 3
	require.Error(t, e.PlayBlueprint(bp))
	assert.Zero(t, e.Active())
}

func TestWaitIdleHonorsContext(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.PlayBlueprint(blip()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, e.WaitIdle(ctx), context.DeadlineExceeded)
}

func TestEnsureReadyResumesOutput(t *testing.T) {
	e, out := newTestEngine(t)
	require.True(t, out.Suspended())

	require.NoError(t, e.PlayBlueprint(blip()))
	require.Eventually(t, func() bool { return !out.Suspended() }, time.Second, time.Millisecond)
}

func TestResetDropsVoices(t *testing.T) {
	e, _ := newTestEngine(t)
	long := blip()
	long.Duration = 5
	require.NoError(t, e.PlayBlueprint(long))
	require.Equal(t, 1, e.Active())

	require.NoError(t, e.Reset())
	assert.Zero(t, e.Active())

	select {
	case <-e.mixer.Idle():
	default:
		t.Fatal("mixer should be idle after reset")
	}
}

func TestInstrumentCache(t *testing.T) {
	e, out := newTestEngine(t)

	require.NoError(t, e.TriggerInstrument(InstrumentBackspace))
	first := e.cache[InstrumentBackspace]
	require.NotEmpty(t, first)

	require.NoError(t, e.TriggerInstrument(InstrumentBackspace))
	assert.Same(t, &first[0], &e.cache[InstrumentBackspace][0], "cached render should be reused")
	assert.Equal(t, 2, e.Active())

	require.NoError(t, e.RegisterInstrument(InstrumentBackspace, blip()))
	_, cached := e.cache[InstrumentBackspace]
	assert.False(t, cached)

	require.Error(t, e.TriggerInstrument("nope"))
	require.Error(t, e.RegisterInstrument("bad", blueprint.Blueprint{}))
	drain(t, e, out)
}

func TestPlayKeystroke(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.PlayKeystroke(KeystrokeFrequency('a')))
	assert.Equal(t, 1, e.Active())
}

func TestKeystrokeFrequency(t *testing.T) {
	assert.Equal(t, 735.0, KeystrokeFrequency('a'))
	assert.Equal(t, 860.0, KeystrokeFrequency('z'))
	assert.Equal(t, 490.0, KeystrokeFrequency('0'))
	assert.Equal(t, 1200.0, KeystrokeFrequency('!'))
	assert.Equal(t, 1200.0, KeystrokeFrequency(' '))
}

func TestLatency(t *testing.T) {
	e, _ := newTestEngine(t)
	l, err := e.Latency()
	require.NoError(t, err)
	assert.Equal(t, 48000, l.SampleRate)
	assert.Equal(t, "null", l.Backend)
	assert.InDelta(t, 128.0/48000, l.BaseLatency.Seconds(), 1e-6)
	assert.Contains(t, e.LatencyReport(), "backend: null")
}

func TestRenderAppliesMasterGain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterGain = 0.25
	e, err := New(cfg)
	require.NoError(t, err)

	bp := flat(blueprint.Oscillator{Waveform: blueprint.Square, Frequency: 100})
	bp.Duration = 0.01
	out, err := e.Render(bp)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, out[0], 1e-6)
}

func TestMixerSumsClampsAndAdvances(t *testing.T) {
	m := newMixer(1)
	m.schedule(0, []float32{0.6, -0.6, 0.6, -0.6})
	m.schedule(1, []float32{0.6, -0.6})

	buf := make([]float32, 6)
	m.Mix(buf)
	assert.Equal(t, []float32{0.6, -0.6, 1, -1, 0, 0}, buf)
	assert.Equal(t, int64(3), m.Frame())
	assert.Zero(t, m.Active())

	// A start in the past plays from the current frame.
	m.schedule(0, []float32{0.1, 0.2})
	m.Mix(buf[:2])
	assert.Equal(t, []float32{0.1, 0.2}, buf[:2])
}

func TestMixerRead(t *testing.T) {
	m := newMixer(1)
	m.schedule(0, []float32{0.5, -0.5})
	p := make([]byte, 16)
	n, err := m.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, []byte{0, 0, 0, 0x3f}, p[:4])
	assert.Equal(t, []byte{0, 0, 0, 0xbf}, p[4:8])
}
