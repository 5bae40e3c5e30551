package demo_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/demo"
	"github.com/plus3/curvedemo/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedCommands(t *testing.T) {
	script := input.NewScript()
	err := demo.FeedCommands(strings.NewReader("w\nW s\nhello\n\n s \n"), script)
	require.NoError(t, err)
	assert.Equal(t, 4, script.Pending())

	script.Step()
	assert.True(t, script.KeyJustPressed(input.KeyW))
	assert.True(t, script.KeyJustPressed(input.KeyS))
	assert.Equal(t, 2, script.Pending(), "one press per key per frame")
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	cfg := demo.DefaultConfig()
	cfg.TPS = 1000
	cfg.Ticks = 5
	cfg.LogEvery = 1

	var lines []string
	report, err := demo.RunHeadless(context.Background(), cfg, demo.HeadlessOptions{
		Logf: func(format string, args ...any) { lines = append(lines, format) },
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), report.Ticks)
	assert.Len(t, report.UpdateTime.Samples, 5)
	assert.Len(t, lines, 5)
	assert.Equal(t, mgl32.Vec3{-3, 1.5, -2}, report.Orb)
	assert.Equal(t, float32(0), report.Mesh.X())
	assert.Equal(t, uint64(5), report.Final.Ticks)
	assert.Positive(t, report.Entities)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "**Ticks:** 5")
	assert.Contains(t, buf.String(), "(-3.000, 1.500, -2.000)")
}

func TestRunHeadlessReadsCommands(t *testing.T) {
	cfg := demo.DefaultConfig()
	cfg.TPS = 1000
	cfg.Ticks = 500

	report, err := demo.RunHeadless(context.Background(), cfg, demo.HeadlessOptions{
		Commands: strings.NewReader("w\nw w\ns\ns s s\n"),
	})
	require.NoError(t, err)

	// Three forwards, then four backwards of which only three can move.
	assert.Equal(t, uint64(6), report.Final.Advances)
	assert.Equal(t, 0.0, report.Final.Last.T)
	assert.Equal(t, mgl32.Vec3{-3, 1.5, -2}, report.Orb)
}

func TestRunHeadlessCommandsMoveTheOrb(t *testing.T) {
	cfg := demo.DefaultConfig()
	cfg.TPS = 1000
	cfg.Ticks = 500

	report, err := demo.RunHeadless(context.Background(), cfg, demo.HeadlessOptions{
		Commands: strings.NewReader("w w\n"),
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(2), report.Final.Advances)
	assert.InDelta(t, 0.2, report.Final.Last.T, 1e-12)
	assert.Equal(t, report.Final.Last.Orb, report.Orb)
	assert.Equal(t, report.Final.Last.MeshX, report.Mesh.X())
}

func TestRunHeadlessHonorsContext(t *testing.T) {
	cfg := demo.DefaultConfig()
	cfg.TPS = 1000

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	report, err := demo.RunHeadless(ctx, cfg, demo.HeadlessOptions{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotNil(t, report)
}

func TestRunHeadlessRejectsBadConfig(t *testing.T) {
	cfg := demo.DefaultConfig()
	cfg.TPS = 0
	_, err := demo.RunHeadless(context.Background(), cfg, demo.HeadlessOptions{})
	assert.Error(t, err)
}

func TestStatsFinalize(t *testing.T) {
	var s demo.Stats
	for i := 20; i >= 1; i-- {
		s.Samples = append(s.Samples, time.Duration(i)*time.Millisecond)
	}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 20*time.Millisecond, s.Max)
	assert.Equal(t, 10500*time.Microsecond, s.Avg)
	assert.Equal(t, 19*time.Millisecond, s.P95)
	assert.Equal(t, 20*time.Millisecond, s.Samples[0], "samples keep their order")
}

func TestStatsKeepsABoundedWindow(t *testing.T) {
	var s demo.Stats
	n := demo.TimingWindow + 100
	for i := 1; i <= n; i++ {
		s.Add(time.Duration(i) * time.Microsecond)
	}
	s.Finalize()

	assert.Len(t, s.Samples, demo.TimingWindow)
	assert.Equal(t, uint64(n), s.Count)
	assert.Equal(t, time.Microsecond, s.Min)
	assert.Equal(t, time.Duration(n)*time.Microsecond, s.Max)
	assert.Equal(t, time.Duration(n+1)*time.Microsecond/2, s.Avg)
	assert.Equal(t, time.Duration(demo.TimingWindow+1)*time.Microsecond, s.Samples[0], "oldest samples are overwritten")
	assert.Greater(t, s.P95, time.Duration(100)*time.Microsecond)
}
