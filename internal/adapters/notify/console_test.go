package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/alejandrodnm/adbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() domain.OptimizationRun {
	run := domain.NewOptimizationRun("campaign-1", "roas", 30)
	run.Decisions["running shoes"] = domain.Decision{
		Keyword: "running shoes",
		Action:  domain.ActionIncrease,
		Reason:  "favorable return",
		Stats:   domain.KeywordStats{Clicks: 2, Cost: 15, ConversionCount: 1, ConversionValue: 10},
		NewBid:  1.10,
	}
	run.Decisions["trail boots"] = domain.Decision{
		Keyword: "trail boots",
		Action:  domain.ActionPauseOrLower,
		Reason:  "clicks without conversions",
		Stats:   domain.KeywordStats{Clicks: 4, Cost: 8},
		NewBid:  1.80,
	}
	run.Decisions["hiking socks"] = domain.Decision{
		Keyword: "hiking socks",
		Action:  domain.ActionSkip,
		Reason:  "no traffic in attribution window",
	}
	return run
}

func TestConsole_Notify_Compact(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, false)

	require.NoError(t, c.Notify(context.Background(), sampleRun()))
	out := buf.String()

	assert.Contains(t, out, "roas run")
	assert.Contains(t, out, "kw:3")
	assert.Contains(t, out, "↑:1")
	assert.Contains(t, out, "⏸:1")
	assert.Contains(t, out, "skip:1")
	// El top por gasto encabeza con running shoes ($15)
	assert.Contains(t, out, "running shoes $15.00 c:2 cv:1")
}

func TestConsole_Notify_Table(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	require.NoError(t, c.Notify(context.Background(), sampleRun()))
	out := buf.String()

	assert.Contains(t, out, "campaign campaign-1")
	assert.Contains(t, out, "strategy roas")
	assert.Contains(t, out, "window 30d")
	assert.Contains(t, out, "running shoes")
	assert.Contains(t, out, "favorable return")
	assert.Contains(t, out, "1.10")
	// Sin puja propuesta la celda lleva guion
	assert.Contains(t, out, "-")
}

func TestConsole_Notify_TableShowsApplyError(t *testing.T) {
	run := sampleRun()
	d := run.Decisions["running shoes"]
	d.ApplyError = "mutate rejected"
	run.Decisions["running shoes"] = d

	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	require.NoError(t, c.Notify(context.Background(), run))
	assert.Contains(t, buf.String(), "apply failed: mutate rejected")
}

func TestConsole_Notify_EmptyRun(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	require.NoError(t, c.Notify(context.Background(), domain.NewOptimizationRun("campaign-1", "cpa", 7)))
	assert.Contains(t, buf.String(), "no keywords evaluated")
}

func TestTopByCost_OrderAndLimit(t *testing.T) {
	run := sampleRun()

	top := topByCost(run, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "running shoes", top[0].Keyword) // $15
	assert.Equal(t, "trail boots", top[1].Keyword)   // $8
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "long keyw…", truncate("long keyword text", 10))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcd1234", shortID("abcd1234-5678-rest"))
	assert.Equal(t, "tiny", shortID("tiny"))
}
