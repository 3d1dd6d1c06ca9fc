package log

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)
	t.Cleanup(func() { SetLevel(LevelInfo) })

	Debug("hidden", "k", 1)
	assert.Empty(t, buf.String())

	Info("shown", "input", "tomorrow")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "input=tomorrow")

	buf.Reset()
	SetLevel(LevelError)
	Warn("hidden warning")
	assert.Empty(t, buf.String())
	Error("parse failed", errors.New("invalid time"), "code", "InvalidTime")
	assert.Contains(t, buf.String(), "parse failed")
	assert.Contains(t, buf.String(), "invalid time")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}

func TestSetOutput_WhileLogging(t *testing.T) {
	SetLevel(LevelInfo)
	t.Cleanup(func() { SetOutput(io.Discard) })

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Info("request", "n", j)
			}
		}()
	}
	for i := 0; i < 100; i++ {
		SetOutput(io.Discard)
	}
	wg.Wait()

	var buf bytes.Buffer
	SetOutput(&buf)
	Info("after swap")
	assert.Contains(t, buf.String(), "after swap")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
	assert.False(t, isTerminal(io.Discard))
}
