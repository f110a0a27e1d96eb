package notify_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/notify"
	"github.com/stretchr/testify/require"
)

func TestActiveOrdersOldestFirst(t *testing.T) {
	t.Parallel()
	c := notify.New(notify.Config{})

	c.Error("first")
	c.Success("second")
	c.Info("third")

	active := c.Active()
	require.Len(t, active, 3)
	require.Equal(t, "first", active[0].Message)
	require.Equal(t, notify.LevelError, active[0].Level)
	require.Equal(t, "third", active[2].Message)
}

func TestNoticesExpireByLevel(t *testing.T) {
	t.Parallel()
	c := notify.New(notify.Config{
		ErrorTTL:   30 * time.Millisecond,
		SuccessTTL: time.Hour,
	})

	c.Error("gone soon")
	c.Success("stays")

	require.Eventually(t, func() bool {
		active := c.Active()
		return len(active) == 1 && active[0].Message == "stays"
	}, time.Second, 10*time.Millisecond)
}

func TestDismissAndClear(t *testing.T) {
	t.Parallel()
	c := notify.New(notify.Config{})

	n := c.Push(notify.LevelInfo, "hello")
	c.Success("other")
	c.Dismiss(n.ID)
	require.Len(t, c.Active(), 1)

	c.Clear()
	require.Empty(t, c.Active())
}
