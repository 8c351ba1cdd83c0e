package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wscrape/wscrape/internal/store"
)

var parseNow = time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)

func TestParseAt_SingleRow(t *testing.T) {
	raw := "  10:15:32 up 2 days\n" +
		"USER     TTY      FROM             LOGIN@   IDLE   JCPU   PCPU WHAT\n" +
		"alice    pts/0    10.0.0.5         09:00    0.00s  0.10s  0.01s -bash\n"

	entries := ParseAt(raw, parseNow)
	require.Len(t, entries, 1)

	assert.Equal(t, store.LoginEntry{
		User:       "alice",
		RecordTime: "2024-03-01 10:15:32",
		TTY:        "pts/0",
		From:       "10.0.0.5",
		LoginAt:    "09:00",
		Idle:       "0.00s",
		JCPU:       "0.10s",
		PCPU:       "0.01s",
		What:       "-bash",
	}, entries[0])
}

func TestParseAt_MultipleRowsInOrder(t *testing.T) {
	raw := " 10:15:32 up 2 days,  3:44,  3 users,  load average: 0.01, 0.05, 0.10\n" +
		"USER     TTY      FROM             LOGIN@   IDLE   JCPU   PCPU WHAT\n" +
		"alice    pts/0    10.0.0.5         09:00    0.00s  0.10s  0.01s -bash\n" +
		"bob      pts/1    192.168.0.7      Tue09    2days  0.50s  0.50s vim /etc/hosts\n" +
		"carol    pts/2    office.lan       10:02    1:03m  1.20s  0.02s tail -f /var/log/syslog\n"

	entries := ParseAt(raw, parseNow)
	require.Len(t, entries, 3)

	assert.Equal(t, "alice", entries[0].User)
	assert.Equal(t, "bob", entries[1].User)
	assert.Equal(t, "carol", entries[2].User)

	// The WHAT column keeps its embedded whitespace.
	assert.Equal(t, "vim /etc/hosts", entries[1].What)
	assert.Equal(t, "tail -f /var/log/syslog", entries[2].What)
}

func TestParseAt_MalformedRowsDropped(t *testing.T) {
	raw := " 10:15:32 up 2 days\n" +
		"USER     TTY      FROM             LOGIN@   IDLE   JCPU   PCPU WHAT\n" +
		"alice    pts/0    10.0.0.5         09:00    0.00s  0.10s  0.01s -bash\n" +
		"garbage line\n" +
		"bob      pts/1    192.168.0.7      Tue09    2days  0.50s  0.50s -zsh\n" +
		"\n"

	entries := ParseAt(raw, parseNow)
	require.Len(t, entries, 2, "malformed and blank lines must not affect adjacent valid rows")
	assert.Equal(t, "alice", entries[0].User)
	assert.Equal(t, "bob", entries[1].User)
}

func TestParseAt_NoTimeInSummary(t *testing.T) {
	raw := "up 2 days, 1 user\n" +
		"USER     TTY      FROM             LOGIN@   IDLE   JCPU   PCPU WHAT\n" +
		"alice    pts/0    10.0.0.5         09:00    0.00s  0.10s  0.01s -bash\n"

	entries := ParseAt(raw, parseNow)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-03-01", entries[0].RecordTime,
		"missing HH:MM:SS should degrade to a date-only record time, not fail")
}

func TestParseAt_HeaderOnly(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty input", raw: ""},
		{name: "summary only", raw: " 10:15:32 up 2 days\n"},
		{name: "summary and headers", raw: " 10:15:32 up\nUSER TTY FROM LOGIN@ IDLE JCPU PCPU WHAT\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ParseAt(tt.raw, parseNow))
		})
	}
}

func TestParseAt_Deterministic(t *testing.T) {
	raw := " 10:15:32 up 2 days\n" +
		"USER TTY FROM LOGIN@ IDLE JCPU PCPU WHAT\n" +
		"alice pts/0 10.0.0.5 09:00 0.00s 0.10s 0.01s -bash\n"

	first := ParseAt(raw, parseNow)
	second := ParseAt(raw, parseNow)
	assert.Equal(t, first, second, "same input and same clock must produce the same output")
}

func TestParseAt_TooFewColumns(t *testing.T) {
	raw := " 10:15:32 up\n" +
		"USER TTY FROM LOGIN@ IDLE JCPU PCPU WHAT\n" +
		"alice pts/0 10.0.0.5 09:00 0.00s 0.10s\n" // only six columns

	assert.Empty(t, ParseAt(raw, parseNow))
}

func TestParse_UsesWallClockDate(t *testing.T) {
	raw := " 10:15:32 up 2 days\n" +
		"USER TTY FROM LOGIN@ IDLE JCPU PCPU WHAT\n" +
		"alice pts/0 10.0.0.5 09:00 0.00s 0.10s 0.01s -bash\n"

	entries := Parse(raw)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Now().Format("2006-01-02")+" 10:15:32", entries[0].RecordTime)
}
