package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleConfirmedAppendsAuditLine(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	msg := ReservationConfirmedMessage{
		ReservationID:   "r1",
		UserID:          "u1",
		UserEmail:       "ada@example.com",
		ParticipantName: "Ada Lovelace",
		EventID:         "e1",
		EventTitle:      "Go Meetup",
		EventDate:       "2026-09-10T18:00:00Z",
		EventLocation:   "Paris",
		ConfirmedAt:     "2026-08-29T10:00:00Z",
	}
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	require.NoError(t, handleConfirmed(body))
	require.NoError(t, handleConfirmed(body))

	data, err := os.ReadFile(filepath.Join("logs", "reservations.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "reservation_id=r1")
	assert.Contains(t, string(data), `"Ada Lovelace" <ada@example.com>`)
	assert.Contains(t, string(data), `"Go Meetup"`)
	// one line per confirmation
	assert.Equal(t, 2, countLines(data))
}

func countLines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}

func TestHandleConfirmedRejectsMalformed(t *testing.T) {
	assert.Error(t, handleConfirmed([]byte("{not json")))
}
