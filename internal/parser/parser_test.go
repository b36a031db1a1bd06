package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arminghobadi/alarm-scheduler/internal/domain/alarm"
)

// TestParseSchedule covers the timed message form and its tolerated spacing.
func TestParseSchedule(t *testing.T) {
	t.Parallel()

	r, err := Parse("5 Message(1, 100) hello")
	require.NoError(t, err)
	require.Equal(t, alarm.KindSchedule, r.Kind)
	require.Equal(t, 5, r.DelaySeconds)
	require.Equal(t, 1, r.MessageType)
	require.Equal(t, 100, r.MessageNumber)
	require.Equal(t, "hello", r.MessageText)
	require.True(t, r.AbsoluteExpiry.IsZero())

	// Spacing is tolerated the way a scanf-style reader would.
	r, err = Parse("  10   Message( 2 ,3 )   multi word text  ")
	require.NoError(t, err)
	require.Equal(t, 10, r.DelaySeconds)
	require.Equal(t, 2, r.MessageType)
	require.Equal(t, 3, r.MessageNumber)
	require.Equal(t, "multi word text", r.MessageText)
}

// TestParseControlForms covers the four keyword request forms.
func TestParseControlForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line string
		kind alarm.Kind
		id   int
	}{
		{"Create_Thread: MessageType(4)", alarm.KindCreateThread, 4},
		{"Cancel: Message(7)", alarm.KindCancel, 7},
		{"Pause_Thread: MessageType(2)", alarm.KindPause, 2},
		{"Resume_Thread: MessageType(9)", alarm.KindResume, 9},
	}
	for _, tc := range cases {
		r, err := Parse(tc.line)
		require.NoError(t, err, tc.line)
		require.Equal(t, tc.kind, r.Kind, tc.line)
		require.Equal(t, tc.id, r.Identifier(), tc.line)
		require.Zero(t, r.DelaySeconds, tc.line)
	}
}

// TestParseRejections checks malformed and unknown lines fail with the
// expected sentinel errors.
func TestParseRejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line string
		want error
	}{
		{"", ErrEmptyLine},
		{"   ", ErrEmptyLine},
		{"hello world", ErrUnknownCommand},
		{"create_thread: MessageType(1)", ErrUnknownCommand},
		{"5 Message(1) hello", ErrMalformed},
		{"5 Message(1, 2)", ErrMalformed},
		{"Create_Thread: MessageType()", ErrMalformed},
		{"Cancel: MessageType(7)", ErrMalformed},
		{"Pause_Thread: MessageType(x)", ErrMalformed},
		{"Resume_Thread MessageType(1)", ErrMalformed},
	}
	for _, tc := range cases {
		_, err := Parse(tc.line)
		require.ErrorIs(t, err, tc.want, "line %q", tc.line)
	}
}

// TestParseMessageLengthLimit enforces the payload byte limit.
func TestParseMessageLengthLimit(t *testing.T) {
	t.Parallel()

	atLimit := strings.Repeat("a", alarm.MaxMessageBytes)
	r, err := Parse("1 Message(1, 1) " + atLimit)
	require.NoError(t, err)
	require.Len(t, r.MessageText, alarm.MaxMessageBytes)

	_, err = Parse("1 Message(1, 1) " + atLimit + "b")
	require.ErrorIs(t, err, ErrMessageTooLong)
}
