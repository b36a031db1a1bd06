// Package parser turns raw input lines into typed alarm requests.
//
// The grammar is line-oriented with case-sensitive keyword prefixes:
//
//	<seconds> Message(<type>, <number>) <text>
//	Create_Thread: MessageType(<type>)
//	Cancel: Message(<number>)
//	Pause_Thread: MessageType(<type>)
//	Resume_Thread: MessageType(<type>)
//
// Parsing never touches the queue; rejected lines surface as errors the
// dispatcher reports and skips.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/arminghobadi/alarm-scheduler/internal/domain/alarm"
)

var (
	// ErrEmptyLine is returned for blank input; the dispatcher skips it
	// without a diagnostic.
	ErrEmptyLine = errors.New("empty line")
	// ErrUnknownCommand is returned when the line matches no known prefix.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMalformed is returned when a recognised prefix fails its grammar.
	ErrMalformed = errors.New("malformed request")
	// ErrMessageTooLong is returned when a Schedule payload exceeds
	// alarm.MaxMessageBytes.
	ErrMessageTooLong = errors.New("message text too long")
)

var (
	scheduleRe = regexp.MustCompile(`^(\d+)\s+Message\(\s*(\d+)\s*,\s*(\d+)\s*\)\s+(.+)$`)
	createRe   = regexp.MustCompile(`^Create_Thread:\s*MessageType\(\s*(\d+)\s*\)$`)
	cancelRe   = regexp.MustCompile(`^Cancel:\s*Message\(\s*(\d+)\s*\)$`)
	pauseRe    = regexp.MustCompile(`^Pause_Thread:\s*MessageType\(\s*(\d+)\s*\)$`)
	resumeRe   = regexp.MustCompile(`^Resume_Thread:\s*MessageType\(\s*(\d+)\s*\)$`)
)

// Parse converts one input line into a Request. The returned request has no
// absolute expiry yet; the dispatcher stamps it on acceptance.
func Parse(line string) (*alarm.Request, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrEmptyLine
	}

	switch kind := detectKind(line); kind {
	case alarm.KindSchedule:
		return parseSchedule(line)
	case alarm.KindCreateThread:
		return parseControl(line, kind, createRe)
	case alarm.KindCancel:
		return parseControl(line, kind, cancelRe)
	case alarm.KindPause:
		return parseControl(line, kind, pauseRe)
	case alarm.KindResume:
		return parseControl(line, kind, resumeRe)
	default:
		return nil, ErrUnknownCommand
	}
}

// detectKind classifies the line by its leading token. A leading digit means
// Schedule; otherwise the keyword prefix decides. Zero means unrecognised.
func detectKind(line string) alarm.Kind {
	r := rune(line[0])
	if unicode.IsDigit(r) {
		return alarm.KindSchedule
	}

	switch {
	case strings.HasPrefix(line, "Create_Thread"):
		return alarm.KindCreateThread
	case strings.HasPrefix(line, "Cancel"):
		return alarm.KindCancel
	case strings.HasPrefix(line, "Pause_Thread"):
		return alarm.KindPause
	case strings.HasPrefix(line, "Resume_Thread"):
		return alarm.KindResume
	default:
		return alarm.Kind(0)
	}
}

func parseSchedule(line string) (*alarm.Request, error) {
	m := scheduleRe.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, alarm.KindSchedule)
	}

	seconds, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: seconds %q", ErrMalformed, alarm.KindSchedule, m[1])
	}

	messageType, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: type %q", ErrMalformed, alarm.KindSchedule, m[2])
	}

	messageNumber, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: number %q", ErrMalformed, alarm.KindSchedule, m[3])
	}

	text := m[4]
	if len(text) > alarm.MaxMessageBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrMessageTooLong, len(text), alarm.MaxMessageBytes)
	}

	return &alarm.Request{
		Kind:          alarm.KindSchedule,
		DelaySeconds:  seconds,
		MessageType:   messageType,
		MessageNumber: messageNumber,
		MessageText:   text,
	}, nil
}

// parseControl handles the four keyword forms, which all carry a single
// integer identifier.
func parseControl(line string, kind alarm.Kind, re *regexp.Regexp) (*alarm.Request, error) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, kind)
	}

	id, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: identifier %q", ErrMalformed, kind, m[1])
	}

	req := &alarm.Request{Kind: kind}
	if kind.UsesMessageNumber() {
		req.MessageNumber = id
	} else {
		req.MessageType = id
	}

	return req, nil
}
