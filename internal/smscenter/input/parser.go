package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
)

// Keywords of the command language.
const (
	keywordSubscribe   = "subscribe"
	keywordUnsubscribe = "unsubscribe"
	keywordMessage     = "message"
	keywordBroadcast   = "broadcast"

	// Identifiers double as commands: "number1 +3611" registers number1 and
	// "group1 +36*" defines group1.
	numberPrefix = "number"
	groupPrefix  = "group"

	commentPrefix = "#"
	textDelimiter = `"`
	targetSep     = ","
)

var (
	// ErrUnknownCommand indicates a line that starts with no known keyword.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMalformedCommand indicates a known command with missing or invalid arguments.
	ErrMalformedCommand = errors.New("malformed command")
)

// ParseError describes a line that could not be turned into commands.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseLine turns one line of the command language into commands. A message
// line with several targets yields one command per target. Blank lines and
// comments yield no commands and no error.
//
//	number1 +36991212321
//	subscribe number1
//	unsubscribe number1
//	group1 +369* +36123*
//	message number1 number2,group1,broadcast "text"
func ParseLine(line string) ([]domain.Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
		return nil, nil
	}

	fields := strings.Fields(trimmed)
	head := fields[0]

	switch {
	case head == keywordSubscribe:
		if len(fields) != 2 {
			return nil, malformed(line, "subscribe takes exactly one identifier")
		}
		return []domain.Command{domain.Subscribe{Identifier: domain.Identifier(fields[1])}}, nil

	case head == keywordUnsubscribe:
		if len(fields) != 2 {
			return nil, malformed(line, "unsubscribe takes exactly one identifier")
		}
		return []domain.Command{domain.Unsubscribe{Identifier: domain.Identifier(fields[1])}}, nil

	case head == keywordMessage:
		return parseMessage(line, trimmed)

	case strings.HasPrefix(head, numberPrefix):
		if len(fields) != 2 {
			return nil, malformed(line, "registration takes exactly one phone number")
		}
		return []domain.Command{domain.Register{
			Identifier:  domain.Identifier(head),
			PhoneNumber: domain.PhoneNumber(fields[1]),
		}}, nil

	case strings.HasPrefix(head, groupPrefix):
		if len(fields) < 2 {
			return nil, malformed(line, "group needs at least one pattern")
		}
		return []domain.Command{domain.CreateGroup{
			Group:    domain.GroupIdentifier(head),
			Patterns: append([]string(nil), fields[1:]...),
		}}, nil
	}

	return nil, &ParseError{Text: line, Err: ErrUnknownCommand}
}

func parseMessage(line, trimmed string) ([]domain.Command, error) {
	open := strings.Index(trimmed, textDelimiter)
	if open < 0 {
		return nil, malformed(line, "message text must be quoted")
	}
	closing := strings.Index(trimmed[open+1:], textDelimiter)
	if closing < 0 {
		return nil, malformed(line, "unterminated message text")
	}
	text := trimmed[open+1 : open+1+closing]

	fields := strings.Fields(trimmed[:open])
	if len(fields) < 3 {
		return nil, malformed(line, "message needs a sender and at least one target")
	}
	sender := domain.Identifier(fields[1])

	var cmds []domain.Command
	for _, target := range strings.Split(strings.Join(fields[2:], " "), targetSep) {
		target = strings.TrimSpace(target)
		switch {
		case strings.ContainsAny(target, " \t"):
			return nil, malformed(line, fmt.Sprintf("targets must be comma separated: %q", target))
		case target == "":
			continue
		case target == keywordBroadcast:
			cmds = append(cmds, domain.SendBroadcast{Sender: sender, Text: text})
		case strings.HasPrefix(target, numberPrefix):
			cmds = append(cmds, domain.SendMessage{Sender: sender, Receiver: domain.Identifier(target), Text: text})
		case strings.HasPrefix(target, groupPrefix):
			cmds = append(cmds, domain.SendGroupMessage{Sender: sender, Group: domain.GroupIdentifier(target), Text: text})
		default:
			return nil, malformed(line, fmt.Sprintf("unknown target %q", target))
		}
	}
	if len(cmds) == 0 {
		return nil, malformed(line, "message has no targets")
	}
	return cmds, nil
}

func malformed(line, reason string) *ParseError {
	return &ParseError{Text: line, Err: fmt.Errorf("%w: %s", ErrMalformedCommand, reason)}
}
