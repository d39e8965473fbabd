package promotion

import (
	"errors"
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusDenied
}

type Decision string

const (
	Approve Decision = "approve"
	Deny    Decision = "deny"
)

var (
	// ErrAlreadyDecided is returned for any decision on a non-pending request.
	ErrAlreadyDecided  = errors.New("promotion: request already decided")
	ErrUnknownDecision = errors.New("promotion: unknown decision")
)

func ParseDecision(s string) (Decision, error) {
	switch d := Decision(strings.ToLower(strings.TrimSpace(s))); d {
	case Approve, Deny:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDecision, s)
	}
}

// Status is the terminal status the decision leads to.
func (d Decision) Status() Status {
	if d == Approve {
		return StatusApproved
	}
	return StatusDenied
}

// Transition applies d to current. Only pending requests move; anything else
// keeps its status and reports ErrAlreadyDecided.
func Transition(current Status, d Decision) (Status, error) {
	if current != StatusPending {
		return current, ErrAlreadyDecided
	}
	if d != Approve && d != Deny {
		return current, fmt.Errorf("%w: %q", ErrUnknownDecision, d)
	}
	return d.Status(), nil
}

const customIDPrefix = "review"

// CustomID is the button id carried by the staff message.
func CustomID(d Decision, requestID string) string {
	return customIDPrefix + ":" + string(d) + ":" + requestID
}

// ParseCustomID splits "review:<decision>:<request id>".
func ParseCustomID(id string) (Decision, string, error) {
	parts := strings.Split(id, ":")
	if len(parts) != 3 || parts[0] != customIDPrefix || parts[2] == "" {
		return "", "", fmt.Errorf("promotion: unrecognised custom id %q", id)
	}
	d, err := ParseDecision(parts[1])
	if err != nil {
		return "", "", err
	}
	return d, parts[2], nil
}
