package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based position in list order, 0 if ID is set
	ID  string // literal task id, "" if Num is set
}

// String returns the reference as the user typed it.
func (r TaskRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return strconv.Itoa(r.Num)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from the first arg and returns it
// together with the remaining args.
//
// Parsing rules:
// 1. No args, or a blank first arg → ErrTaskRefRequired
// 2. First arg is all digits → position reference (must be >= 1)
// 3. First arg starts with '-' → error: invalid task reference
// 4. Otherwise → literal task id
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	first := strings.TrimSpace(args[0])
	rest := args[1:]
	if first == "" {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	if isAllDigits(first) {
		num, err := strconv.Atoi(first)
		if err != nil || num < 1 {
			return TaskRef{}, nil, fmt.Errorf("task number out of range: %s", first)
		}
		return TaskRef{Num: num}, rest, nil
	}

	if strings.HasPrefix(first, "-") {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
	}

	return TaskRef{ID: first}, rest, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
