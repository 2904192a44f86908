package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateName = errors.New("duplicate chat name")
	ErrUnknownChat   = errors.New("unknown chat")
	ErrCorruptState  = errors.New("corrupt ledger state")
	ErrInvalidName   = errors.New("invalid chat name")
)

// DuplicateNameError reports an AddChat for a name that is already registered.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	if e == nil {
		return ErrDuplicateName.Error()
	}
	return fmt.Sprintf("a chat with name %q already exists", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// UnknownChatError reports a lookup of a name that was never registered.
type UnknownChatError struct {
	Name string
}

func (e *UnknownChatError) Error() string {
	if e == nil {
		return ErrUnknownChat.Error()
	}
	return fmt.Sprintf("no chat found with name %q", e.Name)
}

func (e *UnknownChatError) Is(target error) bool { return target == ErrUnknownChat }

// CorruptStateError reports a snapshot that exists but cannot be read back.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	if e == nil {
		return ErrCorruptState.Error()
	}
	return fmt.Sprintf("%s: %s: %v", ErrCorruptState, e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

func (e *CorruptStateError) Is(target error) bool { return target == ErrCorruptState }

// InvalidNameError reports a chat name that cannot be used as a file name.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	if e == nil {
		return ErrInvalidName.Error()
	}
	return fmt.Sprintf("%s %q: %s", ErrInvalidName, e.Name, e.Reason)
}

func (e *InvalidNameError) Is(target error) bool { return target == ErrInvalidName }

// ValidateName checks that name is usable as a transcript file name.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &InvalidNameError{Name: name, Reason: "name is empty"}
	case name == "." || name == "..":
		return &InvalidNameError{Name: name, Reason: "name is a relative directory"}
	}
	for _, r := range name {
		switch r {
		case '/', '\\':
			return &InvalidNameError{Name: name, Reason: "name contains a path separator"}
		case 0:
			return &InvalidNameError{Name: name, Reason: "name contains a NUL byte"}
		}
	}
	return nil
}
