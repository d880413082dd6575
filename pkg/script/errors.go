package script

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a script error for programmatic handling.
type ErrorKind string

const (
	// KindLexical marks a marker with an empty or malformed payload
	// (empty node id, empty @next target).
	KindLexical ErrorKind = "lexical"
	// KindContentOutsideNode marks content before any `::` header.
	KindContentOutsideNode ErrorKind = "content_outside_node"
	// KindDuplicateNodeID marks two nodes declaring the same id.
	KindDuplicateNodeID ErrorKind = "duplicate_node_id"
	// KindConflictingNextAndChoices marks a node with both an @next
	// directive and one or more choices.
	KindConflictingNextAndChoices ErrorKind = "conflicting_next_and_choices"
	// KindDuplicateDirective marks a node declaring @next more than once.
	KindDuplicateDirective ErrorKind = "duplicate_directive"
	// KindDanglingReference marks a next/choice target that matches no
	// declared node id.
	KindDanglingReference ErrorKind = "dangling_reference"
	// KindMalformedChoice marks a `*` line without a valid `label => target`.
	KindMalformedChoice ErrorKind = "malformed_choice"
	// KindMalformedMeta marks an `@` line that is neither a known directive
	// nor a `key: value` pair.
	KindMalformedMeta ErrorKind = "malformed_meta"
	// KindDanglingCondition marks an `@if` line not followed by a choice.
	KindDanglingCondition ErrorKind = "dangling_condition"
	// KindConflictingCondition marks a choice guarded by both a preceding
	// `@if` line and an inline `@if`.
	KindConflictingCondition ErrorKind = "conflicting_condition"
)

// Error is a single structured script error with its source location.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Line    int       `json:"line"` // 1-based source line; 0 if not line-bound
	NodeID  string    `json:"node_id,omitempty"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", e.Line)
	}
	if e.NodeID != "" {
		fmt.Fprintf(&sb, "node %q: ", e.NodeID)
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// Errorf builds an Error with a formatted message.
func Errorf(kind ErrorKind, line int, nodeID, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Line:    line,
		NodeID:  nodeID,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorList aggregates every problem found across scanning, parsing and
// validation so authors see all of them in one pass.
type ErrorList struct {
	Errors []*Error
}

func (l *ErrorList) Error() string {
	if len(l.Errors) == 1 {
		return l.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d script errors:\n", len(l.Errors))
	for i, err := range l.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Add appends errors to the list. Nil entries are ignored.
func (l *ErrorList) Add(errs ...*Error) {
	for _, err := range errs {
		if err != nil {
			l.Errors = append(l.Errors, err)
		}
	}
}

// Merge absorbs another list.
func (l *ErrorList) Merge(other *ErrorList) {
	if other != nil {
		l.Errors = append(l.Errors, other.Errors...)
	}
}

// Empty reports whether no errors were collected.
func (l *ErrorList) Empty() bool {
	return len(l.Errors) == 0
}

// HasKind reports whether any collected error has the given kind.
func (l *ErrorList) HasKind(kind ErrorKind) bool {
	for _, err := range l.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}

// AsErrorList unwraps err into an *ErrorList if it is one.
func AsErrorList(err error) (*ErrorList, bool) {
	var list *ErrorList
	if errors.As(err, &list) {
		return list, true
	}
	return nil, false
}
