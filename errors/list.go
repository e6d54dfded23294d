package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// List aggregates every error found while processing one or more types.
// Generation never stops at the first failure; callers receive the full set.
type List struct {
	Type string
	Errs []*Error
}

// Add appends err to the list. Non-structured errors are wrapped as invalid data.
func (l *List) Add(err error, prefix ...string) {
	if err == nil {
		return
	}
	var nested *List
	if stderrors.As(err, &nested) {
		for _, e := range nested.Errs {
			l.Errs = append(l.Errs, e.WithPrefix(prefix...))
		}
		return
	}
	var e *Error
	if !stderrors.As(err, &e) {
		e = Wrap(PhaseGenerate, KindInvalidData, err, "")
	}
	l.Errs = append(l.Errs, e.WithPrefix(prefix...))
}

// Len returns the number of collected errors.
func (l *List) Len() int {
	return len(l.Errs)
}

// Err returns nil when the list is empty, otherwise the list itself.
func (l *List) Err() error {
	if l == nil || len(l.Errs) == 0 {
		return nil
	}
	return l
}

// Error implements the error interface
func (l *List) Error() string {
	var b strings.Builder
	if l.Type != "" {
		b.WriteString(l.Type)
		b.WriteString(": ")
	}
	if len(l.Errs) == 1 {
		b.WriteString(l.Errs[0].Error())
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%d errors:", len(l.Errs)))
	for _, e := range l.Errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (l *List) Unwrap() []error {
	out := make([]error, len(l.Errs))
	for i, e := range l.Errs {
		out[i] = e
	}
	return out
}

// Kinds returns the kind of every collected error in order.
func (l *List) Kinds() []Kind {
	out := make([]Kind, len(l.Errs))
	for i, e := range l.Errs {
		out[i] = e.Kind
	}
	return out
}

func is(err, target error) bool {
	return stderrors.Is(err, target)
}
