package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseGenerate Phase = "generate" // descriptor and codec generation
	PhaseEncode   Phase = "encode"   // Go to host value
	PhaseDecode   Phase = "decode"   // host value to Go
	PhaseSchema   Phase = "schema"   // schema serialization
	PhaseHost     Phase = "host"     // host object operations
	PhaseLoad     Phase = "load"     // module and artifact loading
	PhaseParse    Phase = "parse"    // type expression and definition parsing
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedType         Kind = "unsupported_type"
	KindUnsupportedVariantShape Kind = "unsupported_variant_shape"
	KindIdentifierTooLong       Kind = "identifier_too_long"
	KindInvalidIdentifier       Kind = "invalid_identifier"
	KindDepthExceeded           Kind = "depth_exceeded"
	KindDuplicateName           Kind = "duplicate_name"
	KindTypeMismatch            Kind = "type_mismatch"
	KindFieldMissing            Kind = "field_missing"
	KindInvalidVariant          Kind = "invalid_variant"
	KindInvalidData             Kind = "invalid_data"
	KindOverflow                Kind = "overflow"
	KindNotFound                Kind = "not_found"
	KindNilPointer              Kind = "nil_pointer"
	KindInvalidInput            Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	TypeName string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.TypeName != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.TypeName != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", contract type ")
			b.WriteString(e.TypeName)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("contract type ")
			b.WriteString(e.TypeName)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.TypeName != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Kind matches any error of the same phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Kind == "" {
			return e.Phase == t.Phase
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// WithPrefix returns a copy of the error with path segments prepended.
func (e *Error) WithPrefix(prefix ...string) *Error {
	if len(prefix) == 0 {
		return e
	}
	cp := *e
	cp.Path = append(append(make([]string, 0, len(prefix)+len(e.Path)), prefix...), e.Path...)
	return &cp
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// TypeName sets the contract type name
func (b *Builder) TypeName(t string) *Builder {
	b.err.TypeName = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Sentinels for errors.Is checks against a whole class of errors.
var (
	// ErrConversion matches every runtime decode failure.
	ErrConversion = &Error{Phase: PhaseDecode}
	// ErrGeneration matches every generation-time failure.
	ErrGeneration = &Error{Phase: PhaseGenerate}
	// ErrSchemaEncoding matches length overflows during schema serialization.
	ErrSchemaEncoding = &Error{Phase: PhaseSchema, Kind: KindOverflow}
)

// IsConversion reports whether err is (or wraps) a runtime decode failure.
func IsConversion(err error) bool {
	return is(err, ErrConversion)
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, typeName string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		TypeName: typeName,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// UnknownDiscriminant creates an error for a discriminant matching no case
func UnknownDiscriminant(phase Phase, path []string, disc string, enumType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidVariant,
		Path:     path,
		TypeName: enumType,
		Detail:   fmt.Sprintf("discriminant %q matches no case", disc),
		Value:    disc,
	}
}

// UnsupportedType creates an unsupported type error
func UnsupportedType(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedType,
		Path:   path,
		Detail: detail,
	}
}

// UnsupportedVariantShape creates an error for a case with more than one payload
func UnsupportedVariantShape(path []string, caseName string, payloads int) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnsupportedVariantShape,
		Path:   path,
		Detail: fmt.Sprintf("case %q declares %d payload fields, at most one is supported", caseName, payloads),
		Value:  payloads,
	}
}

// IdentifierTooLong creates an identifier length error naming the identifier
func IdentifierTooLong(phase Phase, path []string, name string, maxLen int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIdentifierTooLong,
		Path:   path,
		Detail: fmt.Sprintf("identifier %q is %d characters, maximum is %d", name, len(name), maxLen),
		Value:  name,
	}
}

// InvalidIdentifier creates an identifier charset error
func InvalidIdentifier(phase Phase, path []string, name string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidIdentifier,
		Path:   path,
		Detail: fmt.Sprintf("identifier %q: %s", name, detail),
		Value:  name,
	}
}

// DepthExceeded creates a nesting depth error
func DepthExceeded(phase Phase, path []string, maxDepth int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   path,
		Detail: fmt.Sprintf("type nesting exceeds maximum depth %d", maxDepth),
		Value:  maxDepth,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, limit int, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("%s length %v exceeds maximum %d", what, value, limit),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
