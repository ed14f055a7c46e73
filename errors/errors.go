package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode  Phase = "encode"  // value to wire bytes
	PhaseDecode  Phase = "decode"  // wire bytes to value
	PhaseResolve Phase = "resolve" // codec derivation
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidSize      Kind = "invalid_size"
	KindOverflow         Kind = "overflow"
	KindTypeMismatch     Kind = "type_mismatch"
	KindRecursiveType    Kind = "recursive_type"
	KindUnsupportedShape Kind = "unsupported_shape"
	KindInvalidData      Kind = "invalid_data"
	KindUnexpectedEOF    Kind = "unexpected_eof"
	KindInvalidUTF8      Kind = "invalid_utf8"
	KindUnknownField     Kind = "unknown_field"
	KindInvalidEnum      Kind = "invalid_enum"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	SchemaType string
	Detail     string
	Path       []string
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

	if e.GoType != "" || e.SchemaType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.SchemaType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", schema type ")
			b.WriteString(e.SchemaType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("schema type ")
			b.WriteString(e.SchemaType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.SchemaType != "" {
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
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

// SchemaType sets the schema type name
func (b *Builder) SchemaType(t string) *Builder {
	b.err.SchemaType = t
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

// Convenience constructors for common error patterns

// InvalidSize creates an invalid size error for negative lengths
func InvalidSize(phase Phase, what string, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidSize,
		Detail: fmt.Sprintf("invalid %s size %d", what, size),
		Value:  size,
	}
}

// Overflow creates an overflow error for values outside the wire format's range
func Overflow(phase Phase, value any, targetType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindOverflow,
		SchemaType: targetType,
		Detail:     fmt.Sprintf("value %v exceeds %s range", value, targetType),
		Value:      value,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, schemaType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		GoType:     goType,
		SchemaType: schemaType,
	}
}

// RecursiveType creates an error for self-referential descriptors
func RecursiveType(schemaType string) *Error {
	return &Error{
		Phase:      PhaseResolve,
		Kind:       KindRecursiveType,
		SchemaType: schemaType,
		Detail:     "recursive type not supported",
	}
}

// UnsupportedShape creates an error for shapes the resolver has no case for
func UnsupportedShape(schemaType string) *Error {
	return &Error{
		Phase:      PhaseResolve,
		Kind:       KindUnsupportedShape,
		SchemaType: schemaType,
		Detail:     "no codec derivation for shape",
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

// UnexpectedEOF creates a truncated-input error
func UnexpectedEOF(need, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnexpectedEOF,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// UnknownField creates an unknown field error
func UnknownField(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownField,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindInvalidEnum,
		Path:       path,
		SchemaType: enumType,
		Detail:     fmt.Sprintf("invalid enum value %v for %s", value, enumType),
		Value:      value,
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
