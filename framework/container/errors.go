package container

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates the reasons a container operation can fail.
type Kind uint8

const (
	KindUnknown Kind = iota

	// KindClassNotFound: the target type is not in the type catalog.
	KindClassNotFound

	// KindNotInstantiable: the target type is an interface or otherwise abstract.
	KindNotInstantiable

	// KindUnresolvableDependency: a constructor parameter has no override,
	// no resolvable type and no default.
	KindUnresolvableDependency

	// KindInvalidLifecycle: a binding was registered with an unknown lifecycle.
	KindInvalidLifecycle

	// KindConstructorFailed: the type's constructor returned an error.
	KindConstructorFailed
)

var kindNames = map[Kind]string{
	KindUnknown:                "UNKNOWN",
	KindClassNotFound:          "CLASS_NOT_FOUND",
	KindNotInstantiable:        "NOT_INSTANTIABLE",
	KindUnresolvableDependency: "UNRESOLVABLE_DEPENDENCY",
	KindInvalidLifecycle:       "INVALID_LIFECYCLE",
	KindConstructorFailed:      "CONSTRUCTOR_FAILED",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", k)
}

// Error is the single structured error returned by the container.
// Match on Kind (or use the Is* helpers) instead of the message.
type Error struct {
	Kind Kind

	// Abstract is the identifier being bound or built.
	Abstract string

	// Param and Type are set for KindUnresolvableDependency: the parameter name
	// and the type whose constructor declares it.
	Param string
	Type  string

	// Lifecycle holds the rejected value for KindInvalidLifecycle.
	Lifecycle string

	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("container: ")

	switch e.Kind {
	case KindClassNotFound:
		fmt.Fprintf(&b, "class [%s] not found", e.Abstract)
	case KindNotInstantiable:
		fmt.Fprintf(&b, "class [%s] is not instantiable", e.Abstract)
	case KindUnresolvableDependency:
		fmt.Fprintf(&b, "unable to resolve dependency [$%s] in class [%s]", e.Param, e.Type)
	case KindInvalidLifecycle:
		fmt.Fprintf(&b, "invalid lifecycle %q for [%s]", e.Lifecycle, e.Abstract)
	case KindConstructorFailed:
		fmt.Fprintf(&b, "constructing [%s] failed", e.Abstract)
	default:
		fmt.Fprintf(&b, "[%s] %s", e.Kind, e.Abstract)
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same Kind, so callers can write
// errors.Is(err, &container.Error{Kind: container.KindClassNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func errClassNotFound(abstract string) *Error {
	return &Error{Kind: KindClassNotFound, Abstract: abstract}
}

func errNotInstantiable(abstract string) *Error {
	return &Error{Kind: KindNotInstantiable, Abstract: abstract}
}

func errUnresolvable(param, typ string, cause error) *Error {
	return &Error{Kind: KindUnresolvableDependency, Abstract: typ, Param: param, Type: typ, Cause: cause}
}

func errInvalidLifecycle(abstract, lifecycle string) *Error {
	return &Error{Kind: KindInvalidLifecycle, Abstract: abstract, Lifecycle: lifecycle}
}

func errConstructorFailed(abstract string, cause error) *Error {
	return &Error{Kind: KindConstructorFailed, Abstract: abstract, Cause: cause}
}

func isKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func IsClassNotFound(err error) bool { return isKind(err, KindClassNotFound) }

func IsNotInstantiable(err error) bool { return isKind(err, KindNotInstantiable) }

func IsUnresolvableDependency(err error) bool { return isKind(err, KindUnresolvableDependency) }

func IsInvalidLifecycle(err error) bool { return isKind(err, KindInvalidLifecycle) }

func IsConstructorFailed(err error) bool { return isKind(err, KindConstructorFailed) }
