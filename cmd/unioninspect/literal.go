package main

import (
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/wippyai/union"
	"github.com/wippyai/union/errors"
)

// parser turns a literal into a union of one Go type.
type parser func(r *union.Registry, literal string) (union.Union, error)

var parsers = map[string]parser{
	"bool": func(r *union.Registry, s string) (union.Union, error) {
		v, err := strconv.ParseBool(s)
		return encode(r, v, err, "bool", s)
	},
	"int":     signed[int](0),
	"int8":    signed[int8](8),
	"int16":   signed[int16](16),
	"int32":   signed[int32](32),
	"int64":   signed[int64](64),
	"uint":    unsigned[uint](0),
	"uint8":   unsigned[uint8](8),
	"uint16":  unsigned[uint16](16),
	"uint32":  unsigned[uint32](32),
	"uint64":  unsigned[uint64](64),
	"uintptr": unsigned[uintptr](64),
	"float32": func(r *union.Registry, s string) (union.Union, error) {
		v, err := strconv.ParseFloat(s, 32)
		return encode(r, float32(v), err, "float32", s)
	},
	"float64": func(r *union.Registry, s string) (union.Union, error) {
		v, err := strconv.ParseFloat(s, 64)
		return encode(r, v, err, "float64", s)
	},
	"complex64": func(r *union.Registry, s string) (union.Union, error) {
		v, err := strconv.ParseComplex(s, 64)
		return encode(r, complex64(v), err, "complex64", s)
	},
	"complex128": func(r *union.Registry, s string) (union.Union, error) {
		v, err := strconv.ParseComplex(s, 128)
		return encode(r, v, err, "complex128", s)
	},
	"string": func(r *union.Registry, s string) (union.Union, error) {
		return union.ConverterOf[string](r).ToUnion(s), nil
	},
	"rune": func(r *union.Registry, s string) (union.Union, error) {
		v, err := strconv.Unquote("'" + strings.Trim(s, "'") + "'")
		if err != nil || len([]rune(v)) != 1 {
			return union.Union{}, errors.InvalidInput(errors.PhaseEncode, "invalid rune literal "+strconv.Quote(s))
		}
		return union.ConverterOf[rune](r).ToUnion([]rune(v)[0]), nil
	},
	"[]byte": func(r *union.Registry, s string) (union.Union, error) {
		return union.ConverterOf[[]byte](r).ToUnion([]byte(s)), nil
	},
}

// typeNames returns the names accepted by parseLiteral, sorted.
func typeNames() []string {
	names := maps.Keys(parsers)
	slices.Sort(names)
	return names
}

// parseLiteral encodes literal as a value of the named Go type.
func parseLiteral(r *union.Registry, typeName, literal string) (union.Union, error) {
	p, ok := parsers[strings.TrimSpace(typeName)]
	if !ok {
		return union.Union{}, errors.NotFound(errors.PhaseEncode, "type", typeName)
	}
	return p(r, strings.TrimSpace(literal))
}

// splitInput splits "type value" or "type=value" into its parts.
func splitInput(line string) (typeName, literal string, ok bool) {
	line = strings.TrimSpace(line)
	if i := strings.IndexAny(line, " ="); i > 0 {
		return line[:i], strings.TrimSpace(line[i+1:]), true
	}
	return "", "", false
}

type signedInt interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsignedInt interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

func signed[T signedInt](bits int) parser {
	return func(r *union.Registry, s string) (union.Union, error) {
		v, err := strconv.ParseInt(s, 0, bits)
		return encode(r, T(v), err, typeLabel[T](), s)
	}
}

func unsigned[T unsignedInt](bits int) parser {
	return func(r *union.Registry, s string) (union.Union, error) {
		v, err := strconv.ParseUint(s, 0, bits)
		return encode(r, T(v), err, typeLabel[T](), s)
	}
}

func encode[T any](r *union.Registry, v T, err error, name, literal string) (union.Union, error) {
	if err != nil {
		return union.Union{}, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			GoType(name).
			Value(literal).
			Cause(err).
			Detail("cannot parse %q", literal).
			Build()
	}
	return union.ConverterOf[T](r).ToUnion(v), nil
}

func typeLabel[T any]() string {
	return reflect.TypeFor[T]().String()
}
