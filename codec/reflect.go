package codec

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/hostval"
	"github.com/wippyai/contractgen/symbol"
	"github.com/wippyai/contractgen/typeexpr"
)

const tagName = "contract"

var (
	symbolType = reflect.TypeOf(symbol.Symbol(0))
	bitsetType = reflect.TypeOf(hostval.Bitset(0))
	statusType = reflect.TypeOf(hostval.Status{})
)

// exprOf maps a Go type onto a type expression.
func (r *Registry) exprOf(t reflect.Type) (typeexpr.Expr, error) {
	switch t {
	case symbolType:
		return typeexpr.Named("Symbol"), nil
	case bitsetType:
		return typeexpr.Named("Bitset"), nil
	case statusType:
		return typeexpr.Named("Status"), nil
	}

	switch t.Kind() {
	case reflect.Uint32:
		return typeexpr.Named("u32"), nil
	case reflect.Int32:
		return typeexpr.Named("i32"), nil
	case reflect.Uint64:
		return typeexpr.Named("u64"), nil
	case reflect.Int64:
		return typeexpr.Named("i64"), nil
	case reflect.Bool:
		return typeexpr.Named("bool"), nil
	case reflect.Ptr:
		elem, err := r.exprOf(t.Elem())
		if err != nil {
			return typeexpr.Expr{}, err
		}
		return typeexpr.Named("Option", elem), nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return typeexpr.Named("Binary"), nil
		}
		elem, err := r.exprOf(t.Elem())
		if err != nil {
			return typeexpr.Expr{}, err
		}
		return typeexpr.Named("Vec", elem), nil
	case reflect.Map:
		key, err := r.exprOf(t.Key())
		if err != nil {
			return typeexpr.Expr{}, err
		}
		if isUnitStruct(t.Elem()) {
			return typeexpr.Named("Set", key), nil
		}
		value, err := r.exprOf(t.Elem())
		if err != nil {
			return typeexpr.Expr{}, err
		}
		return typeexpr.Named("Map", key, value), nil
	case reflect.Struct:
		if t.Name() != "" {
			return typeexpr.Named(r.nameOf(t)), nil
		}
		elems := make([]typeexpr.Expr, t.NumField())
		for i := range elems {
			f := t.Field(i)
			if !f.IsExported() {
				return typeexpr.Expr{}, unsupportedGo(t, fmt.Sprintf("tuple element %d (%s) is unexported", i, f.Name))
			}
			e, err := r.exprOf(f.Type)
			if err != nil {
				return typeexpr.Expr{}, err
			}
			elems[i] = e
		}
		return typeexpr.TupleOf(elems...), nil
	}

	return typeexpr.Expr{}, unsupportedGo(t, "no contract type for Go kind "+t.Kind().String())
}

func unsupportedGo(t reflect.Type, detail string) *errors.Error {
	err := errors.UnsupportedType(errors.PhaseGenerate, nil, detail)
	err.GoType = t.String()
	return err
}

func isUnitStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.Name() == "" && t.NumField() == 0
}

// fieldIdent returns the identifier of a struct field and whether it is
// hidden.
func fieldIdent(f reflect.StructField, lower bool) (string, bool) {
	if !f.IsExported() {
		return f.Name, true
	}
	tag := f.Tag.Get(tagName)
	if tag == "-" {
		return f.Name, true
	}
	if tag != "" {
		return tag, false
	}
	if lower {
		return lowerFirst(f.Name), false
	}
	return f.Name, false
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

func appendPath(path []string, seg string) []string {
	return append(append(make([]string, 0, len(path)+1), path...), seg)
}
