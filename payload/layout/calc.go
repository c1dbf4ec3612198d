package layout

import (
	"reflect"
	"strconv"
	"sync"
)

// Shape is the coarse storage class of a type.
type Shape uint8

const (
	ShapeScalar    Shape = iota // pointer-free primitive
	ShapeComposite              // pointer-free array or struct
	ShapeString                 // string header
	ShapeReference              // anything else holding pointers
)

var shapeNames = [...]string{
	ShapeScalar:    "scalar",
	ShapeComposite: "composite",
	ShapeString:    "string",
	ShapeReference: "reference",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Info describes how a type would occupy a payload.
type Info struct {
	// PointerPath names the first pointer-bearing element, starting with the
	// type name. Empty when PointerFree.
	PointerPath []string
	Size        uintptr
	Align       uintptr
	Shape       Shape
	PointerFree bool
}

// Fits reports whether the type can be stored inline within capacity bytes.
func (i Info) Fits(capacity int) bool {
	return i.PointerFree && capacity >= 0 && i.Size <= uintptr(capacity)
}

var cache sync.Map // reflect.Type -> Info

// Of returns the layout of t. A nil type has zero size and is not pointer-free.
func Of(t reflect.Type) Info {
	if t == nil {
		return Info{Shape: ShapeReference}
	}
	if cached, ok := cache.Load(t); ok {
		return cached.(Info)
	}

	info := Info{
		Size:  t.Size(),
		Align: uintptr(t.Align()),
	}
	path, free := pointerPath(t, []string{typeLabel(t)})
	info.PointerFree = free
	if !free {
		info.PointerPath = path
	}
	info.Shape = shapeOf(t, free)

	actual, _ := cache.LoadOrStore(t, info)
	return actual.(Info)
}

func shapeOf(t reflect.Type, free bool) Shape {
	switch {
	case t.Kind() == reflect.String:
		return ShapeString
	case !free:
		return ShapeReference
	case t.Kind() == reflect.Array || t.Kind() == reflect.Struct:
		return ShapeComposite
	default:
		return ShapeScalar
	}
}

// pointerPath walks t and returns the path to the first element the garbage
// collector would have to scan.
func pointerPath(t reflect.Type, path []string) ([]string, bool) {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil, true
	case reflect.Array:
		if t.Len() == 0 {
			return nil, true
		}
		return pointerPath(t.Elem(), append(path, "["+strconv.Itoa(t.Len())+"]"))
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if p, free := pointerPath(f.Type, append(path, f.Name)); !free {
				return p, false
			}
		}
		return nil, true
	default:
		return append([]string(nil), path...), false
	}
}

func typeLabel(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
