package di

import (
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// Constructor builds a value of Type from already resolved Params.
//
// Constructors come from four places:
//   - "func": a function registered with Provide
//   - "memberwise": the implicit constructor of a struct, one parameter per exported field
//   - "address": the implicit constructor of *T, taking T
//   - "deref": the implicit constructor of T when only *T constructors are registered
type Constructor struct {
	Type   reflect.Type
	Params []reflect.Type
	Source string

	build func(args []reflect.Value) (reflect.Value, error)
}

// Call invokes the constructor. Panics are converted into ConstructorPanicError.
func (k Constructor) Call(args []reflect.Value) (v reflect.Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = reflect.Value{}
			err = ConstructorPanicError{Type: k.Type, Value: rec}
		}
	}()
	return k.build(args)
}

// funcConstructor validates fn and wraps it.
// Accepted shapes: func(P1..Pn) T and func(P1..Pn) (T, error).
func funcConstructor(fn any) (Constructor, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() {
		return Constructor{}, InvalidConstructorError{Reason: "nil value"}
	}
	ft := v.Type()
	if ft.Kind() != reflect.Func {
		return Constructor{}, InvalidConstructorError{Func: ft, Reason: "not a function"}
	}
	if v.IsNil() {
		return Constructor{}, InvalidConstructorError{Func: ft, Reason: "nil function"}
	}
	if ft.IsVariadic() {
		return Constructor{}, InvalidConstructorError{Func: ft, Reason: "variadic constructors are not supported"}
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return Constructor{}, InvalidConstructorError{Func: ft, Reason: "must return T or (T, error)"}
	}
	if ft.Out(0) == errorType {
		return Constructor{}, InvalidConstructorError{Func: ft, Reason: "must not construct error"}
	}

	out := ft.Out(0)
	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}

	return Constructor{
		Type:   out,
		Params: params,
		Source: "func",
		build: func(args []reflect.Value) (reflect.Value, error) {
			res := v.Call(args)
			if len(res) == 2 && !res[1].IsNil() {
				return reflect.Value{}, ConstructorFailedError{Type: out, Err: res[1].Interface().(error)}
			}
			return res[0], nil
		},
	}, nil
}

// memberwiseConstructor is the implicit constructor of struct t: one parameter
// per exported field in declaration order. Unexported fields stay zero.
func memberwiseConstructor(t reflect.Type) Constructor {
	var (
		params []reflect.Type
		fields []int
	)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		params = append(params, f.Type)
		fields = append(fields, i)
	}

	return Constructor{
		Type:   t,
		Params: params,
		Source: "memberwise",
		build: func(args []reflect.Value) (reflect.Value, error) {
			v := reflect.New(t).Elem()
			for i, idx := range fields {
				v.Field(idx).Set(args[i])
			}
			return v, nil
		},
	}
}

// addressConstructor builds *T from a resolved T.
func addressConstructor(t reflect.Type) Constructor {
	elem := t.Elem()
	return Constructor{
		Type:   t,
		Params: []reflect.Type{elem},
		Source: "address",
		build: func(args []reflect.Value) (reflect.Value, error) {
			p := reflect.New(elem)
			p.Elem().Set(args[0])
			return p, nil
		},
	}
}

// derefConstructor builds T by calling a constructor of *T.
func derefConstructor(t reflect.Type, ptr Constructor) Constructor {
	return Constructor{
		Type:   t,
		Params: ptr.Params,
		Source: "deref",
		build: func(args []reflect.Value) (reflect.Value, error) {
			p, err := ptr.build(args)
			if err != nil {
				return reflect.Value{}, err
			}
			if p.IsNil() {
				return reflect.Value{}, ConstructorFailedError{Type: t, Err: ErrNilConstructorResult}
			}
			return p.Elem(), nil
		},
	}
}

// constructorTable holds explicitly provided constructors keyed by produced type.
type constructorTable struct {
	byType map[reflect.Type][]Constructor
}

func newConstructorTable() constructorTable {
	return constructorTable{byType: map[reflect.Type][]Constructor{}}
}

func (t constructorTable) add(k Constructor) {
	t.byType[k.Type] = append(t.byType[k.Type], k)
}

func (t constructorTable) has(rt reflect.Type) bool {
	return len(t.byType[rt]) > 0
}

// candidates lists the constructors of d.Type. Explicit constructors replace the
// implicit ones; they are never mixed.
func (t constructorTable) candidates(d Descriptor) []Constructor {
	if ks := t.byType[d.Type]; len(ks) > 0 {
		return append([]Constructor(nil), ks...)
	}
	if d.Type.Kind() == reflect.Pointer {
		return []Constructor{addressConstructor(d.Type)}
	}
	if ks := t.byType[reflect.PointerTo(d.Type)]; len(ks) > 0 {
		out := make([]Constructor, len(ks))
		for i, k := range ks {
			out[i] = derefConstructor(d.Type, k)
		}
		return out
	}
	if d.Kind == KindConcrete && d.Type.Kind() == reflect.Struct {
		return []Constructor{memberwiseConstructor(d.Type)}
	}
	return nil
}
