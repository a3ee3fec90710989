// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pin

import "reflect"

// Rebindable is the F-bounded interface for payload types whose reference
// fields can be re-expressed under a different owner scope. The
// self-referencing constraint T Rebindable[T] gives the compiler knowledge
// that Rebind yields the same concrete type it was called on — the method
// differs from the identity only at the type level, never on the bytes.
//
// Struct payloads implement Rebindable with a mechanical per-field method,
// written by hand, emitted by cmd/rebindgen, or obtained at runtime via
// [DeriveRebind]:
//
//	func (v VecStr) Rebind() VecStr {
//		return VecStr{Data: v.Data, Text: v.Text}
//	}
//
// Flat payloads (a single pointer, slice, or string view) need no
// implementation: for them rebinding reduces to direct reuse and [New]
// skips the call.
type Rebindable[T Rebindable[T]] interface {
	Rebind() T
}

// Rebind applies a payload's own rebinding. It is the free-function form
// of [Rebindable.Rebind] for generic call sites.
func Rebind[T Rebindable[T]](v T) T {
	return v.Rebind()
}

// DeriveRebind builds a field-wise rebinding function for T by reflection,
// the runtime counterpart of a generated Rebind method. The transformation
// is structural and depth-first: nested struct fields are reconstructed
// member-wise, reference kinds (pointers, slices, maps, strings,
// interfaces, channels, funcs) are reused as-is, scalars are copied.
// The result is bit-identical to its input.
//
// Non-struct types rebind to themselves. Panics if T has unexported
// fields, which cannot be reconstructed reflectively; implement Rebind
// directly (or generate it) for such types.
func DeriveRebind[T any]() func(T) T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return func(v T) T { return v }
	}
	checkRebindable(t)
	return func(v T) T {
		out := reflect.New(t).Elem()
		rebindStruct(out, reflect.ValueOf(v))
		return out.Interface().(T)
	}
}

// checkRebindable rejects struct shapes that a reflective member-wise
// reconstruction cannot express.
func checkRebindable(t reflect.Type) {
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			panic("pin: DeriveRebind: unexported field " + t.String() + "." + f.Name)
		}
		if f.Type.Kind() == reflect.Struct {
			checkRebindable(f.Type)
		}
	}
}

// rebindStruct reconstructs src into dst member-wise.
func rebindStruct(dst, src reflect.Value) {
	for i := range src.NumField() {
		f := src.Field(i)
		if f.Kind() == reflect.Struct {
			rebindStruct(dst.Field(i), f)
			continue
		}
		dst.Field(i).Set(f)
	}
}
