package result

// Void is the payload of a result that carries no value. It takes no space,
// so a Result[Void, E] is just an optional error.
type Void struct{}

// Ref is a mutable, non-owning handle to storage owned by the caller. Copying
// a Ref keeps pointing at the same object; the referent must stay valid for
// as long as the Ref is used.
type Ref[T any] struct {
	ptr *T
}

// RefOf panics when ptr is nil.
func RefOf[T any](ptr *T) Ref[T] {
	if ptr == nil {
		panic("result: RefOf called with a nil pointer")
	}
	return Ref[T]{ptr: ptr}
}

func (r Ref[T]) Get() T {
	return *r.ptr
}

func (r Ref[T]) Set(v T) {
	*r.ptr = v
}

func (r Ref[T]) Ptr() *T {
	return r.ptr
}

// Take moves the referenced value out, leaving the zero value behind.
func (r Ref[T]) Take() T {
	v := *r.ptr
	var zero T
	*r.ptr = zero
	return v
}

func (r Ref[T]) Const() ConstRef[T] {
	return ConstRef[T]{ptr: r.ptr}
}

// ConstRef is the read-only counterpart of Ref.
type ConstRef[T any] struct {
	ptr *T
}

func ConstRefOf[T any](ptr *T) ConstRef[T] {
	if ptr == nil {
		panic("result: ConstRefOf called with a nil pointer")
	}
	return ConstRef[T]{ptr: ptr}
}

func (r ConstRef[T]) Get() T {
	return *r.ptr
}

// Refers reports whether r points at ptr.
func (r ConstRef[T]) Refers(ptr *T) bool {
	return r.ptr == ptr
}

// OkRef creates a successful result borrowing *ptr.
func OkRef[E, T any](ptr *T) Result[Ref[T], E] {
	return Ok[E](RefOf(ptr))
}

// OkConstRef creates a successful result borrowing *ptr read-only.
func OkConstRef[E, T any](ptr *T) Result[ConstRef[T], E] {
	return Ok[E](ConstRefOf(ptr))
}
