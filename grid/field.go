package grid

import "fmt"

// Field is a distributed 3-D array of T over one rank's subdomain, with
// ghost layers on every side. Storage is a single flat slice indexed in
// (k,j,i) row-major order over the ghosted extent, the layout the
// intersector and level-set packages iterate with i-innermost triple
// loops.
type Field[T any] struct {
	name string
	sub  Subdomain
	dim  [3]int // ghosted extent per axis
	data []T

	scopeOpen bool // true between Acquire and Release; catches an unpaired acquire
	writeScope   bool
	exchangeHook func()
}

// NewField allocates a Field over sub's ghosted extent.
func NewField[T any](name string, sub Subdomain) *Field[T] {
	var dim [3]int
	for a := 0; a < 3; a++ {
		b := sub.GhostedBounds(Axis(a))
		dim[a] = b.Len()
	}
	return &Field[T]{
		name: name,
		sub:  sub,
		dim:  dim,
		data: make([]T, dim[0]*dim[1]*dim[2]),
	}
}

// Subdomain returns the field's subdomain description.
func (f *Field[T]) Subdomain() Subdomain { return f.sub }

func (f *Field[T]) offset(i, j, k int) int {
	gx := f.sub.GhostedBounds(X)
	gy := f.sub.GhostedBounds(Y)
	gz := f.sub.GhostedBounds(Z)
	li, lj, lk := i-gx.Lo, j-gy.Lo, k-gz.Lo
	if li < 0 || li >= f.dim[0] || lj < 0 || lj >= f.dim[1] || lk < 0 || lk >= f.dim[2] {
		panic(fmt.Sprintf("grid.Field %q: index (%d,%d,%d) outside ghosted extent", f.name, i, j, k))
	}
	return li + f.dim[0]*(lj+f.dim[1]*lk)
}

// Scope is the RAII-like guard returned by Acquire. It exposes raw,
// index-addressed access to the field's backing storage; every Acquire
// of a raw data pointer must be paired with a Release.
type Scope[T any] struct {
	f        *Field[T]
	writable bool
	released bool
}

// Acquire begins a read or write scope on the field. forWrite=true grants
// a write scope whose Release triggers the ghost exchange; forWrite=false
// grants a read-only scope whose Release is a no-op.
func (f *Field[T]) Acquire(forWrite bool) *Scope[T] {
	if f.scopeOpen {
		panic(fmt.Sprintf("grid.Field %q: Acquire called while a scope is already open (unpaired acquire)", f.name))
	}
	f.scopeOpen = true
	f.writeScope = forWrite
	return &Scope[T]{f: f, writable: forWrite}
}

// At reads the value at global node index (i,j,k).
func (s *Scope[T]) At(i, j, k int) T {
	return s.f.data[s.f.offset(i, j, k)]
}

// Set writes the value at global node index (i,j,k). Panics if the scope
// was not acquired for write.
func (s *Scope[T]) Set(i, j, k int, v T) {
	if !s.writable {
		panic(fmt.Sprintf("grid.Field %q: Set called on a read-only scope", s.f.name))
	}
	s.f.data[s.f.offset(i, j, k)] = v
}

// Raw returns the backing slice and its ghosted dimensions, for callers
// (the intersector, level-set, and SIMPLE packages) that want to loop
// directly over storage instead of per-cell At/Set calls.
func (s *Scope[T]) Raw() (data []T, dim [3]int, ghostedLo [3]int) {
	var lo [3]int
	for a := 0; a < 3; a++ {
		lo[a] = s.f.sub.GhostedBounds(Axis(a)).Lo
	}
	return s.f.data, s.f.dim, lo
}

// ForEachOwned calls visit(i,j,k) for every node index owned by this
// rank (the real domain, excluding ghost layers), in k,j,i order.
func (s *Scope[T]) ForEachOwned(visit func(i, j, k int)) {
	ox, oy, oz := s.f.sub.Owned[X], s.f.sub.Owned[Y], s.f.sub.Owned[Z]
	for k := oz.Lo; k < oz.Hi; k++ {
		for j := oy.Lo; j < oy.Hi; j++ {
			for i := ox.Lo; i < ox.Hi; i++ {
				visit(i, j, k)
			}
		}
	}
}

// ForEachGhosted calls visit(i,j,k) for every node index in the ghosted
// extent, including outer and inner ghost layers.
func (s *Scope[T]) ForEachGhosted(visit func(i, j, k int)) {
	gx, gy, gz := s.f.sub.GhostedBounds(X), s.f.sub.GhostedBounds(Y), s.f.sub.GhostedBounds(Z)
	for k := gz.Lo; k < gz.Hi; k++ {
		for j := gy.Lo; j < gy.Hi; j++ {
			for i := gx.Lo; i < gx.Hi; i++ {
				visit(i, j, k)
			}
		}
	}
}

// Release ends the scope. If it was a write scope and an exchange hook
// was registered (via Field.SetExchangeHook), the hook runs now,
// modeling a ghost-exchange insert collective. A read scope's Release
// discards without side effects.
func (s *Scope[T]) Release() {
	if s.released {
		panic(fmt.Sprintf("grid.Field %q: Release called twice on the same scope", s.f.name))
	}
	s.released = true
	s.f.scopeOpen = false
	if s.writable && s.f.exchangeHook != nil {
		s.f.exchangeHook()
	}
}

// SetExchangeHook registers the function run on every write-scope
// Release, normally spmd.World's ghost-exchange collective for this
// field.
func (f *Field[T]) SetExchangeHook(hook func()) {
	f.exchangeHook = hook
}

// At and SetRaw give the spmd package direct, unscoped access to the
// backing storage so it can copy boundary layers between neighboring
// ranks' fields from inside an exchange hook (where a Scope is already
// closing). Ordinary callers should go through Acquire/Scope instead.
func (f *Field[T]) At(i, j, k int) T        { return f.data[f.offset(i, j, k)] }
func (f *Field[T]) SetRaw(i, j, k int, v T) { f.data[f.offset(i, j, k)] = v }
func (f *Field[T]) Name() string            { return f.name }
