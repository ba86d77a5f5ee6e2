package utils

// Index is a reusable list of integer indices, used by the k-d tree
// package for candidate lists.
type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // inclusive range
	)
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

func (I Index) Subset(J Index) (r Index) {
	r = make(Index, len(J))
	for j, val := range J {
		r[j] = I[val]
	}
	return
}

func (I Index) Apply(f func(val int) int) (r Index) {
	r = make(Index, len(I))
	for i, val := range I {
		r[i] = f(val)
	}
	return
}

// Contains reports whether val is present in I.
func (I Index) Contains(val int) bool {
	for _, v := range I {
		if v == val {
			return true
		}
	}
	return false
}
