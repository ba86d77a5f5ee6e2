package riemann

// FaceKey identifies one interface of the structured grid: the face
// between cell (I,J,K) and its neighbor one step up along Axis (0=X,
// 1=Y, 2=Z). The multiphase updater reuses the
// Riemann solution already computed for the Godunov flux at this face
// instead of re-solving it.
type FaceKey struct {
	I, J, K int
	Axis    int
}

// SolutionCache holds one Result per face for the duration of a single
// sweep. It is owned by a single goroutine/rank and is not
// synchronized: each rank solves and reads only its own faces.
type SolutionCache struct {
	data map[FaceKey]Result
}

func NewSolutionCache() *SolutionCache {
	return &SolutionCache{data: make(map[FaceKey]Result)}
}

func (c *SolutionCache) Store(k FaceKey, r Result) { c.data[k] = r }

func (c *SolutionCache) Get(k FaceKey) (Result, bool) {
	r, ok := c.data[k]
	return r, ok
}

// Clear empties the cache, called at the start of every sweep.
func (c *SolutionCache) Clear() {
	for k := range c.data {
		delete(c.data, k)
	}
}

func (c *SolutionCache) Len() int { return len(c.data) }
