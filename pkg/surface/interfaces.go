package surface

import (
	"github.com/df07/go-light-simulator/pkg/core"
)

// Surface is a thread-safe drawing backend. Tracers acquire a session, draw
// their segments into it, and commit; only committed segments ever become
// visible. Backends may buffer (CPU raster, display list) or forward
// immediately, as long as commits stay atomic.
type Surface interface {
	// OpenSession acquires a drawing session. Safe to call from any
	// goroutine; sessions from different goroutines may be open at once.
	OpenSession() Session
}

// Session is a scoped drawing context used by exactly one goroutine from
// open to commit. Draw calls buffer privately; Commit merges the buffer into
// the surface's visible state in one step. A session is dead after Commit.
type Session interface {
	Draw(segment core.LightSegment)
	Commit()
}
