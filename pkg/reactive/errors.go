package reactive

import "errors"

// ErrNoActiveComputation is returned by Active when no Computation is
// running on the calling goroutine. APIs that only make sense inside a
// tracked context report this instead of returning a meaningless nil.
var ErrNoActiveComputation = errors.New("reago: no active computation on this goroutine")
