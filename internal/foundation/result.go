// Package foundation provides small generic building blocks shared by the build pipeline.
package foundation

// Result is the outcome of processing one post: either a value or a failure.
// The build pipeline keeps one Result per located document and only looks at
// them together once every document has been processed.
type Result[T any, E error] struct {
	value T
	err   E
	ok    bool
}

func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{value: value, ok: true}
}

func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

func (r Result[T, E]) IsOk() bool { return r.ok }

// Get returns the value and the failure. Exactly one of them is meaningful,
// as reported by ok.
func (r Result[T, E]) Get() (value T, err E, ok bool) {
	return r.value, r.err, r.ok
}

// Partition splits results into values and failures, each in input order.
func Partition[T any, E error](results []Result[T, E]) ([]T, []E) {
	values := make([]T, 0, len(results))
	var errs []E
	for _, r := range results {
		if r.ok {
			values = append(values, r.value)
			continue
		}
		errs = append(errs, r.err)
	}
	return values, errs
}
