package base

import "github.com/FocuswithJustin/cdlconvert/core/asc"

// Atomic runs parse and, if it fails, unregisters every correction it added
// to reg. A failed input never leaves corrections behind for later
// references to resolve against.
func Atomic[T any](reg *asc.Registry, parse func() (T, error)) (T, error) {
	mark := reg.Mark()
	v, err := parse()
	if err != nil {
		reg.Rollback(mark)
		var zero T
		return zero, err
	}
	return v, nil
}
