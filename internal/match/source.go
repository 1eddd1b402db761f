package match

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Source produces a candidate list on demand.
type Source func() ([]string, error)

// Static returns a Source that always yields a copy of list.
func Static(list []string) Source {
	return func() ([]string, error) {
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	}
}

// Resolve calls src and returns its candidates.
// A nil source, an error or a panic all degrade to an empty list; the
// failure is logged when logger is non-nil.
func Resolve(src Source, logger *log.Logger) (candidates []string) {
	if src == nil {
		return []string{}
	}

	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Error("candidate source panicked", "panic", fmt.Sprint(r))
			}
			candidates = []string{}
		}
	}()

	list, err := src()
	if err != nil {
		if logger != nil {
			logger.Warn("candidate source failed", "err", err)
		}
		return []string{}
	}
	if list == nil {
		return []string{}
	}
	return list
}
