// Package options holds option validation shared by the parser and
// reducer option sets.
package options

import "fmt"

// ValidateSingleInputSource ensures exactly one of the given input sources
// is set. Each boolean reports whether the corresponding source was
// configured. noSourceMsg is returned as an error when none is set,
// multiSourceMsg when more than one is.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}
	if count == 0 {
		return fmt.Errorf("%s", noSourceMsg)
	}
	if count > 1 {
		return fmt.Errorf("%s", multiSourceMsg)
	}
	return nil
}
