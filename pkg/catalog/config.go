package catalog

import (
	"fmt"

	"github.com/levenlabs/go-lflag"
)

// Configured returns a Library populated once flags are parsed. With no
// catalog directory flag the built-in defaults are used.
func Configured() *Library {
	dir := lflag.String("catalog-dir", "", "Directory of catalog JSON files overriding the built-in part library")
	l := &Library{}
	lflag.Do(func() {
		if *dir == "" {
			*l = *Default()
			return
		}
		loaded, err := LoadDir(*dir)
		if err != nil {
			panic(fmt.Sprintf("loading catalog from %s: %v", *dir, err))
		}
		*l = *loaded
	})
	return l
}
