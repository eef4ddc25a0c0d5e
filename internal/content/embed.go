package content

import (
	"embed"
	"sync"
)

//go:embed catalog.yaml lessons
var embedded embed.FS

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
	defaultErr    error
)

// Default returns the bundle compiled into the binary.
// It is parsed once; later calls return the same immutable value.
func Default() (*Bundle, error) {
	defaultOnce.Do(func() {
		defaultBundle, defaultErr = Load(embedded)
	})
	return defaultBundle, defaultErr
}
