package config

import (
	"os"

	"github.com/pkg/errors"
)

// Template returns the commented pipe config with default values.
func Template() string {
	return pipeTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(pipeTemplate), 0o600)
}

const pipeTemplate = `# messages buffered between Send and Receive
queue_depth = 64

# largest message a pipe accepts, in frames
max_parts = 1024

# largest single frame, in bytes
max_frame_bytes = 8388608

# goroutines running frame release callbacks
release_workers = 2

# sent messages waiting for a release worker
release_queue = 256
`
