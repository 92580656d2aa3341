package config

import (
	"github.com/BurntSushi/toml"
	"github.com/danmuck/zpart/internal/transport"
	"github.com/pkg/errors"
)

type pipeFile struct {
	QueueDepth     int `toml:"queue_depth"`
	MaxParts       int `toml:"max_parts"`
	MaxFrameBytes  int `toml:"max_frame_bytes"`
	ReleaseWorkers int `toml:"release_workers"`
	ReleaseQueue   int `toml:"release_queue"`
}

// LoadPipeConfig reads path over transport.DefaultConfig. Keys missing from
// the file keep their defaults; unknown keys are rejected.
func LoadPipeConfig(path string) (transport.Config, error) {
	cfg := transport.DefaultConfig()

	var raw pipeFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return transport.Config{}, errors.Wrapf(err, "config load failed (%s)", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return transport.Config{}, errors.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("queue_depth") {
		cfg.QueueDepth = raw.QueueDepth
	}
	if meta.IsDefined("max_parts") {
		cfg.MaxParts = raw.MaxParts
	}
	if meta.IsDefined("max_frame_bytes") {
		cfg.MaxFrameBytes = raw.MaxFrameBytes
	}
	if meta.IsDefined("release_workers") {
		cfg.ReleaseWorkers = raw.ReleaseWorkers
	}
	if meta.IsDefined("release_queue") {
		cfg.ReleaseQueue = raw.ReleaseQueue
	}

	if err := cfg.Validate(); err != nil {
		return transport.Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}
