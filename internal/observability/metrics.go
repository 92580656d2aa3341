package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zpart",
			Subsystem: "frame",
			Name:      "created_total",
			Help:      "Frames built, by ownership mode.",
		},
		[]string{"mode"},
	)
	framesReleased = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zpart",
			Subsystem: "frame",
			Name:      "released_total",
			Help:      "Frames whose release obligation completed, by ownership mode.",
		},
		[]string{"mode"},
	)
	frameReleaseFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zpart",
			Subsystem: "frame",
			Name:      "release_failures_total",
			Help:      "Release callbacks that panicked, by ownership mode.",
		},
		[]string{"mode"},
	)
	pipeMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zpart",
			Subsystem: "pipe",
			Name:      "messages_total",
			Help:      "Messages moved through in-process pipes.",
		},
		[]string{"direction"},
	)
	pipeFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zpart",
			Subsystem: "pipe",
			Name:      "frames_total",
			Help:      "Frames moved through in-process pipes.",
		},
		[]string{"direction"},
	)
	pipeRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zpart",
			Subsystem: "pipe",
			Name:      "rejected_total",
			Help:      "Sends refused before any frame left, by reason.",
		},
		[]string{"reason"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			framesCreated,
			framesReleased,
			frameReleaseFailures,
			pipeMessages,
			pipeFrames,
			pipeRejected,
		)
	})
}

// FrameCounters are the frame counters for one ownership mode, resolved
// once so the hot path skips the label lookup.
type FrameCounters struct {
	Created         prometheus.Counter
	Released        prometheus.Counter
	ReleaseFailures prometheus.Counter
}

func FrameCountersFor(mode string) FrameCounters {
	RegisterMetrics()
	return FrameCounters{
		Created:         framesCreated.WithLabelValues(mode),
		Released:        framesReleased.WithLabelValues(mode),
		ReleaseFailures: frameReleaseFailures.WithLabelValues(mode),
	}
}

// RecordPipeTransfer counts one message of parts frames in direction
// "send" or "receive".
func RecordPipeTransfer(direction string, parts int) {
	RegisterMetrics()
	pipeMessages.WithLabelValues(direction).Inc()
	pipeFrames.WithLabelValues(direction).Add(float64(parts))
}

func RecordPipeRejected(reason string) {
	RegisterMetrics()
	pipeRejected.WithLabelValues(reason).Inc()
}
