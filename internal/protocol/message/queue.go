package message

import (
	"github.com/danmuck/zpart/internal/protocol/frame"
	"github.com/gammazero/deque"
)

// frameQueue is the message's frame sequence: O(1) at both ends and by index.
type frameQueue = deque.Deque[*frame.Frame]

// drain empties q and returns its frames in order without releasing them.
func drain(q *frameQueue) []*frame.Frame {
	out := make([]*frame.Frame, q.Len())
	for i := range out {
		out[i] = q.At(i)
	}
	q.Clear()
	return out
}
