package transport

import (
	"context"

	"github.com/danmuck/zpart/internal/protocol/message"
)

// Sender takes ownership of a message's frames. On success the message is
// left empty; on error it is unchanged.
type Sender interface {
	Send(ctx context.Context, msg *message.Message) error
}

// Receiver returns messages whose frames are owned by the caller.
type Receiver interface {
	Receive(ctx context.Context) (*message.Message, error)
}
