package transport

import (
	"context"
	"sync"

	"github.com/danmuck/zpart/internal/observability"
	"github.com/danmuck/zpart/internal/protocol"
	"github.com/danmuck/zpart/internal/protocol/frame"
	"github.com/danmuck/zpart/internal/protocol/message"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	directionSend    = "send"
	directionReceive = "receive"
)

// Pipe is an in-process Sender and Receiver. Messages are delivered in send
// order; frames given to Send are released by background workers.
type Pipe struct {
	cfg      Config
	queue    chan [][]byte
	releases chan []*frame.Frame
	done     chan struct{}
	workers  errgroup.Group

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	closeErr  error

	errMu       sync.Mutex
	releaseErrs *multierror.Error
}

var (
	_ Sender   = (*Pipe)(nil)
	_ Receiver = (*Pipe)(nil)
)

// NewPipe validates cfg and starts the release workers.
func NewPipe(cfg Config) (*Pipe, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipe{
		cfg:      cfg,
		queue:    make(chan [][]byte, cfg.QueueDepth),
		releases: make(chan []*frame.Frame, cfg.ReleaseQueue),
		done:     make(chan struct{}),
	}
	for i := 0; i < cfg.ReleaseWorkers; i++ {
		p.workers.Go(p.releaseLoop)
	}
	log.Debug().
		Int("queue_depth", cfg.QueueDepth).
		Int("release_workers", cfg.ReleaseWorkers).
		Msg("pipe started")
	return p, nil
}

// Config returns the limits the pipe was built with.
func (p *Pipe) Config() Config { return p.cfg }

// Send copies msg into the queue and takes its frames. It blocks while the
// queue is full until ctx is done or the pipe closes. A rejected send leaves
// msg untouched.
func (p *Pipe) Send(ctx context.Context, msg *message.Message) error {
	bufs, err := p.stage(msg)
	if err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return p.reject("closed", ErrClosed)
	}
	select {
	case p.queue <- bufs:
	case <-ctx.Done():
		return p.reject("canceled", ctx.Err())
	case <-p.done:
		return p.reject("closed", ErrClosed)
	}

	for i := range bufs {
		_ = msg.Sent(i)
	}
	p.handOff(msg.Detach())
	observability.RecordPipeTransfer(directionSend, len(bufs))
	return nil
}

// stage checks every limit before copying, so a failure copies nothing.
func (p *Pipe) stage(msg *message.Message) ([][]byte, error) {
	if msg == nil || msg.Parts() == 0 {
		return nil, p.reject("empty", ErrEmptyMessage)
	}
	if msg.Parts() > p.cfg.MaxParts {
		return nil, p.reject("too_many_parts",
			errors.Wrapf(ErrTooManyParts, "%d parts, limit %d", msg.Parts(), p.cfg.MaxParts))
	}
	frames := make([]*frame.Frame, msg.Parts())
	for i := range frames {
		f, err := msg.Frame(i)
		if err != nil {
			return nil, err
		}
		if f.Len() > p.cfg.MaxFrameBytes {
			return nil, p.reject("frame_too_large",
				errors.Wrapf(ErrFrameTooLarge, "part %d is %d bytes, limit %d", i, f.Len(), p.cfg.MaxFrameBytes))
		}
		if f.IsSent() {
			return nil, p.reject("already_sent", errors.Wrapf(protocol.ErrAlreadySent, "part %d", i))
		}
		frames[i] = f
	}
	bufs := make([][]byte, len(frames))
	for i, f := range frames {
		bufs[i] = append(make([]byte, 0, f.Len()), f.Data()...)
	}
	return bufs, nil
}

// Receive returns the next message. Its frames are owned by the caller and
// its read cursor is at zero.
func (p *Pipe) Receive(ctx context.Context) (*message.Message, error) {
	select {
	case bufs := <-p.queue:
		return p.deliver(bufs), nil
	default:
	}
	select {
	case bufs := <-p.queue:
		return p.deliver(bufs), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return nil, ErrClosed
	}
}

func (p *Pipe) deliver(bufs [][]byte) *message.Message {
	msg := &message.Message{}
	for _, b := range bufs {
		msg.Adopt(b)
	}
	observability.RecordPipeTransfer(directionReceive, len(bufs))
	return msg
}

// Close stops accepting sends, drops undelivered messages, and waits until
// every frame handed to the pipe has been released. Release failures are
// returned together.
func (p *Pipe) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		p.mu.Lock()
		p.closed = true
		close(p.releases)
		p.mu.Unlock()

		dropped := 0
	drain:
		for {
			select {
			case <-p.queue:
				dropped++
			default:
				break drain
			}
		}

		_ = p.workers.Wait()
		p.errMu.Lock()
		p.closeErr = p.releaseErrs.ErrorOrNil()
		p.errMu.Unlock()
		log.Debug().Int("dropped", dropped).Err(p.closeErr).Msg("pipe closed")
	})
	return p.closeErr
}

// handOff queues a sent message's frames for release without blocking. When
// the release queue is full the batch gets its own goroutine, which Close
// also waits for. Callers hold p.mu for reading.
func (p *Pipe) handOff(batch []*frame.Frame) {
	select {
	case p.releases <- batch:
	default:
		p.workers.Go(func() error {
			p.releaseAll(batch)
			return nil
		})
	}
}

func (p *Pipe) releaseLoop() error {
	for batch := range p.releases {
		p.releaseAll(batch)
	}
	return nil
}

func (p *Pipe) releaseAll(batch []*frame.Frame) {
	for _, f := range batch {
		if err := f.Close(); err != nil {
			p.errMu.Lock()
			p.releaseErrs = multierror.Append(p.releaseErrs, err)
			p.errMu.Unlock()
		}
	}
}

func (p *Pipe) reject(reason string, err error) error {
	observability.RecordPipeRejected(reason)
	log.Debug().Str("reason", reason).Err(err).Msg("pipe send rejected")
	return err
}
