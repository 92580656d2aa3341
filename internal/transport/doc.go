// Package transport defines the boundary a socket implementation uses to
// move multipart messages, plus Pipe, an in-process implementation of it.
//
// A successful Send copies every frame into transport-owned buffers, marks
// the frames sent, and leaves the caller's message empty. The original
// frames are released later on a background worker, so release callbacks
// must tolerate running on a goroutine other than the sender's.
package transport
