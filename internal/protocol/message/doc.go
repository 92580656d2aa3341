// Package message implements the multi-part message container.
//
// Ownership boundary:
// - ordered frame sequence with O(1) push/pop at both ends
// - typed encode-on-insert and decode-on-read over the endian codec
// - read cursor for stream-style consumption
// - copy/move/swap semantics and ordered release on Close
//
// A Message and its frames belong to one goroutine at a time. Release
// callbacks of no-copy frames may run later on a transport goroutine.
package message
