// Package protocol owns the multi-part message contract shared by the
// container and transport layers.
//
// Ownership boundary:
// - error taxonomy for frame and message operations
// - reserved control signal values
// - frame primitives (subpackage frame)
// - the message container (subpackage message)
package protocol
