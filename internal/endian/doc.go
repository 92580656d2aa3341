// Package endian converts fixed-width host scalars to and from their
// canonical big-endian wire form.
//
// Ownership boundary:
// - scalar <-> big-endian byte conversion (1/2/4/8 byte widths)
// - byte-for-byte reinterpretation of floats and named scalar kinds
// - fast (byte-swap) and portable (shift-and-mask) conversion paths
//
// Building with the endian_portable tag forces the portable path on every
// host. Both paths produce identical bytes.
package endian
