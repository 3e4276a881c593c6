// Package protractor computes the geometry of an on-screen protractor: the
// tick scale, the rotated dual-numbered labels, and the silhouette that clips
// the host window to the instrument outline.
//
// Everything here is a pure function of (Span, Style, RenderSize) except the
// ScaleController, which tracks the interactive zoom state of one session.
package protractor
