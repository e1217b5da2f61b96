// Package nativemod holds the natively implemented modules a script context
// can obtain through requireNative.
//
// The registry stores factories, not instances: every Resolve produces a new
// object in the requesting runtime. Names are fixed at build time, so a
// duplicate registration is a programmer error and panics.
package nativemod
