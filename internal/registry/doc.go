// Package registry stores the presets a data module owns and indexes them by
// class.
//
// The Registry is the module's "preset store": it owns every original preset
// the module defined, remembers which file each came from, and keeps a type
// index where each preset is listed under its own class and under every
// ancestor class up to "Entity". Asking for all "Actor" presets therefore
// also returns every "AHuman" and "ACrab", without walking the hierarchy at
// query time.
//
// Store slots are never moved or reused while the module is loaded; the type
// index refers to slots by Ref. Redefining a preset with overwrite allowed
// rewrites the existing preset in place, so a preset obtained before the
// overwrite observes the new definition afterwards.
//
// A Registry is filled during a single-threaded load and then only read.
// Reads may run concurrently with each other, never with a load or overwrite.
package registry
