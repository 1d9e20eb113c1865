// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package entity defines the object templates ("presets") that data modules
// are made of, and the catalog of classes those presets can be built from.
//
// # Core Concepts
//
//   - Class: a named node in the class hierarchy. Every class knows its full
//     ancestor chain, ordered from itself up to the universal root "Entity".
//     The chain is fixed when the class is declared, so indexing a preset
//     under every ancestor never has to discover the hierarchy at run time.
//
//   - Preset: a named instance of some class, read from a definition block
//     such as `Actor "Soldier" { Health = 100 }`. The (class, name) pair
//     identifies it inside a module.
//
//   - Catalog: the set of classes a loader understands, each with a factory.
//     Go packages contribute classes through the Module interface, the same
//     way handler modules are registered elsewhere in the application.
//
// A preset read from a file is its class's "original preset". Runtime copies
// made with Clone are not originals; only the registry re-marks a copy as
// original when it takes ownership of it.
package entity
