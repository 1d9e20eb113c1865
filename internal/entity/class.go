// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Class, the static description of one level of the preset
// class hierarchy.
package entity

import "slices"

const (
	// RootClassName is the class every preset ultimately derives from.
	RootClassName = "Entity"

	// AllClasses is the query alias for the root class bucket.
	AllClasses = "All"

	// NoneName is the sentinel preset name meaning "no preset".
	NoneName = "None"
)

// Class is one node of the class hierarchy.
type Class struct {
	name   string
	parent *Class
	chain  []string
}

// NewClass declares a class below parent. A nil parent declares a root.
func NewClass(name string, parent *Class) *Class {
	chain := []string{name}
	if parent != nil {
		chain = append(chain, parent.chain...)
	}
	return &Class{name: name, parent: parent, chain: chain}
}

// EntityClass is the universal root of the hierarchy.
var EntityClass = NewClass(RootClassName, nil)

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Parent returns the parent class, or nil for the root.
func (c *Class) Parent() *Class { return c.parent }

// Chain returns the class name followed by every ancestor's name, ending at
// the root.
func (c *Class) Chain() []string { return slices.Clone(c.chain) }

// IsA reports whether the class is name or derives from it.
func (c *Class) IsA(name string) bool { return slices.Contains(c.chain, name) }
