// Package hclprop turns HCL definition files into the ordered stream of
// property statements that data modules are read from.
//
// A definition file is a flat list of statements. Attributes such as
// `ModuleName = "Base"` set scalar properties; blocks such as
// `Actor "Soldier" { ... }` carry a name label and a nested body. HCL keeps
// attributes in a map, so the statements are re-sorted into source order:
// later statements may depend on earlier ones (a material must be mapped
// before a preset that references it is built).
package hclprop
