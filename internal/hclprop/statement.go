package hclprop

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// File is one parsed definition file.
type File struct {
	Path       string
	Statements []Statement
}

// Statement is a single property: either an attribute or a block. Name is the
// attribute name or the block type.
type Statement struct {
	Name  string
	Attr  *hcl.Attribute
	Block *hcl.Block
}

// IsBlock reports whether the statement was written in block form.
func (s Statement) IsBlock() bool {
	return s.Block != nil
}

// Range returns the source range of the statement's start.
func (s Statement) Range() hcl.Range {
	if s.Block != nil {
		return s.Block.DefRange
	}
	return s.Attr.Range
}

// Label returns the first block label, or "" for attributes and unlabeled blocks.
func (s Statement) Label() string {
	if s.Block == nil || len(s.Block.Labels) == 0 {
		return ""
	}
	return s.Block.Labels[0]
}

// Body returns the block body, or nil for attributes.
func (s Statement) Body() hcl.Body {
	if s.Block == nil {
		return nil
	}
	return s.Block.Body
}

// ParseFile reads path with parser and returns its statements in source order.
func ParseFile(parser *hclparse.Parser, path string) (*File, hcl.Diagnostics) {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	return newFile(hclFile, path, diags)
}

// ParseBytes is ParseFile for in-memory sources; filename is used in diagnostics.
func ParseBytes(parser *hclparse.Parser, src []byte, filename string) (*File, hcl.Diagnostics) {
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return newFile(hclFile, filename, diags)
}

func newFile(hclFile *hcl.File, path string, diags hcl.Diagnostics) (*File, hcl.Diagnostics) {
	statements, stmtDiags := Statements(hclFile.Body)
	diags = append(diags, stmtDiags...)
	if stmtDiags.HasErrors() {
		return nil, diags
	}

	return &File{Path: path, Statements: statements}, diags
}

// Statements flattens a native-syntax body into attributes and blocks ordered
// by their position in the source.
func Statements(body hcl.Body) ([]Statement, hcl.Diagnostics) {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported file syntax",
			Detail:   fmt.Sprintf("Definition files must use native HCL syntax, got %T.", body),
		}}
	}

	statements := make([]Statement, 0, len(syntaxBody.Attributes)+len(syntaxBody.Blocks))
	for name, attr := range syntaxBody.Attributes {
		statements = append(statements, Statement{Name: name, Attr: attr.AsHCLAttribute()})
	}
	for _, block := range syntaxBody.Blocks {
		statements = append(statements, Statement{Name: block.Type, Block: block.AsHCLBlock()})
	}

	sort.SliceStable(statements, func(i, j int) bool {
		return statements[i].Range().Start.Byte < statements[j].Range().Start.Byte
	})
	return statements, nil
}
