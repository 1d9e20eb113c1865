package entity

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/datamodule/internal/hclprop"
)

// Diagnostic summaries callers may match on.
const (
	UnknownClassSummary = "Could not understand Preset type!"
	UnknownCopySummary  = "Unknown preset to copy"
)

// Factory returns a new, zero-valued preset of one class.
type Factory func() Preset

// Module is implemented by Go packages that contribute preset classes.
type Module interface {
	Register(c *Catalog)
}

type registration struct {
	class   *Class
	factory Factory
}

// Catalog maps class names to the factories that build them.
type Catalog struct {
	classes map[string]registration
}

// NewCatalog returns a catalog holding the core classes (MOSRotating and
// Material) plus whatever the given modules register.
func NewCatalog(modules ...Module) *Catalog {
	c := &Catalog{classes: make(map[string]registration)}
	c.Register(MOSRotatingClass, func() Preset { return &MOSRotating{} })
	c.Register(MaterialClass, func() Preset { return &Material{} })
	for _, mod := range modules {
		mod.Register(c)
	}
	return c
}

// Register adds a concrete class. Registering a name twice, or a factory that
// builds a different class, is a programming error and panics.
func (c *Catalog) Register(class *Class, factory Factory) {
	if class == nil || factory == nil {
		panic("entity: class and factory must not be nil")
	}
	if _, exists := c.classes[class.Name()]; exists {
		panic(fmt.Sprintf("class '%s' already registered", class.Name()))
	}
	if built := factory().Class(); built != class {
		panic(fmt.Sprintf("factory for class '%s' builds '%s'", class.Name(), built.Name()))
	}
	slog.Debug("Registering preset class.", "class", class.Name(), "chain", class.chain)
	c.classes[class.Name()] = registration{class: class, factory: factory}
}

// Lookup returns the registered class with the given name.
func (c *Catalog) Lookup(name string) (*Class, bool) {
	reg, ok := c.classes[name]
	return reg.class, ok
}

// New returns a fresh preset of the named class.
func (c *Catalog) New(name string) (Preset, bool) {
	reg, ok := c.classes[name]
	if !ok {
		return nil, false
	}
	return reg.factory(), true
}

// Classes returns the registered class names in sorted order.
func (c *Catalog) Classes() []string {
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates the preset declared by a `Class "Name" { ... }` statement and
// marks it as an original preset. A `CopyOf = "Other"` attribute starts from
// a clone of an existing preset of the same class instead of a blank one.
func (c *Catalog) Build(stmt hclprop.Statement, dc *DecodeContext) (Preset, hcl.Diagnostics) {
	reg, ok := c.classes[stmt.Name]
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  UnknownClassSummary,
			Detail:   fmt.Sprintf("%q is neither a module property nor a registered preset class.", stmt.Name),
			Subject:  stmt.Range().Ptr(),
		}}
	}
	if !stmt.IsBlock() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid preset definition",
			Detail:   fmt.Sprintf("A %s preset must be a block, e.g. %s \"Name\" { ... }.", stmt.Name, stmt.Name),
			Subject:  stmt.Range().Ptr(),
		}}
	}

	var meta struct {
		CopyOf string `hcl:"CopyOf,optional"`
	}
	remain, diags := hclprop.DecodePartial(stmt.Body(), dc.EvalContext(), &meta)
	if diags.HasErrors() {
		return nil, diags
	}

	var preset Preset
	if meta.CopyOf != "" {
		source, found := dc.findPreset(reg.class.Name(), meta.CopyOf)
		if !found {
			return nil, append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  UnknownCopySummary,
				Detail:   fmt.Sprintf("No %s preset named %q exists to copy from.", reg.class.Name(), meta.CopyOf),
				Subject:  stmt.Range().Ptr(),
			})
		}
		preset = source.Clone()
	} else {
		preset = reg.factory()
	}

	diags = append(diags, preset.Decode(remain, dc)...)
	if diags.HasErrors() {
		return nil, diags
	}

	SetPresetName(preset, stmt.Label())
	MarkOriginal(preset, true)
	return preset, diags
}
