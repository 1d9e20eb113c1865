package app

import (
	"github.com/specialistvlad/datamodule/internal/entity"
	"github.com/specialistvlad/datamodule/modules/actors"
	"github.com/specialistvlad/datamodule/modules/devices"
)

// coreModules is the definitive list of preset class packages compiled into
// the binary.
var coreModules = []entity.Module{
	&actors.Module{},
	&devices.Module{},
}

// DefaultCoreModules are the data modules every other module builds on.
var DefaultCoreModules = []string{"Base.rte"}
