package app

import (
	"github.com/specialistvlad/profilegrid/internal/registry"
	"github.com/specialistvlad/profilegrid/modules/libvirt"
	"github.com/specialistvlad/profilegrid/modules/mariadb"
	"github.com/specialistvlad/profilegrid/modules/nginx"
	"github.com/specialistvlad/profilegrid/modules/postgresql"
)

// coreModules is the definitive list of all component profiles that are
// compiled into the profilegrid binary.
var coreModules = []registry.Module{
	&libvirt.Module{},
	&mariadb.Module{},
	&nginx.Module{},
	&postgresql.Module{},
}
