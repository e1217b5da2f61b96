package app

import (
	"io"

	"github.com/specialistvlad/extmod/internal/modsys"
	"github.com/specialistvlad/extmod/modules/env_vars"
	"github.com/specialistvlad/extmod/modules/http_client"
	"github.com/specialistvlad/extmod/modules/print"
	"github.com/specialistvlad/extmod/modules/s3"
	"github.com/specialistvlad/extmod/modules/socketio"
)

// coreModules is the definitive list of all modules that are compiled into
// the extmod binary.
func coreModules(outW io.Writer) []modsys.Module {
	return []modsys.Module{
		&env_vars.Module{},
		&print.Module{Out: outW},
		&http_client.Module{},
		&s3.Module{},
		&socketio.Module{},
	}
}
