//go:build !mattn

package bioinfodb

import (
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// driverName is the database/sql driver used to open the store.
const driverName = "sqlite"

// pragmaParam renders p as a modernc.org/sqlite DSN parameter: _pragma=name(value).
func pragmaParam(p pragma) string {
	return "_pragma=" + p.name + "(" + p.value + ")"
}
