//go:build mattn

package bioinfodb

import (
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

// driverName is the database/sql driver used to open the store.
const driverName = "sqlite3"

// mattnPragmaKeys maps pragma names to go-sqlite3 DSN parameters.
var mattnPragmaKeys = map[string]string{
	"busy_timeout": "_busy_timeout",
	"journal_mode": "_journal_mode",
	"foreign_keys": "_foreign_keys",
}

// pragmaParam renders p as a go-sqlite3 DSN parameter such as _foreign_keys=1.
func pragmaParam(p pragma) string {
	key, ok := mattnPragmaKeys[p.name]
	if !ok {
		key = "_" + p.name
	}
	value := p.value
	if value == "ON" {
		value = "1"
	}
	return key + "=" + value
}
