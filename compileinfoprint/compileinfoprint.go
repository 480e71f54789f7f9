// Package compileinfoprint prints the binary's build provenance to stderr
// when imported. The phewasnet commands import it for that side effect.
package compileinfoprint

import "github.com/carbocation/phewasnet/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
