// compileinfoprint is imported for the side effect of printing the build
// details of the lightcurve binary to os.Stderr before it does any work.
package compileinfoprint

import "github.com/carbocation/lightcurve/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
