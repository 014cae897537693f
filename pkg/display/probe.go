package display

import (
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Binaries mousewarp can use when present. None are required: the X
// protocol covers the core, these only extend it.
//
//	gsettings — theme auto-detection fallback when the settings portal
//	            is unavailable
//	xdotool   — pointer-move fallback when the server rejects WarpPointer
var optionalBinaries = []string{"gsettings", "xdotool"}

// Probe maps binary names to their resolved paths; absent binaries map
// to the empty string.
type Probe map[string]string

// ProbeBinaries looks up the optional helper binaries once, at startup.
func ProbeBinaries() Probe {
	p := make(Probe, len(optionalBinaries))
	missing := []string{}
	for _, name := range optionalBinaries {
		path, err := exec.LookPath(name)
		if err != nil {
			p[name] = ""
			missing = append(missing, name)
			continue
		}
		p[name] = path
	}
	if len(missing) > 0 {
		log.Debug().Strs("binaries", missing).Msg("optional binaries not found, some fallbacks disabled")
	}
	return p
}

// Has reports whether the named binary was found.
func (p Probe) Has(name string) bool { return p[name] != "" }

// Path returns the resolved path of the named binary, or "".
func (p Probe) Path(name string) string { return p[name] }
