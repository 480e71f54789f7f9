package phewasnet

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome expands a leading ~/ to the user's home directory. If the home
// directory cannot be determined, the path is returned unchanged.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		log.Println(pfx.Err(err))
		return path
	}

	return filepath.Join(home, path[2:])
}
