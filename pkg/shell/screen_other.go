//go:build !unix

package shell

import (
	"os"

	"github.com/gdamore/tcell/v2"
)

// Opens a screen on the console of the process.
func openScreen(*os.File) (tcell.Screen, error) {
	return tcell.NewScreen()
}
