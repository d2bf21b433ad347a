//go:build unix

package shell

import (
	"os"

	"github.com/gdamore/tcell/v2"
)

// Opens a screen on the terminal device in refers to.
func openScreen(in *os.File) (tcell.Screen, error) {
	tty, err := tcell.NewDevTtyFromDev(in.Name())
	if err != nil {
		return nil, err
	}
	return tcell.NewTerminfoScreenFromTty(tty)
}
