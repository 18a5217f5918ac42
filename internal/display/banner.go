package display

import (
	"fmt"
	"os"

	"github.com/ExploreAritra/format-flex/internal/term"
)

// PrintBanner prints the ASCII art banner; cyan when colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Cyan)
	}
	fmt.Fprint(os.Stdout, ` _____                          _   _____ _
|  ___|__  _ __ _ __ ___   __ _| |_|  ___| | _____  __
| |_ / _ \| '__| '_ ` + "`" + ` _ \ / _` + "`" + ` | __| |_  | |/ _ \ \/ /
|  _| (_) | |  | | | | | | (_| | |_|  _| | |  __/>  <
|_|  \___/|_|  |_| |_| |_|\__,_|\__|_|   |_|\___/_/\_\
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
