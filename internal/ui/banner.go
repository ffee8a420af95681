package ui

import (
	"fmt"
	"io"
)

const IssuesURL = "https://github.com/priorlabs/tabpfn-client/issues"

const logo = `
 ____       _              _          _         
|  _ \ _ __(_) ___  _ __  | |    __ _| |__  ___ 
| |_) | '__| |/ _ \| '__| | |   / _' | '_ \/ __|
|  __/| |  | | (_) | |    | |__| (_| | |_) \__ \
|_|   |_|  |_|\___/|_|    |_____\__,_|_.__/|___/
`

// PrintWelcome writes the logo, tagline and where to report bugs.
func PrintWelcome(out io.Writer) {
	fmt.Fprintln(out, logoStyle.Render(logo))
	fmt.Fprintln(out, TitleStyle.Render("  Thanks for being part of the journey"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  TabPFN is still under active development, please help us improve and report any bugs/ideas you find.")
	fmt.Fprintln(out, InfoStyle.Render("  Report issues: "+IssuesURL))
}

func (t *Terminal) Welcome() {
	PrintWelcome(t.out)
}
