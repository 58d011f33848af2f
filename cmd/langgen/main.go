// Command langgen designs programming languages and runs programs
// written in them.
package main

import (
	"os"

	"langgen/internal/cli"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	os.Exit(cli.Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
