package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/pages/internal/app"
	"github.com/alexanderramin/pages/internal/cli"
	"github.com/alexanderramin/pages/internal/cli/formatter"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !isTerminal(os.Stdout) || os.Getenv("NO_COLOR") != "" {
		formatter.DisableColor()
	}

	root := cli.NewRootCmd(app.New)
	return root.ExecuteContext(context.Background())
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
