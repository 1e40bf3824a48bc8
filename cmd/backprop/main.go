// Package main provides the backprop CLI.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("backprop: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(w, "backprop %s\n", version)
		return nil
	case "demo":
		return runDemo(args[1:], w)
	case "gradcheck":
		return runGradCheck(args[1:], w)
	case "help", "-h", "--help":
		usage(w)
		return nil
	default:
		usage(w)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "backprop - reverse-mode automatic differentiation")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  demo       Run the relu(x @ w - offset) chain and print gradients")
	fmt.Fprintln(w, "  gradcheck  Compare analytic and numerical gradients for every operation")
}
