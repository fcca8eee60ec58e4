// Package main provides the Synap ML Framework CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/synap-ml/synap/internal/serialization"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Synap ML Framework %s\n", version)
			return
		case "inspect":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "usage: synap inspect <file.synap>")
				os.Exit(2)
			}
			if err := inspect(os.Args[2]); err != nil {
				fmt.Fprintf(os.Stderr, "synap: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Synap ML Framework - Sign-Constrained Training for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version             Show version")
	fmt.Println("  inspect <file>      Show the header of a .synap checkpoint")
}

// inspect prints the metadata and tensor table of a .synap file.
func inspect(path string) error {
	f, err := serialization.ReadFile(path)
	if err != nil {
		return err
	}
	h := f.Header()

	fmt.Printf("format version: %d (synap %s)\n", h.FormatVersion, h.SynapVersion)
	fmt.Printf("created:        %s\n", h.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if c := h.Checkpoint; c != nil {
		fmt.Printf("arch:           %s\n", c.Arch)
		fmt.Printf("run:            %s\n", c.RunID)
		fmt.Printf("epoch:          %d (step %d)\n", c.Epoch, c.Step)
		fmt.Printf("best prec@1:    %.3f\n", c.BestPrec1)
		fmt.Printf("loss:           %.4f\n", c.Loss)
	}

	var total int64
	fmt.Printf("\ntensors (%d):\n", len(h.Tensors))
	for _, tm := range h.Tensors {
		fmt.Printf("  %-40s %-8s %v (%s)\n", tm.Name, tm.DType, tm.Shape, humanize.Bytes(uint64(tm.Size)))
		total += tm.Size
	}
	fmt.Printf("total tensor data: %s\n", humanize.Bytes(uint64(total)))
	return nil
}
