package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/structpack/structpack/msgpack"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to a MessagePack file (- for stdin)")
		hexData     = flag.String("hex", "", "Inline hex-encoded MessagePack data")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *file == "" && *hexData == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -file <data.msgpack> [-no-color]")
		fmt.Fprintln(os.Stderr, "       inspect -hex <bytes>")
		fmt.Fprintln(os.Stderr, "       inspect -file <data.msgpack> -i  (interactive mode)")
		os.Exit(1)
	}

	name, data, err := readInput(*file, *hexData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(name, data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	color := !*noColor && term.IsTerminal(int(os.Stdout.Fd()))
	if err := inspect(os.Stdout, name, data, color); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readInput(file, hexData string) (string, []byte, error) {
	if hexData != "" {
		clean := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\t' {
				return -1
			}
			return r
		}, hexData)
		data, err := hex.DecodeString(clean)
		if err != nil {
			return "", nil, fmt.Errorf("decode hex: %w", err)
		}
		return "<hex>", data, nil
	}

	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", data, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", nil, fmt.Errorf("read file: %w", err)
	}
	return file, data, nil
}

func inspect(w io.Writer, name string, data []byte, color bool) error {
	fmt.Fprintf(w, "Input: %s (%d bytes)\n", name, len(data))

	r := msgpack.NewReader(data)
	idx := 0
	for r.Remaining() > 0 {
		start := r.Pos()
		v, err := r.ReadValue()
		if err != nil {
			return fmt.Errorf("value %d at offset %d: %w", idx, start, err)
		}

		fmt.Fprintf(w, "\nValue %d @ %d (%d bytes)\n", idx, start, r.Pos()-start)
		fmt.Fprintln(w, renderValue(v, 1, color))
		idx++
	}

	fmt.Fprintf(w, "\n%d value(s), %d byte(s)\n", idx, len(data))
	return nil
}
