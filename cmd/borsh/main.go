package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/registry"
	"github.com/wippyai/borsh/schema"
)

func main() {
	var (
		schemaFile  = flag.String("schema", "", "Path to YAML schema file")
		typeExpr    = flag.String("type", "", "Type expression to decode or describe (e.g. Results, vec<u8>)")
		hexData     = flag.String("hex", "", "Hex encoded input bytes")
		offset      = flag.Int("offset", 0, "Byte offset to start decoding at")
		describe    = flag.Bool("describe", false, "Print the WIT definition of -type and exit")
		families    = flag.Bool("families", false, "List supported codec families and exit")
		verbose     = flag.Bool("v", false, "Log codec resolution to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			codec.SetLogger(l)
			defer l.Sync()
		}
	}

	if *families {
		printFamilies()
		return
	}

	if *typeExpr == "" {
		fmt.Fprintln(os.Stderr, "Usage: borsh [-schema file.yaml] -type <expr> -hex <bytes> [-offset n]")
		fmt.Fprintln(os.Stderr, "       borsh [-schema file.yaml] -type <expr> -describe")
		fmt.Fprintln(os.Stderr, "       borsh [-schema file.yaml] -type <expr> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       borsh -families")
		os.Exit(1)
	}

	s, err := loadSchema(*schemaFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(s, *typeExpr, *offset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *describe {
		err = runDescribe(s, *typeExpr)
	} else {
		err = runDecode(s, *typeExpr, *hexData, *offset)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return schema.New(schema.Document{})
	}
	return schema.Load(path)
}

func runDescribe(s *schema.Schema, expr string) error {
	c, err := s.Codec(expr)
	if err != nil {
		return err
	}
	t, err := registry.WIT(c)
	if err != nil {
		return err
	}
	if defs := registry.Define(t); defs != "" {
		fmt.Print(defs)
		fmt.Println()
	}
	shape := codec.ShapeOf(c)
	fmt.Printf("%s: %s\n", expr, registry.Render(t))
	if shape.Fixed {
		fmt.Printf("fixed size: %d bytes\n", shape.ByteSize)
	} else {
		fmt.Println("fixed size: no (resolved per value)")
	}
	return nil
}

func runDecode(s *schema.Schema, expr, hexData string, offset int) error {
	buf, err := parseHex(hexData)
	if err != nil {
		return err
	}
	spans, err := s.Inspect(expr, buf, offset)
	if err != nil {
		return err
	}
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Print(renderSpans(spans, styled))
	return nil
}

func printFamilies() {
	fmt.Printf("%-24s %-24s %-20s %-10s %s\n", "FAMILY", "CONSTRUCTOR", "GO TYPE", "ARG", "FIXABLE")
	for _, d := range registry.Definitions() {
		fmt.Printf("%-24s %-24s %-20s %-10s %v\n", d.Family, d.Constructor, d.GoType, d.Arg, d.Fixable)
	}
}
