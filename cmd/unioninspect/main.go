// Command unioninspect inspects a union registry.
//
// It lists the converters a registry publishes, encodes literals to show how
// values are laid out in a payload, and offers an interactive mode for trying
// reads against stored unions.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/union"
	"github.com/wippyai/union/payload/layout"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to YAML config file")
		capacity    = flag.Int("capacity", 0, "Inline payload capacity in bytes (8, 16, 24 or 32)")
		diagnostics = flag.String("diagnostics", "", "Undefined-converter diagnostics (true/false)")
		typeName    = flag.String("type", "", "Go type of the literal to encode")
		value       = flag.String("value", "", "Literal to encode")
		list        = flag.Bool("list", false, "List published converters and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	// Positional form: unioninspect int32 42
	if *typeName == "" && flag.NArg() > 0 {
		if t, v, ok := splitInput(strings.Join(flag.Args(), " ")); ok {
			*typeName, *value = t, v
		}
	}

	if !*list && !*interactive && *typeName == "" {
		fmt.Fprintln(os.Stderr, "Usage: unioninspect -list [-capacity n] [-config file.yaml]")
		fmt.Fprintln(os.Stderr, "       unioninspect -type <go type> -value <literal>")
		fmt.Fprintln(os.Stderr, "       unioninspect <go type> <literal>")
		fmt.Fprintln(os.Stderr, "       unioninspect -i  (interactive mode)")
		fmt.Fprintf(os.Stderr, "Types: %s\n", strings.Join(typeNames(), ", "))
		os.Exit(1)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(&cfg, *capacity, *diagnostics); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck
	union.SetLogger(log)

	reg, err := cfg.Registry(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(reg, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, reg, *typeName, *value, *list); err != nil {
		log.Debug("inspect failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides config values with flags that were set.
func applyFlags(cfg *Config, capacity int, diagnostics string) error {
	if capacity != 0 {
		cfg.Capacity = capacity
	}
	if diagnostics != "" {
		on, err := strconv.ParseBool(diagnostics)
		if err != nil {
			return fmt.Errorf("-diagnostics: %w", err)
		}
		cfg.Diagnostics = &on
	}
	return cfg.Validate()
}

func run(w io.Writer, reg *union.Registry, typeName, literal string, listOnly bool) error {
	styled := isTerminal(w)

	if typeName != "" {
		u, err := parseLiteral(reg, typeName, literal)
		if err != nil {
			return err
		}
		fmt.Fprint(w, describe(reg, u, styled))
		fmt.Fprintln(w)
	}

	if listOnly || typeName == "" {
		fmt.Fprint(w, listEntries(reg, styled))
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func render(s lipgloss.Style, text string, styled bool) string {
	if !styled {
		return text
	}
	return s.Render(text)
}

// listEntries renders the registry's converters ordered by type ID.
func listEntries(reg *union.Registry, styled bool) string {
	var b strings.Builder

	b.WriteString(render(titleStyle, "Union registry", styled))
	fmt.Fprintf(&b, " capacity=%d converters=%d\n\n", reg.Capacity(), reg.Len())

	fmt.Fprintf(&b, "  %-6s %-10s %-5s %s\n", "ID", "KIND", "SIZE", "TYPE")
	for _, e := range reg.Entries() {
		info := layout.Of(e.Type)
		fmt.Fprintf(&b, "  %-6d %-10s %-5d %s\n",
			uint32(e.ID),
			render(kindStyle(e.Kind), e.Kind.String(), styled),
			info.Size,
			render(typeStyle, e.Type.String(), styled),
		)
	}
	return b.String()
}

// describe renders a union: identity, converter, payload bytes and the reads
// that succeed or fail against it.
func describe(reg *union.Registry, u union.Union, styled bool) string {
	var b strings.Builder

	if !u.IsValid() {
		b.WriteString(render(errorStyle, "invalid union (no converter could store the value)", styled))
		b.WriteString("\n")
		return b.String()
	}

	kind := union.KindUndefined
	if c, ok := reg.Lookup(u.ID()); ok {
		kind = c.Kind()
	}
	info := layout.Of(u.Type())

	fmt.Fprintf(&b, "type:    %s\n", render(typeStyle, u.Type().String(), styled))
	fmt.Fprintf(&b, "id:      %d\n", uint32(u.ID()))
	fmt.Fprintf(&b, "kind:    %s\n", render(kindStyle(kind), kind.String(), styled))
	fmt.Fprintf(&b, "layout:  %s size=%d align=%d\n", info.Shape, info.Size, info.Align)

	p := u.Payload()
	raw := p.Bytes()
	fmt.Fprintf(&b, "payload: %s\n", hex.EncodeToString(raw[:reg.Capacity()]))
	if ref := p.Ref(); ref != nil {
		fmt.Fprintf(&b, "ref:     %T\n", ref)
	}
	fmt.Fprintf(&b, "string:  %s\n", render(resultStyle, reg.Format(u), styled))

	b.WriteString("reads:\n")
	for _, pr := range probes {
		v, ok := pr.read(reg, u)
		mark := render(errorStyle, "miss", styled)
		if ok {
			mark = render(resultStyle, "ok  ", styled)
		}
		fmt.Fprintf(&b, "  %s %-8s %v\n", mark, pr.name, v)
	}
	return b.String()
}

type probe struct {
	read func(*union.Registry, union.Union) (any, bool)
	name string
}

func tryRead[T any](r *union.Registry, u union.Union) (any, bool) {
	return union.ConverterOf[T](r).TryGetValue(u)
}

var probes = []probe{
	{name: "bool", read: tryRead[bool]},
	{name: "int32", read: tryRead[int32]},
	{name: "int64", read: tryRead[int64]},
	{name: "uint32", read: tryRead[uint32]},
	{name: "float32", read: tryRead[float32]},
	{name: "float64", read: tryRead[float64]},
	{name: "string", read: tryRead[string]},
}
