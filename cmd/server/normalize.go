package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/scriptorivm/orthograph/pkg/latin"
	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

func cmdNormalize(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	mode := fs.String("mode", "full", "full, uv, vu or longs")
	pass2 := fs.Bool("pass2", true, "enable the frequency pass of the long-s corrector")
	backend := fs.String("backend", "", "pin a backend instead of probing")
	rulesetDir := fs.String("ruleset", "", "rule bundle directory (default: embedded starter)")
	explain := fs.Bool("explain", false, "print the change trail instead of the normalized text")
	fs.Parse(args)

	text, err := readInput(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	opts := []latin.Option{latin.WithPass2(*pass2)}
	if *rulesetDir != "" {
		set, err := ruleset.Load(*rulesetDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ruleset: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, latin.WithRuleset(set))
	}
	if *backend != "" {
		opts = append(opts, latin.WithBackend(*backend))
	}

	p, err := latin.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *explain {
		explainText(p, *mode, text)
		return
	}

	switch *mode {
	case "full":
		fmt.Print(p.Normalize(text))
	case "uv":
		fmt.Print(p.NormalizeUV(text))
	case "vu":
		fmt.Print(p.NormalizeVU(text))
	case "longs":
		fmt.Print(p.CorrectLongS(text))
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q (want full, uv, vu or longs)\n", *mode)
		os.Exit(1)
	}
}

// readInput reads the first positional argument as a file, or stdin when
// no argument (or "-") is given.
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}

func explainText(p *latin.Pipeline, mode, text string) {
	var res *latin.Result
	switch mode {
	case "full":
		res = p.Explain(text)
	case "uv":
		res = p.ExplainUV(text)
	case "longs":
		res = p.ExplainLongS(text)
	default:
		fmt.Fprintf(os.Stderr, "Mode %q cannot be explained (want full, uv or longs)\n", mode)
		os.Exit(1)
	}

	fmt.Println(res.Normalized)
	for _, ch := range res.Changes {
		fmt.Printf("  %4d  %s -> %s  %-32s %s\n", ch.Pos, ch.From, ch.To, ch.Rule, ch.Context)
	}
	if len(res.Changes) == 0 {
		fmt.Println("  (no changes)")
	}
}
