/*
Parsedemo parses an arithmetic expression against the bundled example
grammar and prints the resulting parse tree.

Usage:

	parsedemo [flags] EXPRESSION

The flags are:

	-k, --max-lookahead N
		Override the grammar's starting look-ahead k before Prepare grows
		it. Defaults to 1.

	-c, --config PATH
		Read tokenizer tunables (max_lookahead, block_size) from a TOML
		sidecar. A positive --max-lookahead overrides the file's
		max_lookahead. See examples/arith.

	-d, --debug-grammar
		Print the prepared grammar's productions, elements, and cached
		look-ahead sets as a table instead of parsing anything.

If EXPRESSION is omitted, parsedemo reads it from stdin instead.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cederberg/grammatica-sub000/examples/arith"
	"github.com/cederberg/grammatica-sub000"
	"github.com/cederberg/grammatica-sub000/internal/version"
	"github.com/cederberg/grammatica-sub000/parse"
	"github.com/spf13/pflag"
)

var (
	flagMaxLookahead = pflag.IntP("max-lookahead", "k", 0, "Override the grammar's starting look-ahead k.")
	flagConfig       = pflag.StringP("config", "c", "", "Read tokenizer tunables from a TOML sidecar.")
	flagVersion      = pflag.BoolP("version", "v", false, "Print the version and exit.")
	flagDebugGrammar = pflag.BoolP("debug-grammar", "d", false, "Print the prepared grammar's look-ahead table and exit.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	cfg := arith.DefaultConfig()
	if *flagConfig != "" {
		fileCfg, err := arith.LoadConfig(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = fileCfg
	}
	if *flagMaxLookahead > 0 {
		cfg.MaxLookahead = *flagMaxLookahead
	}

	g, err := arith.Build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build grammar: %v\n", err)
		os.Exit(1)
	}

	if *flagDebugGrammar {
		fmt.Println(g.DebugTable())
		return
	}

	expr, err := readExpression()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	p, err := grammatica.New(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build parser: %v\n", err)
		os.Exit(1)
	}
	p.SetAnalyzer(parse.DefaultAnalyzer{})

	p.Reset(strings.NewReader(expr))
	node, err := p.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse failed:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println(node.String())
}

func readExpression() (string, error) {
	if args := pflag.Args(); len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
