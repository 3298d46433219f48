// Command bfcc compiles and runs a Brainfuck source program: lex, parse
// into IR1, optimize, lower to IR2, optimize again, and execute against
// the process's stdin/stdout.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"bfcc/codegen"
	"bfcc/diag"
	"bfcc/ir1"
	"bfcc/ir2"
	"bfcc/token"
)

var (
	dumpIR1    = flag.Bool("dump-ir1", false, "print the optimized IR1 tree to stderr before running")
	dumpIR2    = flag.Bool("dump-ir2", false, "print the optimized IR2 module to stderr before running")
	noOptimize = flag.Bool("no-optimize", false, "skip both optimizer passes")
	tapeHint   = flag.Int("tape-hint", 30000, "initial tape reservation in cells")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	src, err := readSource()
	if err != nil {
		diag.ReportAndExit(fmt.Errorf("reading source: %w", err))
	}

	if err := run(src); err != nil {
		diag.ReportAndExit(err)
	}
}

func readSource() ([]byte, error) {
	if flag.NArg() == 1 {
		return os.ReadFile(flag.Arg(0))
	}
	if flag.NArg() > 1 {
		return nil, fmt.Errorf("usage: bfcc [flags] [file]")
	}
	return io.ReadAll(os.Stdin)
}

func run(src []byte) error {
	toks, err := token.Lex(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("lexing: %w", err)
	}

	prog, err := ir1.Parse(toks)
	if err != nil {
		return err
	}
	if !*noOptimize {
		ir1.Optimize(&prog)
	}
	if *dumpIR1 {
		ir1.Print(os.Stderr, prog)
	}

	module := codegen.Lower(prog)
	if !*noOptimize {
		ir2.Optimize(module)
	}
	if *dumpIR2 {
		ir2.Print(os.Stderr, module)
	}

	exec := ir2.NewExec(os.Stdout, os.Stdin, *tapeHint)
	if err := exec.Run(module); err != nil {
		return fmt.Errorf("running: %w", err)
	}

	return nil
}
