// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"maps"
	"os"

	"github.com/ezrec/intcode/asm"
	"github.com/ezrec/intcode/machine"
	"github.com/ezrec/intcode/program"
	"github.com/ezrec/intcode/translate"
)

func main() {
	var config string
	var listing string
	var assembly string
	var input string
	var output string
	var ascii bool
	var dump bool
	var disassemble bool
	var verbose bool
	var language string
	patch := patchFlag{}

	flag.StringVar(&config, "c", "", ".toml run configuration")
	flag.StringVar(&listing, "p", "", "comma separated program listing")
	flag.StringVar(&assembly, "a", "", "assembly source to compile")
	flag.StringVar(&input, "i", "-", "input")
	flag.StringVar(&output, "o", "-", "output")
	flag.BoolVar(&ascii, "ascii", false, "ASCII input and output")
	flag.BoolVar(&dump, "dump", false, "print the final tape listing")
	flag.BoolVar(&disassemble, "d", false, "disassemble the program, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&language, "lang", "", "message language")
	flag.Var(patch, "set", "patch cell before running, addr=value (repeatable)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := Config{Input: "-", Output: "-"}
	if len(config) != 0 {
		var err error
		cfg, err = LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}

	// Flags given on the command line override the configuration.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "p":
			cfg.Program = listing
		case "a":
			cfg.Assembly = assembly
		case "i":
			cfg.Input = input
		case "o":
			cfg.Output = output
		case "ascii":
			cfg.ASCII = ascii
		case "dump":
			cfg.Dump = dump
		case "v":
			cfg.Verbose = verbose
		case "lang":
			cfg.Language = language
		}
	})
	if cfg.Patch == nil {
		cfg.Patch = map[string]int64{}
	}
	maps.Copy(cfg.Patch, patch)

	if len(cfg.Language) != 0 {
		translate.Use(cfg.Language)
	}

	var prog []int64
	var err error
	switch {
	case len(cfg.Assembly) != 0:
		inf, err := os.Open(cfg.Assembly)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Assembly, err)
		}
		defer inf.Close()

		assembler := &asm.Assembler{Verbose: cfg.Verbose}
		prog, err = assembler.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Assembly, err)
		}
	case len(cfg.Program) != 0:
		prog, err = program.Load(cfg.Program)
		if err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("%v: one of -p or -a is required", os.Args[0])
	}

	if disassemble {
		err = machine.Disassemble(os.Stdout, prog)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	emu, err := cfg.Emulator(prog)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if cfg.Input == "-" {
		emu.Input = os.Stdin
	} else {
		inf, err := os.Open(cfg.Input)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Input, err)
		}
		defer inf.Close()
		emu.Input = inf
	}

	if cfg.Output == "-" {
		emu.Output = os.Stdout
	} else {
		ouf, err := os.Create(cfg.Output)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Output, err)
		}
		defer ouf.Close()
		emu.Output = ouf
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Print(emu.Machine.String())
		log.Fatal(err)
	}

	if cfg.Dump {
		err = program.Format(emu.Output, emu.Cells())
		if err != nil {
			log.Fatal(err)
		}
	}
}
