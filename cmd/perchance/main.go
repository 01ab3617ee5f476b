// Command perchance evaluates a template file and prints the generated
// text to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/perchance-go/perchance/compile"
	"github.com/perchance-go/perchance/config"
	"github.com/perchance-go/perchance/eval"
	"github.com/perchance-go/perchance/loader"
	"github.com/perchance-go/perchance/parser"
	"github.com/perchance-go/perchance/rng"
)

// This variable is set automatically as part of the release process.
// Please do NOT modify the following line.
var version = "dev"

var (
	vcsRevision string
	vcsTime     time.Time
	vcsModified bool
	goVersion   string
)

func init() {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	goVersion = buildInfo.GoVersion
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			vcsRevision = setting.Value
		case "vcs.time":
			vcsTime, _ = time.Parse(time.RFC3339, setting.Value)
		case "vcs.modified":
			vcsModified = (setting.Value == "true")
		}
	}
}

var (
	seedFlag       = flag.Int64("seed", 0, "PRNG seed (0 picks a time-derived seed)")
	importPathFlag = flag.String("importpath", "", "directories searched for {import:name}, overriding the config file")
	logpath        = flag.String("log", "", "log to file")
	noconfig       = flag.Bool("noconfig", false, "force default configuration")
	lintEscapes    = flag.Bool("lint-escapes", false, "when strictEscapes is set in the config, report unrecognized backslash escapes and exit nonzero instead of evaluating")
	versionFlag    = flag.Bool("version", false, "print version")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s @ %s\n", version, vcsRevision)
		return
	}

	log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	if *logpath != "" {
		logFile, err := os.Create(*logpath)
		if err != nil {
			exitWithError(err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	path := flag.Arg(0)
	if path == "" {
		exitWithError(errors.New("missing template path (use '-' for stdin)"))
	}

	out, err := run(path)
	if err != nil {
		exitWithError(err)
	}
	fmt.Println(out)
}

func run(path string) (string, error) {
	log.Printf("version: %s\n", version)
	log.Printf("go version: %s\n", goVersion)
	log.Printf("vcs.revision: %s\n", vcsRevision)
	log.Printf("vcs.time: %s\n", vcsTime)
	log.Printf("vcs.modified: %t\n", vcsModified)
	log.Printf("path arg: %q\n", path)

	settings, err := config.LoadOrCreate(*noconfig)
	if err != nil {
		return "", err
	}

	source, err := readTemplate(path)
	if err != nil {
		return "", err
	}

	if *lintEscapes && settings.StrictEscapes {
		if bad := parser.UnknownEscapes(source); len(bad) > 0 {
			msgs := make([]string, len(bad))
			for i, u := range bad {
				msgs[i] = u.String()
			}
			return "", fmt.Errorf("unrecognized escape sequences:\n%s", strings.Join(msgs, "\n"))
		}
	}

	astProg, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	compiled, err := compile.Compile(astProg)
	if err != nil {
		return "", err
	}

	importPath := *importPathFlag
	var ldr loader.Loader
	switch {
	case importPath != "":
		fsLdr, err := loader.NewFSLoader(importPath)
		if err != nil {
			return "", err
		}
		ldr = fsLdr
	case len(settings.ImportPaths) > 0:
		ldr = &loader.FSLoader{Dirs: settings.ImportPaths}
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("seed: %d\n", seed)

	return eval.Evaluate(compiled, rng.New(seed), ldr, eval.WithMaxDepth(settings.MaxRecursionDepth))
}

func readTemplate(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading template from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template %q: %w", path, err)
	}
	return string(data), nil
}

func printUsage() {
	f := flag.CommandLine.Output()
	fmt.Fprintf(f, "Usage: %s [options...] <path|->\n", os.Args[0])
	flag.PrintDefaults()
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
