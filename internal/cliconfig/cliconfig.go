// Package cliconfig parses os.Args into a supervisor.RunConfig,
// resolving the password from whichever source flag was given and
// applying an optional on-disk defaults file ahead of the built-in
// defaults.
package cliconfig

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nick/sshpass-go/internal/password"
	"github.com/nick/sshpass-go/internal/supervisor"
)

const (
	defaultPrompt = "assword:"
	defaultEnvVar = "SSHPASS"

	// ExitConflictingArguments is returned by Build (via os.Exit) when
	// more than one password-source flag is given.
	ExitConflictingArguments = 2
	// ExitRuntimeError is returned by Build (via os.Exit) when password
	// acquisition itself fails (e.g. an unreadable file).
	ExitRuntimeError = 3
)

// Build parses args (conventionally os.Args[1:]) and either returns a
// ready-to-run RunConfig or terminates the process via os.Exit. Apart
// from main, this is the only function in the program that calls
// os.Exit.
func Build(args []string) supervisor.RunConfig {
	fs := flag.NewFlagSet("sshpass-go", flag.ExitOnError)
	fs.SetOutput(os.Stderr)

	var (
		passwordArg string
		envVar      string
		filePath    string
		prompt      string
		verbose     bool
	)

	haveEnv := false
	envVar, args = extractEnvFlag(args)
	if envVar != "" {
		haveEnv = true
	}

	fs.StringVar(&passwordArg, "p", "", "provide password as argument (security unwise)")
	fs.StringVar(&filePath, "f", "", "take password to use from file")
	registerFdFlag(fs)
	fs.StringVar(&prompt, "P", "", "which string sshpass searches for to detect a password prompt")
	fs.BoolVar(&verbose, "v", false, "be verbose about what you're doing")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-p password|-e[=env_var]|-f filename%s] [-P prompt] [-v] command [args...]\n\n", os.Args[0], fdUsageSuffix())
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		// flag.ExitOnError has already printed a message and exited for
		// parse errors; this path only remains reachable for ErrHelp.
		os.Exit(0)
	}

	command := fs.Args()
	if len(command) == 0 {
		fmt.Fprintln(os.Stderr, "SSHPASS: a command to run is required")
		os.Exit(ExitConflictingArguments)
	}

	defaults := loadDefaultsFile(verbose)

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	havePassword := explicit["p"]
	haveFile := explicit["f"]
	haveFd, fdValue := fdGiven(fs, explicit)

	count := 0
	for _, given := range []bool{havePassword, haveEnv, haveFile, haveFd} {
		if given {
			count++
		}
	}
	if count > 1 {
		fmt.Fprintln(os.Stderr, "SSHPASS: conflicting password source")
		os.Exit(ExitConflictingArguments)
	}

	source := password.Source{Kind: password.Stdin}
	switch {
	case havePassword:
		source = password.Source{Kind: password.Direct, Value: passwordArg}
	case haveEnv:
		name := envVar
		if name == "" {
			name = defaultEnvVar
		}
		source = password.Source{Kind: password.Env, Value: name}
	case haveFile:
		source = password.Source{Kind: password.File, Value: filePath}
	case haveFd:
		source = fdSource(fdValue)
	}

	pw, err := password.Resolve(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "SSHPASS: %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	if !explicit["P"] {
		prompt = defaults.prompt
		if prompt == "" {
			prompt = defaultPrompt
		}
	}
	if !explicit["v"] {
		verbose = defaults.verbose
	}

	return supervisor.RunConfig{
		Command:  command,
		Password: pw,
		Prompt:   prompt,
		Verbose:  verbose,
	}
}

// valueFlags names the flags that consume the following argument as
// their value when given in bare "-x value" form, so the pre-scan
// below can skip over that value instead of mistaking it (or a later
// "-e" meant for the child command) for a flag of its own.
var valueFlags = map[string]bool{"-p": true, "-f": true, "-P": true, "-d": true}

// extractEnvFlag scans args by hand for "-e" or "-e=VAR" before the
// standard flag set sees them. The stdlib flag package has no notion
// of a flag whose value is optional, and clap's require_equals form
// (`-e` alone means the default variable, `-e=VAR` names one
// explicitly) cannot be expressed through flag.Var either, since that
// still requires a value token to follow a bare "-e". The return
// value is the empty string when -e was not given at all, and
// defaultEnvVar when -e was given with no "=value".
//
// The scan stops at the first positional argument, matching trailing
// var-arg semantics: once the child command starts, any "-e" among
// its own arguments belongs to the child, not to sshpass-go.
func extractEnvFlag(args []string) (value string, rest []string) {
	rest = make([]string, 0, len(args))
	found := false
	i := 0
	for i < len(args) {
		a := args[i]
		switch {
		case a == "-e":
			found = true
			if value == "" {
				value = defaultEnvVar
			}
			i++
		case strings.HasPrefix(a, "-e="):
			found = true
			value = a[3:]
			i++
		case valueFlags[a]:
			rest = append(rest, a)
			i++
			if i < len(args) {
				rest = append(rest, args[i])
				i++
			}
		case strings.HasPrefix(a, "-") && a != "-":
			rest = append(rest, a)
			i++
		default:
			// First positional argument: the child command starts
			// here. Everything from this point on is passed through
			// untouched, including any "-e" among the child's own
			// arguments.
			rest = append(rest, args[i:]...)
			i = len(args)
		}
	}
	if !found {
		return "", args
	}
	return value, rest
}

type fileDefaults struct {
	prompt  string
	verbose bool
}

// loadDefaultsFile reads the optional YAML defaults file, if present,
// from $SSHPASS_GO_CONFIG or .sshpass-go.yaml in the working
// directory. A missing or malformed file is never an error: flags
// alone must always be sufficient to run the tool.
func loadDefaultsFile(verbose bool) fileDefaults {
	path := os.Getenv("SSHPASS_GO_CONFIG")
	if path == "" {
		path = ".sshpass-go.yaml"
	}

	f, err := os.Open(path)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "SSHPASS: no defaults file at %s: %v\n", path, err)
		}
		return fileDefaults{}
	}
	defer f.Close()

	defaults, err := decodeDefaultsFile(f)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "SSHPASS: ignoring malformed defaults file %s: %v\n", path, err)
		}
		return fileDefaults{}
	}
	return defaults
}

func decodeDefaultsFile(r io.Reader) (fileDefaults, error) {
	var raw struct {
		Prompt  string `yaml:"prompt"`
		Verbose bool   `yaml:"verbose"`
	}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return fileDefaults{}, err
	}
	return fileDefaults{prompt: raw.Prompt, verbose: raw.Verbose}, nil
}
