package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
)

// Command can be any of:
//
//	CommandLoad
//	CommandFill
type Command any

// CommandLoad loads the top-level members of a JSON object into a map.
type CommandLoad struct {
	ConfigPath string
	InputPath  string
}

// CommandFill fills a map with random keys and erases some of them.
type CommandFill struct {
	ConfigPath string
	Insert     int
	Erase      int
}

// Parse parses args and returns the command or nil
// if args don't describe a runnable command.
// Usage and errors are written to w.
func Parse(w io.Writer, args []string) (cmd Command) {
	fm := fmt.Sprintf

	executableName := "chainmap"
	if len(args) > 0 {
		executableName = filepath.Base(args[0])
	}

	flags := flag.NewFlagSet("chainmap", flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		writeLines(w,
			fm("usage: %s <command> [flags]", executableName),
			"",
			"commands available:",
			" load - loads a JSON object into a map",
			" fill - fills a map with random keys",
			" help - prints this help",
		)
	}

	parseFlags := func() (ok bool) {
		err := flags.Parse(args[2:])
		// flags will automatically call .Usage()
		return err == nil
	}

	if len(args) < 2 {
		flags.Usage()
		return nil
	}

	configUsage := "-config <path>: defines the configuration file path " +
		"(default: built-in defaults)"

	switch args[1] {
	case "load":
		c := CommandLoad{}
		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s load [-config <path>] -input <path>", executableName),
				"",
				"flags:",
				configUsage,
				"-input <path>: defines the JSON input file path",
			)
		}
		flags.StringVar(&c.ConfigPath, "config", "", "")
		flags.StringVar(&c.InputPath, "input", "", "")
		if !parseFlags() {
			return nil
		}
		if c.InputPath == "" {
			writeLines(w, "-input isn't set.")
			flags.Usage()
			return nil
		}
		cmd = c

	case "fill":
		c := CommandFill{}
		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s fill [-config <path>] [-n <count>] [-erase <count>]",
					executableName),
				"",
				"flags:",
				configUsage,
				"-n <count>: defines the number of keys to insert (default: 1000)",
				"-erase <count>: defines the number of keys to erase (default: 0)",
			)
		}
		flags.StringVar(&c.ConfigPath, "config", "", "")
		flags.IntVar(&c.Insert, "n", 1000, "")
		flags.IntVar(&c.Erase, "erase", 0, "")
		if !parseFlags() {
			return nil
		}
		if c.Insert < 0 || c.Erase < 0 || c.Erase > c.Insert {
			writeLines(w, fm(
				"illegal counts: -n %d -erase %d "+
					"(expected 0 <= erase <= n)", c.Insert, c.Erase,
			))
			flags.Usage()
			return nil
		}
		cmd = c

	case "help":
		flags.Usage()
		return nil

	default:
		flags.Usage()
		return nil
	}
	return cmd
}

func writeLines(w io.Writer, lines ...string) {
	for i := range lines {
		_, _ = w.Write([]byte(lines[i]))
		_, _ = w.Write([]byte("\n"))
	}
}
