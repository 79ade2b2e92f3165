package cli_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/graph-guard/chainmap/pkg/cli"

	"github.com/stretchr/testify/require"
)

func helpOutput(execName string) string {
	return lines(
		fmt.Sprintf("usage: %s <command> [flags]", execName),
		"",
		"commands available:",
		" load - loads a JSON object into a map",
		" fill - fills a map with random keys",
		" help - prints this help",
	)
}

func loadUsage() []string {
	return []string{
		"",
		"usage: chainmap load [-config <path>] -input <path>",
		"",
		"flags:",
		"-config <path>: defines the configuration file path " +
			"(default: built-in defaults)",
		"-input <path>: defines the JSON input file path",
	}
}

func fillUsage() []string {
	return []string{
		"",
		"usage: chainmap fill [-config <path>] [-n <count>] [-erase <count>]",
		"",
		"flags:",
		"-config <path>: defines the configuration file path " +
			"(default: built-in defaults)",
		"-n <count>: defines the number of keys to insert (default: 1000)",
		"-erase <count>: defines the number of keys to erase (default: 0)",
	}
}

func TestNoArgs(t *testing.T) {
	out := new(bytes.Buffer)
	c := cli.Parse(out, nil)
	require.Nil(t, c)
	require.Equal(t, helpOutput("chainmap"), out.String())
}

func TestNoCommand(t *testing.T) {
	out := new(bytes.Buffer)
	c := cli.Parse(out, []string{"execname"})
	require.Nil(t, c)
	require.Equal(t, helpOutput("execname"), out.String())
}

func TestUnknownCommand(t *testing.T) {
	out := new(bytes.Buffer)
	c := cli.Parse(out, []string{"execname", "unknown-command"})
	require.Nil(t, c)
	require.Equal(t, helpOutput("execname"), out.String())
}

func TestCommandHelp(t *testing.T) {
	out := new(bytes.Buffer)
	c := cli.Parse(out, []string{"/usr/bin/execname", "help"})
	require.Nil(t, c)
	require.Equal(t, helpOutput("execname"), out.String())
}

func TestCommandLoad(t *testing.T) {
	t.Run("input", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{
			"chainmap", "load", "-input", "data.json",
		})
		require.Equal(t, cli.CommandLoad{InputPath: "data.json"}, c)
		require.Equal(t, "", out.String())
	})

	t.Run("config", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{
			"chainmap", "load",
			"-config", "./chainmap.yaml",
			"-input", "data.json",
		})
		require.Equal(t, cli.CommandLoad{
			ConfigPath: "./chainmap.yaml",
			InputPath:  "data.json",
		}, c)
		require.Equal(t, "", out.String())
	})

	t.Run("missing_input", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{"chainmap", "load"})
		require.Nil(t, c)
		require.Equal(t,
			lines(append([]string{"-input isn't set."}, loadUsage()...)...),
			out.String(),
		)
	})

	t.Run("unknown_flags", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{
			"chainmap", "load", "-unknown", "foobar",
		})
		require.Nil(t, c)
		require.Equal(t,
			lines(append(
				[]string{"flag provided but not defined: -unknown"},
				loadUsage()...,
			)...),
			out.String(),
		)
	})
}

func TestCommandFill(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{"chainmap", "fill"})
		require.Equal(t, cli.CommandFill{Insert: 1000}, c)
		require.Equal(t, "", out.String())
	})

	t.Run("counts", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{
			"chainmap", "fill", "-n", "64", "-erase", "60",
		})
		require.Equal(t, cli.CommandFill{Insert: 64, Erase: 60}, c)
		require.Equal(t, "", out.String())
	})

	t.Run("illegal_counts", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{
			"chainmap", "fill", "-n", "4", "-erase", "5",
		})
		require.Nil(t, c)
		require.Equal(t,
			lines(append(
				[]string{
					"illegal counts: -n 4 -erase 5 (expected 0 <= erase <= n)",
				},
				fillUsage()...,
			)...),
			out.String(),
		)
	})
}

func lines(lines ...string) string {
	var b strings.Builder
	for i := range lines {
		b.WriteString(lines[i])
		b.WriteByte('\n')
	}
	return b.String()
}
