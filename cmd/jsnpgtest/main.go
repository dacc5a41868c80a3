// Command jsnpgtest is a small harness for exercising the jsnpg library
// from the shell: reformat JSON, walk it as a flat event stream, or
// capture it into a DOM and replay it back out.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mcvoid/jsnpg"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jsnpgtest:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jsnpgtest",
		Short:         "Exercise the jsnpg parser/generator from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(parseCmd(), pullCmd(), domCmd())
	return root
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

func parserAllow(comments, trailingCommas, trailingChars, multipleValues bool) jsnpg.Allow {
	var allow jsnpg.Allow
	if comments {
		allow |= jsnpg.AllowComments
	}
	if trailingCommas {
		allow |= jsnpg.AllowTrailingCommas
	}
	if trailingChars {
		allow |= jsnpg.AllowTrailingChars
	}
	if multipleValues {
		allow |= jsnpg.AllowMultipleValues
	}
	return allow
}

func parseCmd() *cobra.Command {
	var (
		indent         int
		comments       bool
		trailingCommas bool
		trailingChars  bool
		multipleValues bool
	)
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse JSON and reprint it (compact or indented)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts := jsnpg.ParserOpts{Allow: parserAllow(comments, trailingCommas, trailingChars, multipleValues)}
			g, err := jsnpg.NewGenerator(jsnpg.GeneratorOpts{Indent: uint(indent)})
			if err != nil {
				return err
			}
			if err := jsnpg.ParseBytes(input, opts, g); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), g.String())
			return nil
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 0, "pretty-print with this many spaces per level")
	cmd.Flags().BoolVar(&comments, "allow-comments", false, "accept // and /* */ comments")
	cmd.Flags().BoolVar(&trailingCommas, "allow-trailing-commas", false, "accept a trailing comma before ']' or '}'")
	cmd.Flags().BoolVar(&trailingChars, "allow-trailing-chars", false, "ignore bytes after the first value")
	cmd.Flags().BoolVar(&multipleValues, "allow-multiple-values", false, "parse a whitespace-separated sequence of values")
	return cmd
}

func pullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull [file]",
		Short: "Parse JSON and print the resulting event sequence, one event per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			pp, err := jsnpg.NewPullParser(input, jsnpg.ParserOpts{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for {
				ev := pp.Next()
				switch ev.Type {
				case jsnpg.TypeEOF:
					return nil
				case jsnpg.TypeError:
					return fmt.Errorf("at byte %d: %s (%s)", ev.Pos, ev.ErrMsg, ev.ErrKind)
				case jsnpg.TypeString, jsnpg.TypeKey:
					fmt.Fprintf(out, "%s %q\n", ev.Type, ev.Bytes)
				case jsnpg.TypeInteger:
					fmt.Fprintf(out, "%s %d\n", ev.Type, ev.Integer)
				case jsnpg.TypeReal:
					fmt.Fprintf(out, "%s %g\n", ev.Type, ev.Real)
				default:
					fmt.Fprintf(out, "%s\n", ev.Type)
				}
			}
		},
	}
	return cmd
}

func domCmd() *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:   "dom [file]",
		Short: "Parse JSON into a DOM event log, then replay it back out",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			dg, err := jsnpg.NewGenerator(jsnpg.GeneratorOpts{DOM: true})
			if err != nil {
				return err
			}
			if err := jsnpg.ParseBytes(input, jsnpg.ParserOpts{}, dg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "captured %d events\n", dg.DOM().Len())

			printer, err := jsnpg.NewGenerator(jsnpg.GeneratorOpts{Indent: uint(indent)})
			if err != nil {
				return err
			}
			if err := dg.DOM().ReplayInto(printer); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), printer.String())
			return nil
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 0, "pretty-print the replayed output")
	return cmd
}
