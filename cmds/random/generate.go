package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/safing/random/base/random"
)

var (
	fractionCmd = &cobra.Command{
		Use:   "fraction",
		Short: "Print a random fraction in [0,1)",
		Args:  cobra.NoArgs,
		RunE: withGenerator(func(cmd *cobra.Command, g *random.Generator, _ []string) error {
			f, err := g.Fraction()
			if err != nil {
				return err
			}
			return printLine(cmd, strconv.FormatFloat(f, 'f', -1, 64))
		}),
	}

	hexCmd = &cobra.Command{
		Use:   "hex <digits>",
		Short: "Print a random lowercase hex string",
		Args:  cobra.ExactArgs(1),
		RunE: withGenerator(func(cmd *cobra.Command, g *random.Generator, args []string) error {
			digits, err := parseLength(args, 0, 0)
			if err != nil {
				return err
			}
			return printString(cmd)(g.HexString(digits))
		}),
	}

	idCmd = &cobra.Command{
		Use:   "id [length]",
		Short: "Print a random identifier without easily confused characters",
		Args:  cobra.MaximumNArgs(1),
		RunE: withGenerator(func(cmd *cobra.Command, g *random.Generator, args []string) error {
			length, err := parseLength(args, 0, random.DefaultIDLength)
			if err != nil {
				return err
			}
			return printString(cmd)(g.IDOfLength(length))
		}),
	}

	secretCmd = &cobra.Command{
		Use:   "secret [length]",
		Short: "Print a random URL-safe secret",
		Args:  cobra.MaximumNArgs(1),
		RunE: withGenerator(func(cmd *cobra.Command, g *random.Generator, args []string) error {
			if !g.Secure() {
				return fmt.Errorf("%w: refusing to generate a secret with the %s generator", random.ErrSourceUnavailable, g.Kind())
			}
			length, err := parseLength(args, 0, random.DefaultSecretLength)
			if err != nil {
				return err
			}
			return printString(cmd)(g.SecretOfLength(length))
		}),
	}

	choiceCmd = &cobra.Command{
		Use:   "choice <items...>",
		Short: "Print one of the given items",
		Args:  cobra.MinimumNArgs(1),
		RunE: withGenerator(func(cmd *cobra.Command, g *random.Generator, args []string) error {
			return printString(cmd)(random.Choice(g, args))
		}),
	}

	uuidCmd = &cobra.Command{
		Use:   "uuid",
		Short: "Print a random version 4 UUID",
		Args:  cobra.NoArgs,
		RunE: withGenerator(func(cmd *cobra.Command, g *random.Generator, _ []string) error {
			u, err := g.UUID()
			if err != nil {
				return err
			}
			return printLine(cmd, u.String())
		}),
	}

	streamCmd = &cobra.Command{
		Use:   "stream [count]",
		Short: "Print a stream of random fractions, reproducible with --seed",
		Args:  cobra.MaximumNArgs(1),
		RunE: withGenerator(func(cmd *cobra.Command, g *random.Generator, args []string) error {
			count, err := parseLength(args, 0, 10)
			if err != nil {
				return err
			}
			return printStream(cmd, g, count)
		}),
	}
)

func init() {
	rootCmd.AddCommand(
		fractionCmd,
		hexCmd,
		idCmd,
		secretCmd,
		choiceCmd,
		uuidCmd,
		streamCmd,
	)
}

func printStream(cmd *cobra.Command, g *random.Generator, count int) error {
	for range count {
		f, err := g.Fraction()
		if err != nil {
			return err
		}
		if err := printLine(cmd, strconv.FormatFloat(f, 'f', -1, 64)); err != nil {
			return err
		}
	}
	return nil
}

// parseLength parses the argument at index as a non-negative integer, or
// returns the fallback if it is missing.
func parseLength(args []string, index int, fallback int) (int, error) {
	if len(args) <= index {
		return fallback, nil
	}

	n, err := strconv.Atoi(args[index])
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", args[index], err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", random.ErrInvalidLength, n)
	}
	return n, nil
}

func printLine(cmd *cobra.Command, s string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}

func printString(cmd *cobra.Command) func(string, error) error {
	return func(s string, err error) error {
		if err != nil {
			return err
		}
		return printLine(cmd, s)
	}
}
