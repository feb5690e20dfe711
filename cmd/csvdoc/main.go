package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/fieldline/csvdoc/pkg/csv"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csvdoc FILE",
		Short: "Print the rows of a CSV document",
		Long: strings.Join([]string{
			"Reads a CSV document and prints one row per line with fields",
			"separated by tabs. The first row is treated as a header and",
			"consumed unless --no-header is given.",
		}, "\n"),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			stream, err := flags.GetBool("stream")
			if err != nil {
				return err
			}
			noHeader, err := flags.GetBool("no-header")
			if err != nil {
				return err
			}
			trim, err := flags.GetBool("trim")
			if err != nil {
				return err
			}
			leftTrim, err := flags.GetBool("left-trim")
			if err != nil {
				return err
			}
			rightTrim, err := flags.GetBool("right-trim")
			if err != nil {
				return err
			}
			chunkSize, err := flags.GetInt("chunk-size")
			if err != nil {
				return err
			}
			verbosity, err := flags.GetInt("log-verbosity")
			if err != nil {
				return err
			}

			opts := csv.DefaultOptions()
			opts.Header = !noHeader
			opts.LeftTrim = trim || leftTrim
			opts.RightTrim = trim || rightTrim
			opts.ChunkSize = chunkSize

			s := csv.New()
			if err := s.Configure(opts); err != nil {
				return err
			}
			if verbosity > 0 {
				stdr.SetVerbosity(verbosity)
				s.SetLogger(stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)))
			}

			if err := s.OpenFile(args[0], !stream); err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			for s.Scan() {
				fmt.Fprintln(out, strings.Join(s.Row(), "\t"))
			}
			return s.Err()
		},
	}

	flags := cmd.Flags()
	flags.Bool("stream", false, "read the file incrementally instead of loading it whole")
	flags.Bool("no-header", false, "treat the first row as data")
	flags.Bool("trim", false, "trim spaces on both sides of unquoted fields")
	flags.Bool("left-trim", false, "trim leading spaces of unquoted fields")
	flags.Bool("right-trim", false, "trim trailing spaces of unquoted fields")
	flags.Int("chunk-size", 1024, "bytes per read in streaming mode")
	flags.Int("log-verbosity", 0, "log verbosity. Higher value means more log")
	return cmd
}
