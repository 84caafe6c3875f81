package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pbanos/pricetree/dataset"
	"github.com/pbanos/pricetree/listing"
	"github.com/pbanos/pricetree/listing/yaml"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput        string
	setOutput       string
	thresholdsInput string
	batch           int
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Discretize a set of listings and dump its records to a store",
		Long:  `Read a set of raw listings or records, discretize the listings and dump the records to a CSV file, SQLite3 file, or a PostgreSQL, MongoDB or Redis store`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			t := listing.DefaultThresholds()
			if config.thresholdsInput != "" {
				t, err = yaml.ReadThresholdsFromFile(config.thresholdsInput)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
			}
			input, err := collect(ctx, config.setInput, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			output, err := createWriter(ctx, config.setOutput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			n, err := dataset.WriteAll(ctx, output, input.Records(), config.batch)
			if err != nil {
				output.Close()
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			err = output.Close()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			logrus.WithField("records", n).Info("done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or Redis URL with the set to dump (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or Redis URL to dump the records to (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().StringVar(&(config.thresholdsInput), "thresholds", "", "path to a YML file with the thresholds to discretize raw listings with")
	cmd.PersistentFlags().IntVar(&(config.batch), "batch", 100, "number of records written to the output per write")
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.batch <= 0 {
		return fmt.Errorf("batch flag was set to an invalid value: it must be a positive integer")
	}
	if scc.setInput != "" && scc.setInput == scc.setOutput {
		return fmt.Errorf("input and output flags must name different sets")
	}
	return nil
}
