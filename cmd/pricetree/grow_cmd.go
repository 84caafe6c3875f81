package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pbanos/pricetree"
	"github.com/pbanos/pricetree/dataset"
	"github.com/pbanos/pricetree/dataset/csv"
	"github.com/pbanos/pricetree/listing"
	"github.com/pbanos/pricetree/listing/yaml"
	"github.com/pbanos/pricetree/report"
	"github.com/pbanos/pricetree/tree"
	jsontree "github.com/pbanos/pricetree/tree/json"
)

// trainingCmdConfig holds the flags of the commands that grow a tree.
type trainingCmdConfig struct {
	*rootCmdConfig
	dataInput       string
	evaluationInput string
	thresholdsInput string
	every           int
}

type growCmdConfig struct {
	*trainingCmdConfig
	treeOutput string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{trainingCmdConfig: &trainingCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a decision tree from a set of listings",
		Long:  `Grow a decision tree classifying listings into price brackets from a set of listings, and evaluate it on the listings held out from training`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			t, err := config.Thresholds()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			training, evaluation, err := config.Sets(ctx, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			grown := pricetree.NewGrower().Grow(training)
			err = report.WriteArena(grown, os.Stdout)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			if evaluation != nil && evaluation.Count() > 0 {
				logrus.WithField("records", evaluation.Count()).Info("evaluating tree")
				err = report.WriteEvaluation(grown.Test(evaluation), os.Stdout, report.NewDefaultTableStyle(), !color.NoColor)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
			}
			err = config.OutputTree(grown)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	config.AddFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.treeOutput), "output", "o", "", "path to a file to which the grown tree is written as JSON")
	return cmd
}

// AddFlags adds the flags for the training and evaluation sets to the command.
func (tcc *trainingCmdConfig) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(tcc.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or Redis URL with the listings to grow the tree from (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(tcc.evaluationInput), "eval", "", "path or URL of a set to evaluate the tree on, in the same formats as input")
	cmd.PersistentFlags().StringVar(&(tcc.thresholdsInput), "thresholds", "", "path to a YML file with the thresholds to discretize raw listings with")
	cmd.PersistentFlags().IntVar(&(tcc.every), "every", dataset.DefaultEvaluationEvery, "hold out for evaluation the CSV rows whose line number is a multiple of this (0 holds out nothing)")
}

func (tcc *trainingCmdConfig) Validate() error {
	if tcc.every < 0 {
		return fmt.Errorf("every flag was set to an invalid value: it must be a non-negative integer")
	}
	return nil
}

// Thresholds returns the thresholds read from the thresholds flag's file,
// or the default ones.
func (tcc *trainingCmdConfig) Thresholds() (listing.Thresholds, error) {
	if tcc.thresholdsInput == "" {
		return listing.DefaultThresholds(), nil
	}
	logrus.WithField("file", tcc.thresholdsInput).Info("reading thresholds")
	return yaml.ReadThresholdsFromFile(tcc.thresholdsInput)
}

/*
Sets returns the training set and the evaluation set, which is nil when
there is none. A CSV input is split by line number, holding out rows with
dataset.ForEvaluation. Any other input trains on every record. In both cases
the eval flag's set, if given, is the one evaluated on.
*/
func (tcc *trainingCmdConfig) Sets(ctx context.Context, t listing.Thresholds) (*dataset.Set, *dataset.Set, error) {
	var training, evaluation *dataset.Set
	var err error
	if kindOf(tcc.dataInput) == csvStore {
		training, evaluation, err = splitCSV(tcc.dataInput, t, tcc.every)
	} else {
		training, err = collect(ctx, tcc.dataInput, t)
	}
	if err != nil {
		return nil, nil, err
	}
	logrus.WithField("records", training.Count()).Info("training set read")
	if tcc.evaluationInput != "" {
		evaluation, err = collect(ctx, tcc.evaluationInput, t)
		if err != nil {
			return nil, nil, err
		}
	}
	if training.Count() == 0 {
		logrus.Warn("training set is empty")
	}
	return training, evaluation, nil
}

func splitCSV(path string, t listing.Thresholds, every int) (*dataset.Set, *dataset.Set, error) {
	training := dataset.New(nil)
	evaluation := dataset.New(nil)
	err := csv.Open(path, t).ReadLines(func(line int, r listing.Record) (bool, error) {
		if dataset.ForEvaluation(line, every) {
			evaluation.Add(r)
		} else {
			training.Add(r)
		}
		return true, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return training, evaluation, nil
}

// OutputTree writes the tree as JSON to the output flag's file, if set.
func (gcc *growCmdConfig) OutputTree(t *tree.Tree) error {
	if gcc.treeOutput == "" {
		return nil
	}
	logrus.WithField("file", gcc.treeOutput).Info("writing tree")
	f, err := os.Create(gcc.treeOutput)
	if err != nil {
		return errors.Wrapf(err, "creating %s", gcc.treeOutput)
	}
	err = jsontree.WriteJSONTree(t, f)
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "writing tree to %s", gcc.treeOutput)
	}
	return errors.Wrapf(f.Close(), "closing %s", gcc.treeOutput)
}
