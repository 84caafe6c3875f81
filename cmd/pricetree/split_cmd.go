package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pbanos/pricetree/dataset"
	"github.com/pbanos/pricetree/dataset/csv"
)

type splitCmdConfig struct {
	*rootCmdConfig
	setInput         string
	trainingOutput   string
	evaluationOutput string
	every            int
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a CSV set into a training set and an evaluation set",
		Long:  `Split a CSV set into a training set and an evaluation set holding out the rows whose line number is a multiple of every`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			f := os.Stdin
			if config.setInput != "" {
				f, err = os.Open(config.setInput)
				if err != nil {
					fmt.Fprintln(os.Stderr, fmt.Errorf("reading input set from %s: %v", config.setInput, err))
					os.Exit(2)
				}
				defer f.Close()
			}
			training, err := os.Create(config.trainingOutput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			defer training.Close()
			evaluation, err := os.Create(config.evaluationOutput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer evaluation.Close()
			trained, evaluated, err := csv.Split(f, config.every, training, evaluation)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			logrus.WithFields(logrus.Fields{"training": trained, "evaluation": evaluated}).Infof("input set with %d rows was split", trained+evaluated)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV file with the set to split (defaults to STDIN)")
	cmd.PersistentFlags().StringVar(&(config.trainingOutput), "training", "", "path to a file to dump the training set (required)")
	cmd.PersistentFlags().StringVar(&(config.evaluationOutput), "evaluation", "", "path to a file to dump the evaluation set (required)")
	cmd.PersistentFlags().IntVar(&(config.every), "every", dataset.DefaultEvaluationEvery, "hold out for evaluation the rows whose line number is a multiple of this (0 holds out nothing)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.trainingOutput == "" {
		return fmt.Errorf("required training flag was not set")
	}
	if scc.evaluationOutput == "" {
		return fmt.Errorf("required evaluation flag was not set")
	}
	if scc.every < 0 {
		return fmt.Errorf("every flag was set to an invalid value: it must be a non-negative integer")
	}
	return nil
}
