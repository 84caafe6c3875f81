package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbanos/pricetree"
	"github.com/pbanos/pricetree/dataset/inputsample"
	"github.com/pbanos/pricetree/listing"
	"github.com/pbanos/pricetree/tree"
)

type predictCmdConfig struct {
	*trainingCmdConfig
}

type stdoutFeatureValueRequester struct {
	w io.Writer
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{trainingCmdConfig: &trainingCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the price bracket of a listing answering questions",
		Long:  `Grow a tree from a set of listings and use it to predict the price bracket of a listing, answering only the questions about the features on its path`,
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
			training, _, err := config.Sets(ctx, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			grown := pricetree.NewGrower().Grow(training)
			message, err := predict(ctx, grown, os.Stdin, os.Stdout)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			fmt.Println(message)
		},
	}
	config.AddFlags(cmd)
	return cmd
}

// Validate requires an input set, as STDIN is where the answers are read.
func (pcc *predictCmdConfig) Validate() error {
	if pcc.dataInput == "" {
		return fmt.Errorf("required input flag was not set: STDIN is used to answer questions about the listing")
	}
	return pcc.trainingCmdConfig.Validate()
}

/*
predict classifies a listing whose feature values are asked for on out and
read from in, and returns the message announcing the predicted bracket.
*/
func predict(ctx context.Context, t *tree.Tree, in io.Reader, out io.Writer) (string, error) {
	sample := inputsample.New(in, stdoutFeatureValueRequester{out})
	b, ok, err := t.Predict(ctx, sample)
	if err != nil {
		return "", err
	}
	if !ok {
		return "No training listing is like this one, so no price bracket can be predicted", nil
	}
	return fmt.Sprintf("Predicted price bracket is %s", b), nil
}

func (sfvr stdoutFeatureValueRequester) RequestValueFor(f listing.Feature) error {
	_, err := fmt.Fprintf(sfvr.w, "Please provide the listing's %s:\n(valid values are %v)\n", f.Name(), f.AvailableValues())
	return err
}

func (sfvr stdoutFeatureValueRequester) RejectValueFor(f listing.Feature, value string) error {
	_, err := fmt.Fprintf(sfvr.w, "%q is not a valid value for the listing's %s. Please provide one of %v.\n", value, f.Name(), f.AvailableValues())
	return err
}
