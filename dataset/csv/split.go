package csv

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/pbanos/pricetree/dataset"
)

/*
Split takes an io.Reader for a CSV stream, an evaluation period and two
io.Writers, and copies the header to both writers and every row to one of
them: rows whose line number dataset.ForEvaluation holds out go to the
evaluation writer, the rest to the training one. Rows are copied verbatim.
It returns the number of rows written to each writer or an error.
*/
func Split(reader io.Reader, every int, training, evaluation io.Writer) (int, int, error) {
	r := newReader(reader)
	header, err := r.Read()
	if err != nil {
		return 0, 0, errors.Wrap(err, "reading header")
	}
	tw := csv.NewWriter(training)
	ew := csv.NewWriter(evaluation)
	if err = tw.Write(header); err != nil {
		return 0, 0, errors.Wrap(err, "writing training header")
	}
	if err = ew.Write(header); err != nil {
		return 0, 0, errors.Wrap(err, "writing evaluation header")
	}
	var trained, evaluated int
	err = readRows(r, func(line int, row []string) (bool, error) {
		if dataset.ForEvaluation(line, every) {
			evaluated++
			return true, errors.Wrapf(ew.Write(row), "writing line %d to evaluation set", line)
		}
		trained++
		return true, errors.Wrapf(tw.Write(row), "writing line %d to training set", line)
	})
	if err != nil {
		return trained, evaluated, err
	}
	tw.Flush()
	if err = tw.Error(); err != nil {
		return trained, evaluated, errors.Wrap(err, "flushing training set")
	}
	ew.Flush()
	return trained, evaluated, errors.Wrap(ew.Error(), "flushing evaluation set")
}
