package dataset

// DefaultEvaluationEvery is the default period of rows held out for
// evaluation.
const DefaultEvaluationEvery = 4

/*
ForEvaluation takes the 1-based line number a row was read from and the
evaluation period and returns whether the row is held out for evaluation:
it is when the line number is a multiple of every. The header is line 1.
A period of 0 or less holds nothing out.
*/
func ForEvaluation(line, every int) bool {
	return every > 0 && line%every == 0
}
