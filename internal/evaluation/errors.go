package evaluation

import "fmt"

// TranscriptionError means stage one failed; no evaluation call was made.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// EvaluationError means the evaluation call failed or its reply was not a valid record.
// Raw holds the unparsed model reply when there was one.
type EvaluationError struct {
	Raw string
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed: %v", e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
