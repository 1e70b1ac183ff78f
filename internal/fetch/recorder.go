package fetch

import (
	"context"
	"errors"
	"time"
)

// Outcome of one fetch attempt, as stored in the journal.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeNetwork Outcome = "network"
	OutcomeServer  Outcome = "server"
	OutcomeParse   Outcome = "parse"
)

// Attempt describes a finished request. It never carries the body.
type Attempt struct {
	RequestID string
	Endpoint  string
	Status    int
	Outcome   Outcome
	Bytes     int
	Duration  time.Duration
	At        time.Time
}

// Recorder receives attempts from a Client.
type Recorder interface {
	RecordAttempt(ctx context.Context, a Attempt) error
}

func outcomeOf(err error) Outcome {
	var fe *FetchError
	switch {
	case err == nil:
		return OutcomeOK
	case !errors.As(err, &fe):
		return OutcomeNetwork
	case fe.Kind == ServerFailure:
		return OutcomeServer
	case fe.Kind == ParseFailure:
		return OutcomeParse
	default:
		return OutcomeNetwork
	}
}
