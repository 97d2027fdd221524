package trigger

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Operation names the trigger in failure messages.
const Operation = "start_a_crawler"

// CrawlerRunningCode is the Glue error code for a start request against a running crawler.
const CrawlerRunningCode = "CrawlerRunningException"

// CrawlerNotFoundCode is the Glue error code for an unknown crawler.
const CrawlerNotFoundCode = "EntityNotFoundException"

// ErrAlreadyRunning matches (via errors.Is) a TriggerFailure caused by a crawler that is already running.
var ErrAlreadyRunning = errors.New("crawler already running")

// Kind classifies a TriggerFailure.
type Kind int

const (
	// KindClientRejected means Glue answered with a recognized API error.
	KindClientRejected Kind = iota + 1
	// KindUnexpected covers transport failures, bad responses and panics.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindClientRejected:
		return "aws client error"
	case KindUnexpected:
		return "Unexpected error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TriggerFailure is returned by Invoker.Handle for every failed start request.
type TriggerFailure struct {
	Kind Kind
	// Code is the API error code, set for KindClientRejected only.
	Code string
	Err  error
}

func (e *TriggerFailure) Error() string {
	return fmt.Sprintf("%s in %s: %s", e.Kind, Operation, e.Err)
}

func (e *TriggerFailure) Unwrap() error {
	return e.Err
}

// Is reports ErrAlreadyRunning for client rejections carrying the running-crawler code.
func (e *TriggerFailure) Is(target error) bool {
	return target == ErrAlreadyRunning && e.Kind == KindClientRejected && e.Code == CrawlerRunningCode
}

// translate maps any error returned by the Glue client onto a TriggerFailure.
func translate(err error) *TriggerFailure {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &TriggerFailure{Kind: KindClientRejected, Code: apiErr.ErrorCode(), Err: err}
	}
	return &TriggerFailure{Kind: KindUnexpected, Err: err}
}
