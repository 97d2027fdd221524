// Package trigger starts the Glue crawler on behalf of an invocation host.
//
// The trigger payload is never inspected: every call issues the same
// StartCrawler request for the crawler the Invoker was built with.
package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/sirupsen/logrus"

	"github.com/westat/peregrine/pkg/logging/timing"
	"github.com/westat/peregrine/pkg/metrics"
)

// DefaultCrawlerName is the crawler started when no other name is configured.
const DefaultCrawlerName = "peregrineCrawler"

// StartCrawlerAPI is the slice of the Glue client used by the Invoker. *glue.Client satisfies it.
type StartCrawlerAPI interface {
	StartCrawler(ctx context.Context, params *glue.StartCrawlerInput, optFns ...func(*glue.Options)) (*glue.StartCrawlerOutput, error)
}

// AlreadyRunningPolicy decides how a CrawlerRunningException is reported.
type AlreadyRunningPolicy string

const (
	// PolicyFail surfaces the exception as a KindClientRejected failure.
	PolicyFail AlreadyRunningPolicy = "fail"
	// PolicyIgnore logs the exception and returns an empty acknowledgment.
	PolicyIgnore AlreadyRunningPolicy = "ignore"
)

// ParseAlreadyRunningPolicy validates a policy name from configuration.
func ParseAlreadyRunningPolicy(s string) (AlreadyRunningPolicy, error) {
	switch p := AlreadyRunningPolicy(s); p {
	case PolicyFail, PolicyIgnore:
		return p, nil
	default:
		return "", fmt.Errorf("unknown already-running policy %q", s)
	}
}

// InvokerOption customizes an Invoker built by NewInvoker.
type InvokerOption = func(*Invoker)

// WithCrawlerName overrides DefaultCrawlerName.
func WithCrawlerName(name string) InvokerOption {
	return func(inv *Invoker) {
		inv.crawlerName = name
	}
}

// WithAlreadyRunningPolicy sets how a crawler that is already running is reported.
func WithAlreadyRunningPolicy(p AlreadyRunningPolicy) InvokerOption {
	return func(inv *Invoker) {
		inv.policy = p
	}
}

// WithLogger sets the logger Handle writes to.
func WithLogger(logger logrus.FieldLogger) InvokerOption {
	return func(inv *Invoker) {
		inv.logger = logger
	}
}

// Invoker asks Glue to start one fixed crawler. It holds no mutable state and is safe for concurrent use.
type Invoker struct {
	api         StartCrawlerAPI
	crawlerName string
	policy      AlreadyRunningPolicy
	logger      logrus.FieldLogger
}

// NewInvoker wraps a Glue client. Without options it starts DefaultCrawlerName,
// fails on a running crawler (PolicyFail) and logs to the logrus standard logger.
func NewInvoker(api StartCrawlerAPI, opts ...InvokerOption) *Invoker {
	metrics.Init()
	inv := &Invoker{
		api:         api,
		crawlerName: DefaultCrawlerName,
		policy:      PolicyFail,
		logger:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// CrawlerName returns the crawler every Handle call starts.
func (inv *Invoker) CrawlerName() string {
	return inv.crawlerName
}

// Handle requests a start of the crawler and returns Glue's acknowledgment unmodified.
// The trigger is accepted for the host's benefit only. Failures are always *TriggerFailure.
func (inv *Invoker) Handle(ctx context.Context, trigger json.RawMessage) (*glue.StartCrawlerOutput, error) {
	log := inv.logger.WithField("crawler", inv.crawlerName)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.WithField("aws_request_id", lc.AwsRequestID)
	}

	start := time.Now()
	done := timing.Timeit(log, "StartCrawler")
	out, err := inv.start(ctx)
	done()

	if err == nil {
		metrics.ObserveStart(inv.crawlerName, metrics.OutcomeStarted, time.Since(start))
		log.Info("crawler start accepted")
		return out, nil
	}

	failure := translate(err)
	if errors.Is(failure, ErrAlreadyRunning) {
		metrics.ObserveStart(inv.crawlerName, metrics.OutcomeAlreadyRunning, time.Since(start))
		if inv.policy == PolicyIgnore {
			log.WithError(err).Warn("crawler already running, start request ignored")
			return &glue.StartCrawlerOutput{}, nil
		}
	} else if failure.Kind == KindClientRejected {
		metrics.ObserveStart(inv.crawlerName, metrics.OutcomeClientError, time.Since(start))
	} else {
		metrics.ObserveStart(inv.crawlerName, metrics.OutcomeUnexpectedError, time.Since(start))
	}
	log.WithError(failure).WithField("kind", failure.Kind.String()).Error("crawler start failed")
	return nil, failure
}

// start performs the single remote call. Panics in the client and empty responses become plain errors.
func (inv *Invoker) start(ctx context.Context) (out *glue.StartCrawlerOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("panic in glue client: %v", r)
		}
	}()
	out, err = inv.api.StartCrawler(ctx, &glue.StartCrawlerInput{Name: aws.String(inv.crawlerName)})
	if err == nil && out == nil {
		err = errors.New("glue returned an empty StartCrawler response")
	}
	return out, err
}
