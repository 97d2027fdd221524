// Command lambda is the AWS Lambda entry point that starts the Glue crawler.
// It is wired to the S3 upload notification; the event itself is not inspected.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/sirupsen/logrus"

	"github.com/westat/peregrine/pkg/config"
	"github.com/westat/peregrine/pkg/logging"
	"github.com/westat/peregrine/pkg/session"
	"github.com/westat/peregrine/pkg/trigger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if err := logging.Configure(cfg.Log); err != nil {
		logrus.WithError(err).Fatal("configure logging")
	}

	awsCfg, err := session.Load(context.Background(), cfg.AWS)
	if err != nil {
		logrus.WithError(err).Fatal("load aws session")
	}

	invoker := trigger.NewInvoker(
		glue.NewFromConfig(awsCfg),
		trigger.WithCrawlerName(cfg.Crawler.Name),
		trigger.WithAlreadyRunningPolicy(cfg.Policy()),
	)
	logrus.WithField("crawler", invoker.CrawlerName()).Info("Loading function")
	lambda.Start(invoker.Handle)
}
