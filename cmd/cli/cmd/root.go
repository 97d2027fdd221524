/*
Copyright © 2026 Westat

*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/spf13/cobra"

	"github.com/westat/peregrine/pkg/config"
	"github.com/westat/peregrine/pkg/crawler"
	"github.com/westat/peregrine/pkg/logging"
	"github.com/westat/peregrine/pkg/session"
	"github.com/westat/peregrine/pkg/trigger"
)

var (
	cfgFile string
	conf    config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "peregrine",
	Short: "Starts and inspects the Peregrine Glue crawler",
	Long: `peregrine triggers the Glue crawler that catalogs files uploaded to the Peregrine bucket.

The same trigger runs as an AWS Lambda function on every upload notification. This CLI
starts it by hand, reports the crawler's state, lists the objects it will crawl, and can
serve the trigger over HTTP. AWS credentials come from the usual environment chain.
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json, toml or .env); defaults and PEREGRINE_* variables apply without one")
}

func initConfig() {
	var err error
	conf, err = config.Load(cfgFile)
	if err != nil {
		cobra.CheckErr(fmt.Errorf("error reading config: %w", err))
	}
	if err := logging.Configure(conf.Log); err != nil {
		cobra.CheckErr(fmt.Errorf("error configuring logging: %w", err))
	}
}

func awsConfig(ctx context.Context) (aws.Config, error) {
	return session.Load(ctx, conf.AWS)
}

func newInvoker(awsCfg aws.Config) *trigger.Invoker {
	return trigger.NewInvoker(
		glue.NewFromConfig(awsCfg),
		trigger.WithCrawlerName(conf.Crawler.Name),
		trigger.WithAlreadyRunningPolicy(conf.Policy()),
	)
}

func newDescriber(awsCfg aws.Config) *crawler.Describer {
	return crawler.NewDescriber(glue.NewFromConfig(awsCfg), conf.Crawler.Name)
}
