package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/spf13/cobra"

	"github.com/westat/peregrine/pkg/web"
)

var eventFile string

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVar(&eventFile, "event", "", "JSON file passed through as the trigger payload, like a Lambda test event")
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Starts the crawler once",
	Long: `Sends a single StartCrawler request for the configured crawler, exactly as the
Lambda function does. Nothing is retried and completion is not awaited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		awsCfg, err := awsConfig(cmd.Context())
		if err != nil {
			return err
		}
		return runStart(cmd.Context(), cmd.OutOrStdout(), newInvoker(awsCfg), eventFile)
	},
}

// runStart passes the optional event file to the starter unread and reports Glue's request id.
func runStart(ctx context.Context, w io.Writer, starter web.Starter, eventFile string) error {
	var event json.RawMessage
	if eventFile != "" {
		data, err := os.ReadFile(eventFile)
		if err != nil {
			return fmt.Errorf("read event: %w", err)
		}
		event = data
	}

	out, err := starter.Handle(ctx, event)
	if err != nil {
		return err
	}

	requestID, _ := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata)
	fmt.Fprintf(w, "Started crawler %s (request id %q)\n", starter.CrawlerName(), requestID)
	return nil
}
