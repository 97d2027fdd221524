package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/westat/peregrine/pkg/crawler"
)

var statusOutput string

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "yaml", "output format: yaml or json")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the crawler's state and last crawl",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		awsCfg, err := awsConfig(cmd.Context())
		if err != nil {
			return err
		}
		status, err := newDescriber(awsCfg).Describe(cmd.Context())
		if err != nil {
			return err
		}
		return writeStatus(cmd.OutOrStdout(), status, statusOutput)
	},
}

func writeStatus(w io.Writer, status crawler.Status, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml":
		data, err = yaml.Marshal(status)
	case "json":
		data, err = json.MarshalIndent(status, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
