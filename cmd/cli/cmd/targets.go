package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/westat/peregrine/pkg/objectstorage"
	"github.com/westat/peregrine/pkg/web"
)

func init() {
	rootCmd.AddCommand(targetsCmd)
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Lists the S3 objects the crawler will catalog",
	Long: `Reads the crawler's S3 targets from Glue and lists every object under each of them,
which is what the next crawl will scan.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		awsCfg, err := awsConfig(cmd.Context())
		if err != nil {
			return err
		}
		return listTargets(cmd.Context(), cmd.OutOrStdout(), newDescriber(awsCfg), objectstorage.NewAwsS3ObjectStore(awsCfg))
	},
}

func listTargets(ctx context.Context, w io.Writer, describer web.Describer, store objectstorage.ObjectStore) error {
	status, err := describer.Describe(ctx)
	if err != nil {
		return err
	}
	if len(status.Targets) == 0 {
		fmt.Fprintf(w, "Crawler %s has no S3 targets\n", status.Name)
		return nil
	}

	for _, target := range status.Targets {
		paths, err := store.ListObjects(ctx, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "# %s (%d objects)\n", target, len(paths))
		for _, p := range paths {
			fmt.Fprintln(w, p)
		}
	}
	return nil
}
