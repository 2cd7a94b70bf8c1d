// Command catalogue builds the site's product catalogue from the dimensions
// workbook and optionally publishes it to object storage.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msquare-lighting/msquare-api/config"
	"github.com/msquare-lighting/msquare-api/internal/catalogue"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"github.com/msquare-lighting/msquare-api/pkg/storage"
)

type generateOptions struct {
	workbook string
	images   string
	out      string
	extract  bool
	publish  bool
}

func newRootCmd() *cobra.Command {
	var level string

	root := &cobra.Command{
		Use:           "catalogue",
		Short:         "Build the M-Square product catalogue",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(logger.Config{
				Level:       level,
				Environment: "development",
				ServiceName: "catalogue",
			})
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newGenerateCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Convert the dimensions workbook into catalogue.json",
		Long: `Reads the first sheet of the workbook, writes <out>/catalogue.json and
copies product images into <out>/catalogue-images. With --publish both are
uploaded to the bucket configured by the STORAGE_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.workbook, "xlsx", "docs/DIMENSION.xlsx", "Path to the dimensions workbook")
	cmd.Flags().StringVar(&opts.images, "images", "docs/images", "Directory of product images to copy")
	cmd.Flags().StringVar(&opts.out, "out", "client/public", "Output directory")
	cmd.Flags().BoolVar(&opts.extract, "extract-embedded", false, "Save pictures embedded in the workbook for models without an image name")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "Upload the result to object storage")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx := cmd.Context()

	var uploader catalogue.Uploader
	if opts.publish {
		// Fail before doing any work when publishing cannot succeed
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cfg.StorageConfigured() {
			return fmt.Errorf("--publish needs STORAGE_ACCESS_KEY_ID, STORAGE_SECRET_ACCESS_KEY and STORAGE_BUCKET_NAME")
		}
		client, err := storage.NewClient(storage.Config{
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			BucketName:      cfg.Storage.BucketName,
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			Prefix:          cfg.Storage.Prefix,
		})
		if err != nil {
			return err
		}
		uploader = client
	}

	res, err := catalogue.Generate(ctx, catalogue.Options{
		WorkbookPath:    opts.workbook,
		ImagesDir:       opts.images,
		OutDir:          opts.out,
		ExtractEmbedded: opts.extract,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d models to %s\n", res.Items, res.JSONPath)

	if uploader == nil {
		return nil
	}
	n, err := catalogue.Publish(ctx, uploader, opts.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published %d objects\n", n)
	return nil
}

func main() {
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
