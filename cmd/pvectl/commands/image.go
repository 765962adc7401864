package commands

import (
	"github.com/spf13/cobra"

	"github.com/lps-ufrj-br/pvectl/cmd/pvectl/handlers"
)

// Image returns the image command group.
func Image(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage the template image catalog",
	}

	cmd.AddCommand(imageList(flags))
	cmd.AddCommand(imageUpload(flags))

	return cmd
}

func imageList(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List template images in the catalog bucket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ImageList(cmd.Context(), flags.options(""))
		},
	}
}

func imageUpload(flags *globalFlags) *cobra.Command {
	var key string
	var file string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a template image to the catalog bucket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ImageUpload(cmd.Context(), flags.options(""), key, file)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Object key to store the image under (required)")
	cmd.Flags().StringVar(&file, "file", "", "Local image file to upload (required)")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
