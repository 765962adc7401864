package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/lps-ufrj-br/pvectl/internal/imagestore"
)

// newImageStore builds the S3-backed image catalog - can be replaced in tests.
var newImageStore = func(ctx context.Context, opts Options) (imageStore, error) {
	cfg, err := loadConfigFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return imagestore.New(ctx, cfg.Images.S3)
}

// imageStore is the slice of imagestore.Store the handlers use.
type imageStore interface {
	List(ctx context.Context) ([]imagestore.Image, error)
	Upload(ctx context.Context, key, localPath string) error
}

// ImageList prints the template image catalog.
func ImageList(ctx context.Context, opts Options) error {
	store, err := newImageStore(ctx, opts)
	if err != nil {
		return err
	}
	images, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}
	if len(images) == 0 {
		fmt.Println("no images in catalog")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tSIZE\tLAST MODIFIED")
	for _, img := range images {
		fmt.Fprintf(w, "%s\t%d\t%s\n", img.Key, img.Size, img.LastModified.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// ImageUpload stores a local image file in the catalog under key.
func ImageUpload(ctx context.Context, opts Options, key, file string) error {
	store, err := newImageStore(ctx, opts)
	if err != nil {
		return err
	}
	if err := store.Upload(ctx, key, file); err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}
	log.Printf("image %s uploaded", key)
	return nil
}
