package main

import (
	"context"
	"fmt"

	"github.com/abdulachik/fanpost/internal/app"
	"github.com/abdulachik/fanpost/internal/config"
	"github.com/abdulachik/fanpost/internal/fanvue"
	"github.com/abdulachik/fanpost/internal/generator"
	"github.com/spf13/cobra"
)

var (
	captionFile   string
	captionStyle  string
	captionPrompt string
)

var captionCmd = &cobra.Command{
	Use:   "caption",
	Short: "Generate a caption for a media file",
	Long: `Generate an AI caption without posting anything. Image files are sent
to the model; for videos the caption is generated from the style alone.

Styles: ` + fmt.Sprint(generator.CaptionStyles),
	RunE: runCaption,
}

func init() {
	captionCmd.Flags().StringVar(&captionFile, "file", "", "Media file (omit to caption a video-style post)")
	captionCmd.Flags().StringVar(&captionStyle, "style", generator.StyleCasualFun, "Caption style preset")
	captionCmd.Flags().StringVar(&captionPrompt, "prompt", "", "Custom prompt for --style Custom")
	rootCmd.AddCommand(captionCmd)
}

func runCaption(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForGeneration(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	var caption string
	if captionFile != "" && fanvue.MediaTypeFor(captionFile) == "image" {
		caption, err = a.Generator.ImageCaption(ctx, captionFile, captionStyle, captionPrompt)
	} else {
		caption, err = a.Generator.VideoCaption(ctx, captionStyle, captionPrompt)
	}
	if err != nil {
		return err
	}

	fmt.Println(caption)
	return nil
}
