package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abdulachik/fanpost/internal/app"
	"github.com/abdulachik/fanpost/internal/config"
	"github.com/abdulachik/fanpost/internal/db"
	"github.com/abdulachik/fanpost/internal/fanvue"
	"github.com/abdulachik/fanpost/internal/generator"
	"github.com/abdulachik/fanpost/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	postFile     string
	postCaption  string
	postAudience string
	postSchedule string
	postStyle    string
	postPrompt   string
	postPlanDay  int
	postDryRun   bool
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Upload media and publish a post",
	Long: `Upload a local media file to Fanvue and publish it as a post.

The caption comes from --caption, from --plan-day (the caption draft of
that day in the latest stored content plan), or is generated with
--style when neither is given.

Examples:
  fanpost post --file photo.jpg --caption "Hello"
  fanpost post --file clip.mp4 --style "Casual & Fun"
  fanpost post --caption "Text-only post" --audience everyone
  fanpost post --file photo.jpg --plan-day 3 --dry-run`,
	RunE: runPost,
}

func init() {
	postCmd.Flags().StringVar(&postFile, "file", "", "Media file to upload (omit for a text-only post)")
	postCmd.Flags().StringVar(&postCaption, "caption", "", "Post caption")
	postCmd.Flags().StringVar(&postAudience, "audience", fanvue.AudienceFollowers, "Post audience (everyone, followers-and-subscribers, subscribers-only)")
	postCmd.Flags().StringVar(&postSchedule, "schedule", "", "Schedule the post (ISO-8601 timestamp, passed through verbatim)")
	postCmd.Flags().StringVar(&postStyle, "style", "", "Generate the caption with this AI style preset")
	postCmd.Flags().StringVar(&postPrompt, "prompt", "", "Custom prompt for --style Custom")
	postCmd.Flags().IntVar(&postPlanDay, "plan-day", 0, "Take the caption draft from this day of the latest content plan")
	postCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "Show what would be posted without posting")
	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if postStyle != "" && postCaption == "" {
		if err := cfg.ValidateForGeneration(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	if !a.Session.IsAuthenticated() {
		return fmt.Errorf("not logged in; run 'fanpost login' first")
	}

	caption, err := resolveCaption(ctx, a)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("=== Post Content ===")
	fmt.Println()
	fmt.Println(caption)
	fmt.Println()
	if postFile != "" {
		fmt.Printf("Media: %s (%s)\n", postFile, fanvue.MediaTypeFor(postFile))
	}
	fmt.Printf("Audience: %s\n", fanvue.MapAudience(postAudience))
	if postSchedule != "" {
		fmt.Printf("Scheduled: %s\n", postSchedule)
	}
	fmt.Println()

	if postDryRun {
		fmt.Println("=== DRY RUN - Not posting ===")
		return nil
	}

	result, err := a.Pipeline.Run(ctx, pipeline.Request{
		FilePath:    postFile,
		Caption:     caption,
		Audience:    postAudience,
		ScheduledAt: postSchedule,
	}, pipeline.ObserverFunc(printMilestone))
	if err != nil {
		return err
	}

	fmt.Printf("Post created!\nID: %s\n", result.PostID)

	// Record the post
	_, err = a.Store.CreatePublishedPost(ctx, db.CreatePublishedPostParams{
		PostUUID:    result.PostID,
		MediaUUID:   sql.NullString{String: result.MediaUUID, Valid: result.MediaUUID != ""},
		Caption:     strings.TrimSpace(caption),
		Audience:    fanvue.MapAudience(postAudience),
		ScheduledAt: sql.NullString{String: postSchedule, Valid: postSchedule != ""},
	})
	if err != nil {
		slog.Warn("failed to record post", "error", err)
	}

	return nil
}

// resolveCaption picks the caption source: explicit flag, stored plan day,
// or AI generation.
func resolveCaption(ctx context.Context, a *app.App) (string, error) {
	if postCaption != "" {
		return postCaption, nil
	}

	if postPlanDay > 0 {
		plan, err := a.Store.GetLatestContentPlan(ctx)
		if err != nil {
			return "", fmt.Errorf("no stored content plan; run 'fanpost plan' first")
		}
		var ideas []generator.Idea
		if err := json.Unmarshal([]byte(plan.IdeasJSON), &ideas); err != nil {
			return "", fmt.Errorf("parse stored plan: %w", err)
		}
		for _, idea := range ideas {
			if idea.Day == postPlanDay {
				return idea.CaptionDraft, nil
			}
		}
		return "", fmt.Errorf("no day %d in the latest plan (%d days)", postPlanDay, len(ideas))
	}

	if postStyle != "" {
		if a.Generator == nil {
			return "", fmt.Errorf("OPENAI_API_KEY is required to generate a caption")
		}
		if postFile != "" && fanvue.MediaTypeFor(postFile) == "image" {
			return a.Generator.ImageCaption(ctx, postFile, postStyle, postPrompt)
		}
		return a.Generator.VideoCaption(ctx, postStyle, postPrompt)
	}

	return "", fmt.Errorf("a caption is required: pass --caption, --plan-day or --style")
}

func printMilestone(m pipeline.Milestone) {
	switch m {
	case pipeline.UploadStarted:
		fmt.Println("Uploading media...")
	case pipeline.UploadComplete:
		fmt.Println("Upload complete. Creating post...")
	case pipeline.PublishComplete:
		fmt.Println("Done.")
	}
}
