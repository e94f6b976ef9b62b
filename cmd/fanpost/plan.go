package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abdulachik/fanpost/internal/app"
	"github.com/abdulachik/fanpost/internal/config"
	"github.com/abdulachik/fanpost/internal/db"
	"github.com/abdulachik/fanpost/internal/generator"
	"github.com/spf13/cobra"
)

var (
	planNiche    string
	planDays     int
	planSeasonal bool
	planPPV      bool
	planExport   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a multi-day content plan",
	Long: `Generate an AI content plan for your niche, store it and optionally
export it to CSV. A plan entry's caption draft can later seed a post via
'fanpost post --plan-day N'.

Examples:
  fanpost plan --niche "glamour, lingerie" --days 14
  fanpost plan --niche fitness --days 7 --ppv=false --export`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planNiche, "niche", "", "Your niche or style (required)")
	planCmd.Flags().IntVar(&planDays, "days", 14, "Plan length in days (7-30)")
	planCmd.Flags().BoolVar(&planSeasonal, "seasonal", true, "Weave in seasonal themes for the current month")
	planCmd.Flags().BoolVar(&planPPV, "ppv", true, "Include PPV exclusive ideas")
	planCmd.Flags().BoolVar(&planExport, "export", false, "Export the plan to CSV")
	planCmd.MarkFlagRequired("niche")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	fmt.Println("Generating content plan...")
	ideas, err := a.Generator.GeneratePlan(ctx, generator.PlanRequest{
		Niche:           planNiche,
		Days:            planDays,
		IncludeSeasonal: planSeasonal,
		IncludePPV:      planPPV,
	})
	if err != nil {
		return err
	}

	for _, idea := range ideas {
		fmt.Printf("Day %2d  %-18s %s\n", idea.Day, idea.Type, idea.Idea)
		fmt.Printf("        %s  [%s, %s]\n", idea.CaptionDraft, idea.Audience, idea.BestTime)
		if idea.Hashtags != "" {
			fmt.Printf("        %s\n", idea.Hashtags)
		}
	}
	fmt.Printf("\nGenerated a %d-day plan.\n", len(ideas))

	ideasJSON, err := json.Marshal(ideas)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	id, err := a.Store.CreateContentPlan(ctx, db.CreateContentPlanParams{
		Niche:     planNiche,
		Days:      len(ideas),
		IdeasJSON: string(ideasJSON),
	})
	if err != nil {
		return fmt.Errorf("store plan: %w", err)
	}
	fmt.Printf("Stored as plan #%d.\n", id)

	if planExport {
		path, err := generator.ExportCSV(cfg.ExportDir, ideas, time.Now())
		if err != nil {
			return fmt.Errorf("export plan: %w", err)
		}
		fmt.Printf("Exported to %s\n", path)
	}

	return nil
}
