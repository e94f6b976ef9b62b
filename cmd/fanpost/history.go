package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/abdulachik/fanpost/internal/app"
	"github.com/abdulachik/fanpost/internal/config"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent posts",
	Long:  `Fetch the creator's most recent posts from Fanvue and print them as JSON.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of posts to fetch")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	if !a.Session.IsAuthenticated() {
		return fmt.Errorf("not logged in; run 'fanpost login' first")
	}

	posts, err := a.Publisher.ListPosts(ctx, historyLimit)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, posts, "", "  "); err != nil {
		// Not valid JSON? Print it as-is.
		fmt.Println(string(posts))
		return nil
	}
	fmt.Println(pretty.String())

	return nil
}
