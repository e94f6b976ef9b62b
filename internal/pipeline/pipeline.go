// Package pipeline composes the upload orchestrator and the post publisher
// into one end-to-end operation.
package pipeline

import (
	"context"
	"fmt"

	"github.com/abdulachik/fanpost/internal/fanvue"
)

// Milestone marks a stage boundary in an upload-and-publish run.
type Milestone string

const (
	UploadStarted   Milestone = "upload-started"
	UploadComplete  Milestone = "upload-complete"
	PublishComplete Milestone = "publish-complete"
)

// Observer receives progress milestones during a run. Implementations must
// not block; the run is strictly sequential.
type Observer interface {
	Progress(m Milestone)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Milestone)

// Progress implements Observer.
func (f ObserverFunc) Progress(m Milestone) { f(m) }

var noopObserver Observer = ObserverFunc(func(Milestone) {})

// Pipeline runs upload-then-publish as one logical operation.
type Pipeline struct {
	uploader  *fanvue.Uploader
	publisher *fanvue.Publisher
}

// New creates a pipeline.
func New(uploader *fanvue.Uploader, publisher *fanvue.Publisher) *Pipeline {
	return &Pipeline{uploader: uploader, publisher: publisher}
}

// Request describes one run. FilePath may be empty for a pure-text post.
type Request struct {
	FilePath    string
	Caption     string
	Audience    string
	ScheduledAt string
}

// Result is the outcome of a successful run.
type Result struct {
	MediaUUID string
	PostID    string
}

// Run uploads the file (when one is given) and publishes the post. A failed
// upload aborts the run before the publisher is ever called, so a broken
// upload can never produce an orphan post. The reverse does not hold: if
// publishing fails after a completed upload, the media object stays on the
// platform with no cleanup path.
func (p *Pipeline) Run(ctx context.Context, req Request, obs Observer) (*Result, error) {
	if obs == nil {
		obs = noopObserver
	}

	var mediaUUID string
	if req.FilePath != "" {
		obs.Progress(UploadStarted)

		uuid, err := p.uploader.Upload(ctx, req.FilePath)
		if err != nil {
			return nil, fmt.Errorf("upload media: %w", err)
		}
		mediaUUID = uuid

		obs.Progress(UploadComplete)
	}

	post, err := p.publisher.Publish(ctx, fanvue.PostRequest{
		Caption:     req.Caption,
		MediaUUID:   mediaUUID,
		Audience:    req.Audience,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		return nil, fmt.Errorf("publish post: %w", err)
	}

	obs.Progress(PublishComplete)

	return &Result{MediaUUID: mediaUUID, PostID: post.PostID}, nil
}
