package fanvue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Audience values accepted by the posts endpoint.
const (
	AudienceEveryone    = "everyone"
	AudienceFollowers   = "followers-and-subscribers"
	AudienceSubscribers = "subscribers-only"
)

var audienceLabels = map[string]string{
	// Labels from the original UI
	"Wszyscy (publiczny)":        AudienceEveryone,
	"Obserwujacy i subskrybenci": AudienceFollowers,
	"Tylko subskrybenci":         AudienceSubscribers,
	// Canonical API values pass through
	AudienceEveryone:    AudienceEveryone,
	AudienceFollowers:   AudienceFollowers,
	AudienceSubscribers: AudienceSubscribers,
}

// MapAudience translates a visibility label to the API enum. Unrecognized
// labels fall back to followers-and-subscribers.
func MapAudience(label string) string {
	if mapped, ok := audienceLabels[label]; ok {
		return mapped
	}
	return AudienceFollowers
}

// Publisher builds and submits post-creation requests.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher on top of the API client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PostRequest describes a post to publish. MediaUUID and ScheduledAt are
// optional; pure-text posts are allowed. ScheduledAt is an ISO-8601
// timestamp passed through verbatim, the server owns its validation.
type PostRequest struct {
	Caption     string
	MediaUUID   string
	Audience    string
	ScheduledAt string
}

// PostResult is the platform's handle for a created post.
type PostResult struct {
	PostID string
}

type createPostRequest struct {
	Text        string   `json:"text"`
	Audience    string   `json:"audience"`
	MediaUUIDs  []string `json:"mediaUuids,omitempty"`
	ScheduledAt string   `json:"scheduledAt,omitempty"`
}

type createPostResponse struct {
	UUID string `json:"uuid"`
}

// Publish submits the post. Preconditions are checked in order before any
// network call: authenticated, account resolved, caption non-empty after
// trimming.
func (p *Publisher) Publish(ctx context.Context, req PostRequest) (*PostResult, error) {
	if p.client.creds.AccessToken() == "" {
		return nil, ErrUnauthenticated
	}
	accountUUID := p.client.creds.AccountUUID()
	if accountUUID == "" {
		return nil, &ValidationError{Field: "account", Reason: "no creator account resolved"}
	}
	caption := strings.TrimSpace(req.Caption)
	if caption == "" {
		return nil, &ValidationError{Field: "caption", Reason: "caption is empty"}
	}

	postBody := createPostRequest{
		Text:     caption,
		Audience: MapAudience(req.Audience),
	}
	if req.MediaUUID != "" {
		postBody.MediaUUIDs = []string{req.MediaUUID}
	}
	if req.ScheduledAt != "" {
		postBody.ScheduledAt = req.ScheduledAt
	}

	body, err := p.client.Do(ctx, http.MethodPost, "/creators/"+accountUUID+"/posts", postBody)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	var created createPostResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("parse post response: %w", err)
	}

	return &PostResult{PostID: created.UUID}, nil
}

// ListPosts returns the creator's recent posts as raw JSON. The history
// listing is a pass-through; nothing is decoded beyond transport errors.
func (p *Publisher) ListPosts(ctx context.Context, limit int) (json.RawMessage, error) {
	if p.client.creds.AccessToken() == "" {
		return nil, ErrUnauthenticated
	}
	accountUUID := p.client.creds.AccountUUID()
	if accountUUID == "" {
		return nil, &ValidationError{Field: "account", Reason: "no creator account resolved"}
	}

	path := fmt.Sprintf("/creators/%s/posts?limit=%d", accountUUID, limit)
	body, err := p.client.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return json.RawMessage(body), nil
}
