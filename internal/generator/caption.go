package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageCaption generates a caption for an image file. The image is sent
// inline as a low-detail base64 data URL.
func (c *Client) ImageCaption(ctx context.Context, imagePath, style, customPrompt string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	mimeType, ok := mimeTypes[strings.ToLower(filepath.Ext(imagePath))]
	if !ok {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	caption, err := c.CompleteVision(ctx, ImageCaptionPrompt(style, customPrompt), dataURL, captionMaxTokens)
	if err != nil {
		return "", fmt.Errorf("generate caption: %w", err)
	}

	return strings.TrimSpace(caption), nil
}

// VideoCaption generates a caption for a video post. Videos are not sent to
// the model; the prompt alone describes the post.
func (c *Client) VideoCaption(ctx context.Context, style, customPrompt string) (string, error) {
	caption, err := c.Complete(ctx, VideoCaptionPrompt(style, customPrompt), captionMaxTokens, 0)
	if err != nil {
		return "", fmt.Errorf("generate caption: %w", err)
	}

	return strings.TrimSpace(caption), nil
}
