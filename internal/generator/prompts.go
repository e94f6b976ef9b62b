package generator

import (
	"fmt"
	"strings"
	"time"
)

// Caption style presets.
const (
	StyleSexyFlirty  = "Sexy & Flirty"
	StyleCasualFun   = "Casual & Fun"
	StyleMysterious  = "Mysterious"
	StylePromotional = "Promotional"
	StyleCustom      = "Custom"
)

// CaptionStyles lists the presets offered to the user.
var CaptionStyles = []string{StyleSexyFlirty, StyleCasualFun, StyleMysterious, StylePromotional, StyleCustom}

var imageStylePrompts = map[string]string{
	StyleSexyFlirty:  "Write a flirty, teasing caption for this photo. Be playful and seductive but tasteful. Use 1-2 emojis. Keep under 200 characters. Write in English.",
	StyleCasualFun:   "Write a casual, fun caption for this photo. Be friendly and approachable. Use emojis. Keep under 200 characters. Write in English.",
	StyleMysterious:  "Write a mysterious, intriguing caption for this photo. Create curiosity. Use 1 emoji max. Keep under 200 characters. Write in English.",
	StylePromotional: "Write a promotional caption encouraging followers to subscribe for more exclusive content. Mention 'link in bio' or similar. Use emojis. Keep under 250 characters. Write in English.",
}

var videoStylePrompts = map[string]string{
	StyleSexyFlirty:  "Write a flirty, teasing caption for a video post by a content creator. Be playful and seductive but tasteful. Use 1-2 emojis. Keep under 200 characters. Write in English.",
	StyleCasualFun:   "Write a casual, fun caption for a video post. Be friendly and approachable. Use emojis. Keep under 200 characters. Write in English.",
	StyleMysterious:  "Write a mysterious, intriguing caption for a video. Create curiosity about what's in the video. Use 1 emoji max. Keep under 200 characters. Write in English.",
	StylePromotional: "Write a promotional caption for a video encouraging followers to subscribe for more exclusive video content. Use emojis. Keep under 250 characters. Write in English.",
}

const defaultImagePrompt = "Write an engaging social media caption for this photo. Keep under 200 characters."
const defaultVideoPrompt = "Write an engaging social media caption for a video post. Keep under 200 characters."

// ImageCaptionPrompt resolves the prompt for an image caption request.
func ImageCaptionPrompt(style, customPrompt string) string {
	if style == StyleCustom {
		if customPrompt != "" {
			return customPrompt
		}
		return defaultImagePrompt
	}
	if prompt, ok := imageStylePrompts[style]; ok {
		return prompt
	}
	return imageStylePrompts[StyleCasualFun]
}

// VideoCaptionPrompt resolves the prompt for a video caption request.
func VideoCaptionPrompt(style, customPrompt string) string {
	if style == StyleCustom {
		if customPrompt != "" {
			return customPrompt
		}
		return defaultVideoPrompt
	}
	if prompt, ok := videoStylePrompts[style]; ok {
		return prompt
	}
	return videoStylePrompts[StyleCasualFun]
}

// PostTypes are the content types mixed through a generated plan.
var PostTypes = []string{"Photo", "Video", "Selfie", "Behind the scenes", "PPV exclusive", "Text/Story", "Poll/Q&A", "Carousel"}

// seasonalThemes maps month number to themes woven into a plan.
var seasonalThemes = map[time.Month][]string{
	time.January:   {"New Year energy", "Winter cozy vibes", "Fresh start goals"},
	time.February:  {"Valentine's Day", "Self-love", "Galentine's"},
	time.March:     {"Spring awakening", "New beginnings", "Women's day"},
	time.April:     {"Easter vibes", "Spring fashion", "Outdoor shoots"},
	time.May:       {"Summer teaser", "Fitness motivation", "Beach prep"},
	time.June:      {"Summer vibes", "Pool day", "Travel content"},
	time.July:      {"Hot summer", "Vacation mode", "Beach content"},
	time.August:    {"Late summer", "Golden hour shoots", "Back to routine"},
	time.September: {"Fall fashion", "Cozy season starts", "New chapter"},
	time.October:   {"Halloween", "Costume/cosplay", "Spooky & sexy"},
	time.November:  {"Thanksgiving", "Gratitude posts", "Black Friday promo"},
	time.December:  {"Christmas", "Gift guides/wishlists", "New Year countdown"},
}

// PlanPrompt builds the content-plan prompt for the model.
func PlanPrompt(niche string, days int, includeSeasonal, includePPV bool, now time.Time) string {
	seasonalPart := ""
	if includeSeasonal {
		themes := seasonalThemes[now.Month()]
		seasonalPart = fmt.Sprintf("\nCurrent month: %s - incorporate these seasonal themes: %s",
			now.Month().String(), strings.Join(themes, ", "))
	}

	ppvPart := "\nDo NOT include any PPV exclusive posts."
	if includePPV {
		ppvPart = "\nInclude 2-3 PPV exclusive content ideas spread across the plan. PPV posts should be premium, exclusive content that subscribers pay extra for."
	}

	postTypes := strings.Join(PostTypes, ", ")

	return fmt.Sprintf(`You are a content strategist for an adult content creator on Fanvue.

Niche/style: %s

Generate a %d-day content plan.%s%s

Mix these content types throughout the plan: %s
Ensure variety - don't repeat the same type on consecutive days.
Include at least one series idea (e.g. "7 days of...", "Behind the scenes week").

For each day provide:
- day: day number (1 to %d)
- type: one of [%s]
- idea: short description of the content idea (max 80 chars)
- caption_draft: a ready-to-use caption with emojis (max 200 chars)
- audience: one of [public, followers, subscribers]
- best_time: suggested posting time in HH:MM format (consider peak engagement hours)
- hashtags: 3-5 relevant hashtags as a string

Return ONLY a valid JSON array, no markdown formatting, no code blocks. Example format:
[{"day":1,"type":"Photo","idea":"...","caption_draft":"...","audience":"public","best_time":"19:00","hashtags":"#tag1 #tag2 #tag3"}]`,
		niche, days, seasonalPart, ppvPart, postTypes, days, postTypes)
}
