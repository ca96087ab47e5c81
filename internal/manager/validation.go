package manager

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shubh-37/social-manager/internal/models"
)

const (
	msgInvalidURL         = "Please enter a valid business website URL."
	msgNotEnoughPosts     = "Not enough posts to schedule for chosen days/frequency!"
	msgFrequencyTooHigh   = "Post frequency cannot exceed number of preferred days."
	msgFrequencyTooLow    = "Post frequency must be at least 1."
	msgUnknownDay         = "Preferred days must be one of Mon, Tue, Wed, Thu, Fri, Sat, Sun."
	msgPostCountTooLow    = "Number of posts must be at least 1."
	msgUnknownPostType    = "Unknown post type."
	msgConnectFirst       = "Connect your Facebook page first."
	msgProfileFailed      = "Failed to fetch profile"
	msgIndustryMissing    = "Industry info not found in business profile"
	msgNewsFailed         = "Failed to fetch industry news"
	msgGenerateFailed     = "Failed to generate posts"
	msgScheduleFailed     = "Failed to generate schedule."
	msgScheduleLoad       = "Failed to load schedule."
	msgUpdateFailed       = "Failed to update post."
	msgDeleteFailed       = "Failed to delete post."
	msgResetFailed        = "Failed to reset schedule."
	msgPublishFailed      = "Publish failed"
	msgConnectFailed      = "Unknown error"
	msgPublishErrorPrefix = "Publish error: "
)

func validateBusinessURL(raw string) error {
	return validation.Validate(strings.TrimSpace(raw),
		validation.Required.Error(msgInvalidURL),
	)
}

func validatePreferences(prefs models.GenerationPreferences) error {
	postTypes := make([]interface{}, 0, len(models.PostTypes))
	for _, pt := range models.PostTypes {
		postTypes = append(postTypes, pt)
	}

	if err := validation.Validate(prefs.Count,
		validation.Required.Error(msgPostCountTooLow),
		validation.Min(1).Error(msgPostCountTooLow),
	); err != nil {
		return err
	}
	return validation.Validate(prefs.PostType, validation.In(postTypes...).Error(msgUnknownPostType))
}

// validateScheduleRequest checks the local preconditions of schedule
// creation in the order the user sees them.
func validateScheduleRequest(draftCount, frequency int, days []models.Weekday) error {
	if err := validation.Validate(frequency,
		validation.Required.Error(msgFrequencyTooLow),
		validation.Min(1).Error(msgFrequencyTooLow),
		validation.Max(draftCount).Error(msgNotEnoughPosts),
		validation.Max(len(days)).Error(msgFrequencyTooHigh),
	); err != nil {
		return err
	}

	allowed := make([]interface{}, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		allowed = append(allowed, day)
	}
	for _, day := range days {
		if err := validation.Validate(day,
			validation.Required.Error(msgUnknownDay),
			validation.In(allowed...).Error(msgUnknownDay),
		); err != nil {
			return err
		}
	}
	return nil
}

func validateDay(day models.Weekday) error {
	if !day.Valid() {
		return validation.NewError("validation_weekday", fmt.Sprintf("Unknown day %q.", day))
	}
	return nil
}
