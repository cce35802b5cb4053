package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/ravichandra178/mynitrends/internal/models"
)

type PostGeneration struct {
	TrendID string `json:"trendId"`
	Topic   string `json:"topic"`
}

func (p PostGeneration) Validate() error {
	return v.ValidateStruct(&p,
		v.Field(&p.TrendID, is.UUID),
		v.Field(&p.Topic, v.When(p.TrendID == "", v.Required.Error("topic or trendId is required"))),
	)
}

// scheduledTimeLayouts are tried in order. The last one is what an HTML
// datetime-local input submits.
var scheduledTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var errEmptyContent = errors.New("content cannot be empty")

// PostUpdate is the body of a partial post update. Fields absent from the JSON
// document are left untouched; "scheduled_time": null clears the schedule.
type PostUpdate struct {
	Content          *string
	ScheduledTime    *time.Time
	ScheduledTimeSet bool
}

func (p *PostUpdate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if content, ok := raw["content"]; ok {
		if err := json.Unmarshal(content, &p.Content); err != nil {
			return fmt.Errorf("content: %w", err)
		}
	}

	scheduled, ok := raw["scheduled_time"]
	if !ok {
		return nil
	}
	p.ScheduledTimeSet = true

	var value *string
	if err := json.Unmarshal(scheduled, &value); err != nil {
		return fmt.Errorf("scheduled_time: %w", err)
	}
	if value == nil || strings.TrimSpace(*value) == "" {
		p.ScheduledTime = nil
		return nil
	}

	t, err := parseScheduledTime(strings.TrimSpace(*value))
	if err != nil {
		return err
	}
	p.ScheduledTime = &t
	return nil
}

func parseScheduledTime(value string) (time.Time, error) {
	for _, layout := range scheduledTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid scheduled_time %q", value)
}

func (p PostUpdate) Validate() error {
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return errEmptyContent
	}
	return nil
}

func (p PostUpdate) ToModel() models.PostUpdate {
	update := models.PostUpdate{
		ScheduledTime:    p.ScheduledTime,
		ScheduledTimeSet: p.ScheduledTimeSet,
	}
	if p.Content != nil {
		content := strings.TrimSpace(*p.Content)
		update.Content = &content
	}
	return update
}
