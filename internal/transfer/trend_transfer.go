package transfer

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/ravichandra178/mynitrends/internal/models"
)

type TrendCreation struct {
	Topic  string `json:"topic"`
	Source string `json:"source"`
}

func (t TrendCreation) Validate() error {
	return v.ValidateStruct(&t,
		v.Field(&t.Topic, v.Required.Error("topic is required"), v.Length(1, 200)),
		v.Field(&t.Source, v.Length(0, 50)),
	)
}

// GeneratedTrends is the result of a trend generation run.
type GeneratedTrends struct {
	Trends []*models.Trend `json:"trends"`
	Source string          `json:"source"`
	Count  int             `json:"count"`
}
