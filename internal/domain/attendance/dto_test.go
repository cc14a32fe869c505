package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse/workpulse-backend-go/internal/pkg/validator"
)

func TestMarkRequestValidate(t *testing.T) {
	good := 37.1
	bad := 50.0
	score := 11
	mood := "ecstatic"

	assert.NoError(t, (&MarkRequest{Type: MarkTypeCheckIn}).Validate())
	assert.NoError(t, (&MarkRequest{Type: MarkTypeCheckOut, Health: &HealthReport{Temperature: &good}}).Validate())

	err := (&MarkRequest{Type: "clock-in"}).Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "type", errs[0].Field)

	assert.Error(t, (&MarkRequest{Type: MarkTypeCheckIn, Mood: &mood}).Validate())
	assert.Error(t, (&MarkRequest{Type: MarkTypeCheckOut, Health: &HealthReport{Temperature: &bad}}).Validate())
	assert.Error(t, (&MarkRequest{Type: MarkTypeCheckOut, Productivity: &Productivity{Score: &score}}).Validate())
}

func TestBreakRequestValidate(t *testing.T) {
	req := &BreakRequest{Action: BreakActionStart}
	require.NoError(t, req.Validate())
	// An omitted category falls back to the catch-all bucket.
	assert.Equal(t, BreakOther, req.Category)

	assert.NoError(t, (&BreakRequest{Action: BreakActionEnd}).Validate())
	assert.Error(t, (&BreakRequest{Action: "pause"}).Validate())
	assert.Error(t, (&BreakRequest{Action: BreakActionStart, Category: "nap"}).Validate())
}

func TestCorrectionInputValidate(t *testing.T) {
	valid := &CorrectionInput{
		Field:    "check_in",
		NewValue: "2026-03-02T08:45:00Z",
		Reason:   "forgot badge, arrived earlier",
		Date:     "2026-03-02",
	}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&CorrectionInput{Field: "working_minutes", NewValue: "300", Reason: "x"}).Validate())
	assert.Error(t, (&CorrectionInput{Field: "status", NewValue: "", Reason: "x"}).Validate())
	assert.Error(t, (&CorrectionInput{Field: "status", NewValue: "present", Reason: " "}).Validate())
	assert.Error(t, (&CorrectionInput{Field: "status", NewValue: "present", Reason: "x", Date: "03/02/2026"}).Validate())
}

func TestProductivityMerge(t *testing.T) {
	five := 5
	eight := 8
	three := 3
	note := "shipped the report"

	base := Productivity{Score: &five, TasksCompleted: &three}
	merged := base.Merge(Productivity{Score: &eight, SelfAssessment: &note})

	require.NotNil(t, merged.Score)
	assert.Equal(t, 8, *merged.Score)
	require.NotNil(t, merged.TasksCompleted)
	assert.Equal(t, 3, *merged.TasksCompleted)
	require.NotNil(t, merged.SelfAssessment)
	assert.Equal(t, note, *merged.SelfAssessment)
}
