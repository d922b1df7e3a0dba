package checklist

import (
	"github.com/frahmantamala/workforce-ops/internal/core/common/validation"
)

type SubmitRequest struct {
	ChecklistID string     `json:"checklistId" validate:"notblank,max=200"`
	Responses   []Response `json:"responses" validate:"dive"`
	Notes       string     `json:"notes" validate:"max=5000"`
}

func (r *SubmitRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return nil
}

type SubmitResponse struct {
	Success      bool   `json:"success"`
	SubmissionID string `json:"submissionId"`
}
