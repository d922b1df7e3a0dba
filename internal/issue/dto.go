package issue

import (
	"strings"

	"github.com/frahmantamala/workforce-ops/internal/core/common/validation"
)

type CreateIssueRequest struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Priority    string `json:"priority" validate:"priority"`
	Category    string `json:"category" validate:"max=50"`
}

func (r *CreateIssueRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return nil
}

// normalize applies the defaults for omitted fields.
func (r *CreateIssueRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Priority == "" {
		r.Priority = string(PriorityMedium)
	}
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultCategory
	}
}

type CreateIssueResponse struct {
	Success bool   `json:"success"`
	Issue   *Issue `json:"issue"`
}
