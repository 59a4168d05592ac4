package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/smartcat-ai/kicat/internal/risk"
)

// consentPrompter asks the user to approve or deny a board mutation
// with an interactive form. It blocks until the user answers.
type consentPrompter struct{}

func (consentPrompter) RequestPermission(req risk.Request) (approved, remember bool, err error) {
	description := fmt.Sprintf(
		"Proposed change: %s\nRisk level: %s — %s",
		req.Description, renderRisk(req.Risk), req.Risk.Description(),
	)
	if req.Details != "" {
		description += "\nDetails: " + req.Details
	}
	for _, w := range req.Warnings {
		description += "\n  ! " + w
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Permission Request").
				Description(description),

			huh.NewConfirm().
				Title("Proceed with this modification?").
				Value(&approved),

			huh.NewConfirm().
				Title(fmt.Sprintf("Remember this choice for %q this session?", req.Mutation)).
				Value(&remember),
		),
	)

	if err := form.Run(); err != nil {
		return false, false, fmt.Errorf("prompt cancelled: %w", err)
	}
	return approved, remember, nil
}
