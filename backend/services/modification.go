package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kassslll/creator-studio/backend/llm"
	"github.com/kassslll/creator-studio/backend/utils"
)

type ModificationKind string

const (
	ModRefine     ModificationKind = "refine"
	ModExpand     ModificationKind = "expand"
	ModSimplify   ModificationKind = "simplify"
	ModAdapt      ModificationKind = "adapt"
	ModDuplicate  ModificationKind = "duplicate"
	ModRegenerate ModificationKind = "regenerate"
)

// ModificationKinds lists the kinds in the order they appear in prompts.
var ModificationKinds = []ModificationKind{
	ModRefine, ModExpand, ModSimplify, ModAdapt, ModDuplicate, ModRegenerate,
}

var modificationGuidance = map[ModificationKind]string{
	ModRefine:     "Improve quality, clarity, and accuracy without changing the scope.",
	ModExpand:     "Add more details, examples, and depth without removing existing material.",
	ModSimplify:   "Make the content clearer and easier to understand.",
	ModAdapt:      "Adjust the content for a different audience or context.",
	ModDuplicate:  "Create a variant with the specified changes.",
	ModRegenerate: "Completely rewrite the content, keeping only the core topic.",
}

type ModifyResult struct {
	NewBody          string
	OriginalBody     string
	ModificationType string
}

type ModificationService struct {
	provider llm.Provider
	logger   *utils.Logger
}

func NewModificationService(provider llm.Provider, logger *utils.Logger) *ModificationService {
	return &ModificationService{provider: provider, logger: logger}
}

// Modify asks the provider to rewrite body. The whole body is replaced by
// whatever the provider returns.
func (s *ModificationService) Modify(ctx context.Context, body, kind, instructions string) (*ModifyResult, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		Prompt:      modificationPrompt(body, kind, instructions),
		Temperature: TemperatureCreative,
	})
	if err != nil {
		return nil, &GenerationError{Op: opModify, Err: err}
	}

	s.logger.Info("content modified", "modification_type", kind, "chars_before", len(body), "chars_after", len(resp.Text))
	return &ModifyResult{
		NewBody:          resp.Text,
		OriginalBody:     body,
		ModificationType: kind,
	}, nil
}

func modificationPrompt(body, kind, instructions string) string {
	var b strings.Builder
	b.WriteString("You are an experienced editor of educational content. You will rewrite existing content using a specific approach.\n")
	fmt.Fprintf(&b, "Modification type: %s.\n\n", kind)

	if guidance, ok := modificationGuidance[ModificationKind(strings.ToLower(strings.TrimSpace(kind)))]; ok {
		b.WriteString(guidance)
		b.WriteString("\n")
	} else {
		for _, k := range ModificationKinds {
			fmt.Fprintf(&b, "If %s: %s\n", k, modificationGuidance[k])
		}
	}

	b.WriteString("\nKeep the original format and structure unless the instructions say otherwise.\n\n")
	b.WriteString("Here is the content to modify:\n\n")
	b.WriteString(body)
	b.WriteString("\n\nModification instructions: ")
	b.WriteString(instructions)
	return b.String()
}
