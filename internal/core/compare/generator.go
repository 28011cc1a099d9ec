// Package compare produces the structured comparison of two review corpora.
package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"github.com/agenthands/versus/internal/core/common"
	"github.com/agenthands/versus/internal/core/model"
	"github.com/agenthands/versus/internal/core/prompt"
	"github.com/agenthands/versus/internal/llm"
)

type Generator struct {
	LLM      llm.Client
	Prompt   *prompt.Template
	Logger   *zap.Logger
	validate *validator.Validate
}

func NewGenerator(llmClient llm.Client, promptText string, logger *zap.Logger) (*Generator, error) {
	tmpl, err := prompt.Parse("comparison", promptText, prompt.ComparisonData{})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, err
	}

	return &Generator{
		LLM:      llmClient,
		Prompt:   tmpl,
		Logger:   logger.Named("compare"),
		validate: validate,
	}, nil
}

// Generate asks the model once for a comparison of a and b. userContext is
// optional; blank means the user shared nothing. A response that is not exactly
// one ComparisonResult object fails with model.ErrComparisonParse.
func (g *Generator) Generate(ctx context.Context, a, b model.ReviewCorpus, userContext string) (*model.ComparisonResult, error) {
	if a.IsEmpty() || b.IsEmpty() {
		g.Logger.Warn("comparing with an empty review corpus",
			zap.String("product1", a.ProductName),
			zap.Bool("product1_empty", a.IsEmpty()),
			zap.String("product2", b.ProductName),
			zap.Bool("product2_empty", b.IsEmpty()),
		)
	}

	p, err := g.Prompt.Render(prompt.ComparisonData{
		Product1Name:    a.ProductName,
		Product1Content: a.Content,
		Product2Name:    b.ProductName,
		Product2Content: b.Content,
		UserRequest:     strings.TrimSpace(userContext),
	})
	if err != nil {
		return nil, err
	}

	response, err := g.LLM.Complete(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate comparison: %w", err)
	}

	result, err := common.ParseJSON[model.ComparisonResult](response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrComparisonParse, err)
	}
	if err := g.validate.Struct(result); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrComparisonParse, err)
	}

	return &result, nil
}
