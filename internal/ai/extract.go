package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// ExtractedExpense is the structured result of the receipt extraction flow.
type ExtractedExpense struct {
	Date        string  `json:"date" jsonschema_description:"The receipt date in YYYY-MM-DD format. Use today's date if not visible."`
	Amount      float64 `json:"amount" jsonschema_description:"The total amount as a plain number with currency symbols and thousands separators stripped"`
	Category    string  `json:"category" jsonschema_description:"The best matching business expense category from: Salaries, Rent, Utilities, Marketing, Software, Travel, Office Supplies, Insurance, Professional Services, Other"`
	Vendor      string  `json:"vendor" jsonschema_description:"The vendor or merchant name, empty string if not visible"`
	Description string  `json:"description" jsonschema_description:"A one-line description of the purchase"`
}

// ExtractedEmployee is one employee row extracted from an uploaded document.
type ExtractedEmployee struct {
	Name        string  `json:"name" jsonschema_description:"The employee's full name"`
	Position    string  `json:"position" jsonschema_description:"The job title or position"`
	Salary      float64 `json:"salary" jsonschema_description:"The annual salary as a plain number with currency symbols and thousands separators stripped"`
	Description string  `json:"description" jsonschema_description:"Any additional notes about the employee, empty string if none"`
}

// ExtractedEmployeeList is the structured result of the employee-document flow.
type ExtractedEmployeeList struct {
	Employees []ExtractedEmployee `json:"employees" jsonschema_description:"All employees found in the document"`
}

// OpportunityAnalysis is the structured result of the expense-opportunity flow.
type OpportunityAnalysis struct {
	Summary         string   `json:"summary" jsonschema_description:"A short narrative summary of the business's financial position"`
	Opportunities   []string `json:"opportunities" jsonschema_description:"Concrete cost-saving or growth opportunities, at least one"`
	Recommendations []string `json:"recommendations" jsonschema_description:"Actionable recommendations, at least one"`
}

// ExtractReceipt converts a receipt image into a structured expense.
// Either a fully conforming object is returned or the call fails. No
// retries, no partial results.
func (a *Assistant) ExtractReceipt(ctx context.Context, mimeType string, image []byte) (*ExtractedExpense, error) {
	prompt := `Extract the expense details from this receipt image.
Strip currency symbols and thousands separators from all numeric fields.`

	var out ExtractedExpense
	if err := a.structuredImageCall(ctx, "receipt_expense", "An expense extracted from a receipt image", prompt, mimeType, image, &out); err != nil {
		return nil, err
	}
	if out.Amount < 0 {
		return nil, fmt.Errorf("extracted amount is negative: %v", out.Amount)
	}
	return &out, nil
}

// ExtractEmployees converts an employee-list document image into structured
// employee records.
func (a *Assistant) ExtractEmployees(ctx context.Context, mimeType string, image []byte) (*ExtractedEmployeeList, error) {
	prompt := `Extract every employee from this document image.
Strip currency symbols and thousands separators from all salary values.`

	var out ExtractedEmployeeList
	if err := a.structuredImageCall(ctx, "employee_list", "Employees extracted from an uploaded document", prompt, mimeType, image, &out); err != nil {
		return nil, err
	}
	for _, e := range out.Employees {
		if e.Salary < 0 {
			return nil, fmt.Errorf("extracted salary for %q is negative: %v", e.Name, e.Salary)
		}
	}
	return &out, nil
}

// AnalyzeOpportunities asks for a qualitative opportunities/recommendations
// analysis given lifetime revenue and expense totals. Called only after both
// totals are known, never speculatively.
func (a *Assistant) AnalyzeOpportunities(ctx context.Context, totalRevenue, totalExpenses float64, additionalContext string) (*OpportunityAnalysis, error) {
	prompt := fmt.Sprintf(`You are a financial advisor for a small business.
Total lifetime revenue: %.2f
Total lifetime expenses: %.2f
Net profit: %.2f

Identify expense-reduction opportunities and give actionable recommendations.`,
		totalRevenue, totalExpenses, totalRevenue-totalExpenses)
	if additionalContext != "" {
		prompt += "\n\nAdditional context from the business owner:\n" + additionalContext
	}

	var out OpportunityAnalysis
	if err := a.structuredCall(ctx, "opportunity_analysis", "A qualitative financial opportunities analysis", prompt, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// structuredImageCall runs a structured-output completion over a prompt plus
// one inline image.
func (a *Assistant) structuredImageCall(ctx context.Context, schemaName, schemaDescription, prompt, mimeType string, image []byte, out any) error {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	content := responses.ResponseInputMessageContentListParam{
		responses.ResponseInputContentUnionParam{
			OfInputText: &responses.ResponseInputTextParam{Text: prompt},
		},
		responses.ResponseInputContentUnionParam{
			OfInputImage: &responses.ResponseInputImageParam{
				ImageURL: param.NewOpt(dataURL),
				Detail:   responses.ResponseInputImageDetailAuto,
			},
		},
	}
	input := responses.ResponseInputParam{
		responses.ResponseInputItemUnionParam{
			OfMessage: &responses.EasyInputMessageParam{
				Role:    responses.EasyInputMessageRoleUser,
				Content: responses.EasyInputMessageContentUnionParam{OfInputItemContentList: content},
			},
		},
	}
	return a.structuredCall(ctx, schemaName, schemaDescription, "", input, out)
}

// structuredCall runs one structured-output completion. When input is nil the
// prompt is sent as a plain string input.
func (a *Assistant) structuredCall(ctx context.Context, schemaName, schemaDescription, prompt string, input responses.ResponseInputParam, out any) error {
	schemaMap, err := generateSchema(out)
	if err != nil {
		return err
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        schemaName,
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt(schemaDescription),
				},
			},
		},
	}
	if input != nil {
		params.Input = responses.ResponseNewParamsInputUnion{OfInputItemList: input}
	} else {
		params.Input = responses.ResponseNewParamsInputUnion{OfString: param.NewOpt(prompt)}
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return fmt.Errorf("empty response content")
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse completion: %w", err)
	}
	return nil
}

// generateSchema reflects a JSON schema map from the output struct.
func generateSchema(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}
