package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// Role values for chat history messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation as resent by the caller.
// No chat state is persisted server-side beyond what the caller resends.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClarifyNoUserMessage is returned without calling the model when the last
// history entry is not a user-authored message.
const ClarifyNoUserMessage = "I'm not sure what you'd like me to help with. Could you type your question or request?"

// maxToolRounds bounds the agentic loop. Each round may execute several tool
// calls; a well-behaved conversation converges in two or three.
const maxToolRounds = 8

// Assistant is the chat orchestrator: it builds the system prompt, forwards
// the history and tool registry to the model, executes requested tools with
// the injected tenant id, and returns only the final generated text.
type Assistant struct {
	client *openai.Client
}

// NewAssistant constructs an Assistant using the given API key.
func NewAssistant(apiKey string) *Assistant {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Assistant{client: &client}
}

func systemPrompt(companyID, currencySymbol string) string {
	return fmt.Sprintf(`You are ProfitLens, a financial assistant for a small business.
Today's date is %s. All amounts are in the business's base currency, displayed with the symbol %s.
You are operating on behalf of business %s. Every tool call is scoped to this business automatically.

Rules:
1. If an update or delete request is ambiguous, ask a clarifying question instead of guessing.
2. Always ask the user for explicit confirmation before any destructive action (deleting an expense, changing an invoice status), and only call the tool after they confirm.
3. Before updating or deleting an entity, resolve it to a concrete identifier using a list or find tool first.
4. When presenting several records, render them as a formatted table.
5. Amounts in tool arguments must be plain numbers without currency symbols or thousands separators.`,
		time.Now().Format("2006-01-02"), currencySymbol, companyID)
}

// Chat runs one user turn. history is the full prior conversation; the last
// message must be user-authored, otherwise the fixed clarification message is
// returned and the model is never called.
func (a *Assistant) Chat(ctx context.Context, history []ChatMessage, registry *ToolRegistry, companyID, currencySymbol string) (string, error) {
	if len(history) == 0 || history[len(history)-1].Role != RoleUser {
		return ClarifyNoUserMessage, nil
	}

	input := responses.ResponseInputParam{textMessage(responses.EasyInputMessageRoleSystem, systemPrompt(companyID, currencySymbol))}
	for _, m := range history {
		role := responses.EasyInputMessageRoleUser
		if m.Role == RoleAssistant {
			role = responses.EasyInputMessageRoleAssistant
		}
		input = append(input, textMessage(role, m.Content))
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Tools: registry.ToOpenAITools(),
		Input: responses.ResponseNewParamsInputUnion{OfInputItemList: input},
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.client.Responses.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("openai responses error: %w", err)
		}

		toolCalls := 0
		for _, item := range resp.Output {
			if item.Type != "function_call" {
				continue
			}
			toolCalls++
			call := item.AsFunctionCall()
			input = append(input, responses.ResponseInputItemParamOfFunctionCall(call.Arguments, call.CallID, call.Name))
			output := dispatch(ctx, registry, companyID, call.Name, call.Arguments)
			input = append(input, responses.ResponseInputItemParamOfFunctionCallOutput(call.CallID, output))
		}

		if toolCalls == 0 {
			text := resp.OutputText()
			if text == "" {
				return "", fmt.Errorf("empty response content")
			}
			return text, nil
		}
		params.Input = responses.ResponseNewParamsInputUnion{OfInputItemList: input}
	}

	return "", fmt.Errorf("tool loop did not converge after %d rounds", maxToolRounds)
}

// dispatch parses the model-proposed arguments, overwrites the tenant scope,
// and executes the tool. Execution errors are serialized back to the model as
// the tool output; the model decides how to phrase them for the user.
func dispatch(ctx context.Context, registry *ToolRegistry, companyID, name, rawArgs string) string {
	tool, ok := registry.Get(name)
	if !ok {
		return toolError(fmt.Errorf("unknown tool %q", name))
	}

	args := map[string]any{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return toolError(fmt.Errorf("invalid tool arguments: %w", err))
		}
	}
	// The model is never trusted to supply tenant scope.
	args["company_id"] = companyID

	result, err := tool.Handler(ctx, args)
	if err != nil {
		return toolError(err)
	}
	return result
}

func toolError(err error) string {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(b)
}

func textMessage(role responses.EasyInputMessageRole, content string) responses.ResponseInputItemUnionParam {
	return responses.ResponseInputItemUnionParam{
		OfMessage: &responses.EasyInputMessageParam{
			Role:    role,
			Content: responses.EasyInputMessageContentUnionParam{OfString: param.NewOpt(content)},
		},
	}
}
