// Package assistant bridges chat conversations to the ledger. It exposes
// the API operations as tools to an OpenAI compatible model and executes
// the calls the model makes on behalf of the authenticated user.
package assistant

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"gorm.io/gorm"
)

// ErrNotConfigured is returned when no API key is set for the assistant.
var ErrNotConfigured = errors.New("the assistant is not configured on this server")

// ErrNoAnswer is returned when the model does not produce a final answer
// within the allowed number of tool calling rounds.
var ErrNoAnswer = errors.New("the assistant did not produce an answer")

// maxRounds limits the number of tool calling rounds per conversation
// turn so that a looping model cannot hold the request open forever.
const maxRounds = 5

const systemPrompt = "You are a personal finance assistant. " +
	"You manage the user's transactions and answer questions about their " +
	"income, expenses and categories. Use the available tools to read or " +
	"change data, never invent numbers. Amounts are in the user's currency."

// Message is a single chat message as exchanged with the client.
type Message struct {
	Role    string `json:"role" binding:"required,oneof=user assistant" example:"user"` // Who sent the message
	Content string `json:"content" binding:"required" example:"How much did I spend on food?"`
}

// Assistant holds the connection to the model provider and the database
// the tools operate on.
type Assistant struct {
	client *openai.Client
	model  string
	db     *gorm.DB
}

// New reads the assistant configuration from the environment. The
// returned Assistant is nil when OPENAI_API_KEY is not set, in which
// case the chat endpoint reports ErrNotConfigured.
func New(db *gorm.DB) *Assistant {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}

	config := openai.DefaultConfig(key)
	if url := os.Getenv("OPENAI_BASE_URL"); url != "" {
		config.BaseURL = url
	}

	return &Assistant{
		client: openai.NewClientWithConfig(config),
		model:  model,
		db:     db,
	}
}

// Chat runs one conversation turn for the user. Tool calls requested by
// the model are executed against the user's data and fed back until the
// model answers in plain text.
func (a *Assistant) Chat(ctx context.Context, userID uuid.UUID, conversation []Message) (string, error) {
	if a == nil {
		return "", ErrNotConfigured
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	for _, m := range conversation {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	for round := 0; round < maxRounds; round++ {
		response, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
			Tools:    tools(),
		})
		if err != nil {
			log.Error().Err(err).Msg("chat completion request failed")
			return "", err
		}

		if len(response.Choices) == 0 {
			return "", ErrNoAnswer
		}

		choice := response.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			return choice.Content, nil
		}

		messages = append(messages, choice)
		for _, call := range choice.ToolCalls {
			result := a.dispatch(call.Function.Name, userID, []byte(call.Function.Arguments))
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    result,
			})
		}
	}

	return "", ErrNoAnswer
}
