package llm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"deepti.app/relay/common/llm"
)

type capturedRequest struct {
	Path string
	Body map[string]any
}

func fakeProvider(status int, response string, captured *capturedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		captured.Path = r.URL.Path
		_ = json.Unmarshal(raw, &captured.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
}

var conversation = []llm.Message{
	{Role: llm.RoleSystem, Content: "నువ్వు దీప్తి"},
	{Role: llm.RoleUser, Content: "నమస్తే"},
	{Role: llm.RoleAssistant, Content: "నమస్కారం!"},
	{Role: llm.RoleUser, Content: "ఎలా ఉన్నావు?"},
}

var _ = Describe("NewCompleter", func() {
	It("requires an API key", func() {
		completer, err := llm.NewCompleter(llm.Config{})
		Expect(err).To(HaveOccurred())
		Expect(completer).To(BeNil())
	})

	It("defaults to openai with gpt-4o-mini", func() {
		completer, err := llm.NewCompleter(llm.Config{APIKey: "sk-test"})
		Expect(err).NotTo(HaveOccurred())
		Expect(completer.Model()).To(Equal("gpt-4o-mini"))
	})

	It("selects anthropic when asked", func() {
		completer, err := llm.NewCompleter(llm.Config{Provider: llm.ProviderAnthropic, APIKey: "sk-ant"})
		Expect(err).NotTo(HaveOccurred())
		Expect(completer.Model()).To(Equal("claude-sonnet-4-5"))
	})

	It("rejects unknown providers", func() {
		_, err := llm.NewCompleter(llm.Config{Provider: "cohere", APIKey: "k"})
		Expect(err).To(MatchError(ContainSubstring("unsupported LLM provider")))
	})
})

var _ = Describe("OpenAI completer", func() {
	var (
		captured capturedRequest
		server   *httptest.Server
	)

	newCompleter := func() llm.Completer {
		completer, err := llm.NewOpenAICompleter(llm.Config{APIKey: "sk-test", BaseURL: server.URL + "/"})
		Expect(err).NotTo(HaveOccurred())
		return completer
	}

	BeforeEach(func() {
		captured = capturedRequest{}
	})

	AfterEach(func() {
		server.Close()
	})

	It("sends messages and sampling parameters and returns the first choice", func() {
		server = fakeProvider(http.StatusOK, `{
			"id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "బాగున్నాను!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
		}`, &captured)

		resp, err := newCompleter().Complete(context.Background(), llm.CompletionRequest{
			Messages:    conversation,
			MaxTokens:   700,
			Temperature: llm.Temp(0.75),
			TopP:        llm.Temp(0.95),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Content).To(Equal("బాగున్నాను!"))
		Expect(resp.FinishReason).To(Equal("stop"))
		Expect(resp.PromptTokens).To(Equal(12))
		Expect(resp.CompletionTokens).To(Equal(4))

		Expect(captured.Path).To(HaveSuffix("/chat/completions"))
		Expect(captured.Body["model"]).To(Equal("gpt-4o-mini"))
		Expect(captured.Body["max_tokens"]).To(BeNumerically("==", 700))
		Expect(captured.Body["temperature"]).To(BeNumerically("~", 0.75))
		Expect(captured.Body["top_p"]).To(BeNumerically("~", 0.95))

		messages := captured.Body["messages"].([]any)
		Expect(messages).To(HaveLen(4))
		Expect(messages[0]).To(HaveKeyWithValue("role", "system"))
		Expect(messages[2]).To(HaveKeyWithValue("role", "assistant"))
		Expect(messages[3]).To(HaveKeyWithValue("content", "ఎలా ఉన్నావు?"))
	})

	It("returns empty content when there are no choices", func() {
		server = fakeProvider(http.StatusOK, `{
			"id": "chatcmpl-2", "object": "chat.completion", "created": 1, "model": "gpt-4o-mini",
			"choices": [], "usage": {"prompt_tokens": 1, "completion_tokens": 0, "total_tokens": 1}
		}`, &captured)

		resp, err := newCompleter().Complete(context.Background(), llm.CompletionRequest{Messages: conversation})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Content).To(BeEmpty())
	})

	It("surfaces provider errors without retrying", func() {
		calls := 0
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error": {"message": "quota exceeded", "type": "server_error"}}`)
		}))

		_, err := newCompleter().Complete(context.Background(), llm.CompletionRequest{Messages: conversation})
		Expect(err).To(MatchError(ContainSubstring("openai chat")))
		Expect(calls).To(Equal(1))
	})
})

var _ = Describe("Anthropic completer", func() {
	var (
		captured capturedRequest
		server   *httptest.Server
	)

	BeforeEach(func() {
		captured = capturedRequest{}
	})

	AfterEach(func() {
		server.Close()
	})

	It("moves the system prompt out of the message list and joins text blocks", func() {
		server = fakeProvider(http.StatusOK, `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-sonnet-4-5",
			"content": [{"type": "text", "text": "బాగున్నాను"}, {"type": "text", "text": ", మీరు?"}],
			"stop_reason": "end_turn", "stop_sequence": null,
			"usage": {"input_tokens": 20, "output_tokens": 6}
		}`, &captured)

		completer, err := llm.NewAnthropicCompleter(llm.Config{APIKey: "sk-ant", BaseURL: server.URL + "/"})
		Expect(err).NotTo(HaveOccurred())

		resp, err := completer.Complete(context.Background(), llm.CompletionRequest{
			Messages:    conversation,
			MaxTokens:   700,
			Temperature: llm.Temp(0.75),
			TopP:        llm.Temp(0.95),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Content).To(Equal("బాగున్నాను, మీరు?"))
		Expect(resp.FinishReason).To(Equal("stop"))
		Expect(resp.PromptTokens).To(Equal(20))

		Expect(captured.Path).To(HaveSuffix("/v1/messages"))
		Expect(captured.Body["max_tokens"]).To(BeNumerically("==", 700))
		Expect(captured.Body).To(HaveKey("temperature"))
		Expect(captured.Body).NotTo(HaveKey("top_p"))
		Expect(captured.Body["system"]).To(HaveLen(1))
		Expect(captured.Body["messages"]).To(HaveLen(3))
	})

	It("folds consecutive turns of the same role", func() {
		server = fakeProvider(http.StatusOK, `{
			"id": "msg_2", "type": "message", "role": "assistant", "model": "claude-sonnet-4-5",
			"content": [{"type": "text", "text": "సరే"}],
			"stop_reason": "end_turn", "stop_sequence": null,
			"usage": {"input_tokens": 1, "output_tokens": 1}
		}`, &captured)

		completer, err := llm.NewAnthropicCompleter(llm.Config{APIKey: "sk-ant", BaseURL: server.URL + "/"})
		Expect(err).NotTo(HaveOccurred())

		_, err = completer.Complete(context.Background(), llm.CompletionRequest{
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: "ఒకటి"},
				{Role: llm.RoleUser, Content: "రెండు"},
			},
		})
		Expect(err).NotTo(HaveOccurred())

		messages := captured.Body["messages"].([]any)
		Expect(messages).To(HaveLen(1))
		Expect(messages[0].(map[string]any)["content"]).To(HaveLen(2))
	})
})
