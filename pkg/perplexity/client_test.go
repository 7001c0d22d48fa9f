package perplexity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion_Success(t *testing.T) {
	var gotReq ChatCompletionRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			ID: "cmpl-1",
			Choices: []Choice{
				{Message: Message{Role: "assistant", Content: "Revenue was $4 billion in 2025."}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	client := NewClient("pk-test", WithBaseURL(srv.URL), WithModel("sonar"))
	resp, err := client.ChatCompletion(context.Background(), ChatCompletionRequest{
		Messages:           []Message{{Role: "user", Content: "What was Acme's 2025 revenue?"}},
		SearchDomainFilter: []string{"macrotrends.net"},
	})

	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Contains(t, resp.Choices[0].Message.Content, "$4 billion")

	assert.Equal(t, "Bearer pk-test", gotAuth)
	// The configured model fills in when the request leaves it empty.
	assert.Equal(t, "sonar", gotReq.Model)
	assert.Equal(t, []string{"macrotrends.net"}, gotReq.SearchDomainFilter)
}

func TestChatCompletion_RequestModelWins(t *testing.T) {
	var gotReq ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(ChatCompletionResponse{})
	}))
	t.Cleanup(srv.Close)

	client := NewClient("pk-test", WithBaseURL(srv.URL))
	_, err := client.ChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "sonar-reasoning",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "sonar-reasoning", gotReq.Model)
}

func TestChatCompletion_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := client.ChatCompletion(context.Background(), ChatCompletionRequest{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
