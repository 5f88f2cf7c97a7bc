package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"famguard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	completion := `{"risk_level": "위험", "confidence": 0.95, "detected_patterns": ["긴급한 입금 요구"], "explanation": "계좌이체 요구는 사기일 가능성이 높습니다.", "recommended_action": "전송 중단 권고"}`

	var gotRequest generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse{Response: completion})
	}))
	defer server.Close()

	client := NewClient(server.URL, "gemma3:4b", server.Client())

	assessment, err := client.Classify(context.Background(), "급하게 돈 보내줘")
	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelDanger, assessment.RiskLevel)
	assert.Equal(t, 0.95, assessment.Confidence)

	assert.Equal(t, "gemma3:4b", gotRequest.Model)
	assert.False(t, gotRequest.Stream)
	assert.Contains(t, gotRequest.Prompt, "급하게 돈 보내줘")
}

func TestClassifyTrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		json.NewEncoder(w).Encode(generateResponse{
			Response: `{"risk_level": "정상", "confidence": 0.99, "detected_patterns": [], "explanation": "ok", "recommended_action": "없음"}`,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "gemma3:4b", server.Client())

	_, err := client.Classify(context.Background(), "hello")
	require.NoError(t, err)
}

func TestClassifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "missing:model", server.Client())

	_, err := client.Classify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestClassifyUnparseableCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "I think the message is fine."})
	}))
	defer server.Close()

	client := NewClient(server.URL, "gemma3:4b", server.Client())

	_, err := client.Classify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract assessment")
}

func TestClassifyContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "gemma3:4b", server.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Classify(ctx, "hello")
	require.Error(t, err)
}

func TestClassifyConnectionRefused(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "gemma3:4b", &http.Client{Timeout: 200 * time.Millisecond})

	_, err := client.Classify(context.Background(), "hello")
	require.Error(t, err)
}
