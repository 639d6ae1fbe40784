// Package gemini はGoogle Gemini APIを使用した要約生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"docsummary_backend/internal/feature/summaries/domain/entity"
	"docsummary_backend/internal/feature/summaries/usecase"
	platformhttp "docsummary_backend/internal/platform/http"
	"docsummary_backend/internal/shared/ratelimit"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	// EnvKeyAPIKey はGemini APIキーの環境変数キーです。
	EnvKeyAPIKey = "GEMINI_API_KEY"

	// EnvKeyModel は使用モデルを上書きする環境変数キーです。
	EnvKeyModel = "GEMINI_MODEL"

	// 無料枠のクォータに合わせた呼び出し上限です。
	requestsPerMinute = 10

	// 長文の要約生成は応答に時間がかかるため余裕を持たせています。
	requestTimeout = 120 * time.Second
)

// 詳細度モードごとのプロンプトテンプレートです。
var prompts = map[entity.Mode]string{
	entity.ModeConcise:  "Summarize in 30-40%% of the volume of the original text:\n\n%s\n\nSummary:",
	entity.ModeStandard: "Please summarize this text:\n\n%s\n\nSummary:",
	entity.ModeDetailed: "Provide a detailed summary of this text:\n\n%s\n\nDetailed Summary:",
}

// GeminiSummarizer はGoogle Gemini APIを使用してドキュメント要約を生成します。
type GeminiSummarizer struct {
	client  *genai.Client
	model   string
	limiter *ratelimit.Limiter
}

// GeminiSummarizerがSummaryGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.SummaryGenerator = (*GeminiSummarizer)(nil)

// NewGeminiSummarizer は環境変数 GEMINI_API_KEY（必須）と GEMINI_MODEL（任意）から
// GeminiSummarizerの新しいインスタンスを生成します。
func NewGeminiSummarizer(ctx context.Context) (*GeminiSummarizer, error) {
	apiKey := os.Getenv(EnvKeyAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set", EnvKeyAPIKey)
	}
	model := os.Getenv(EnvKeyModel)
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: platformhttp.NewHTTPClient(requestTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSummarizer{
		client:  client,
		model:   model,
		limiter: ratelimit.New(requestsPerMinute, time.Minute),
	}, nil
}

// Summarize はモードに応じたプロンプトで要約を生成します。
// クォータ超過時は次のウィンドウまでブロックします。
func (g *GeminiSummarizer) Summarize(ctx context.Context, text string, mode entity.Mode) (string, error) {
	tmpl, ok := prompts[mode]
	if !ok {
		tmpl = prompts[entity.ModeStandard]
	}
	prompt := fmt.Sprintf(tmpl, text)

	g.limiter.WaitIfNeeded()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}
