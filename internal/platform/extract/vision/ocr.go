// Package vision はGoogle Cloud Vision APIによるスキャンPDFのOCRフォールバックを提供します。
package vision

import (
	"context"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"docsummary_backend/internal/platform/extract"
)

// VisionOCR はDOCUMENT_TEXT_DETECTIONでPDFバイト列からテキストを復元します。
// テキストレイヤーを持たないスキャン文書向けのフォールバックです。
type VisionOCR struct {
	client *gvision.ImageAnnotatorClient
}

// VisionOCRがextract.OCRを実装していることをコンパイル時に検証します。
var _ extract.OCR = (*VisionOCR)(nil)

// NewVisionOCR はADCを使用してVisionOCRの新しいインスタンスを生成します。
func NewVisionOCR(ctx context.Context) (*VisionOCR, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionOCR{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionOCR) Close() error {
	return v.client.Close()
}

// RecoverText はPDFバイト列にOCRをかけ、ページ順に連結したテキストを返します。
func (v *VisionOCR) RecoverText(ctx context.Context, pdfData []byte) (string, error) {
	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  pdfData,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return "", nil
	}

	var pages []string
	for _, page := range resp.Responses[0].Responses {
		if page.Error != nil {
			return "", fmt.Errorf("vision API error: %s", page.Error.Message)
		}
		if page.FullTextAnnotation != nil {
			pages = append(pages, page.FullTextAnnotation.Text)
		}
	}
	return strings.Join(pages, "\n"), nil
}
