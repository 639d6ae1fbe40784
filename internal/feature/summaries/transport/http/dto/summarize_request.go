// Package dto はsummariesフィーチャーのリクエストボディを定義します。
package dto

// SummarizeReq は要約生成リクエストのボディです。
// modeを省略した場合はstandardとして扱います。
type SummarizeReq struct {
	DocID uint   `json:"doc_id" binding:"required"`
	Mode  string `json:"mode" binding:"omitempty,oneof=concise standard detailed"`
}
