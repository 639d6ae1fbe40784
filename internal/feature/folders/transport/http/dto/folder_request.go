// Package dto はfoldersフィーチャーのリクエストボディを定義します。
package dto

// FolderReq はフォルダの作成・リネームリクエストのボディです。
type FolderReq struct {
	Name string `json:"name" binding:"required"`
}
