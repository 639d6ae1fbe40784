package dto

// FolderUpdateReq は要約のフォルダ再割り当てリクエストのボディです。
// folder_idをnullにすると未分類に戻ります。
type FolderUpdateReq struct {
	FolderID *uint `json:"folder_id"`
}

// NoteUpdateReq は要約ノートの上書きリクエストのボディです。
// 空文字列でノートを消去します。
type NoteUpdateReq struct {
	Note string `json:"note"`
}
