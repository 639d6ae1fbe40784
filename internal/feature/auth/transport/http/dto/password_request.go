package dto

// ForgotPasswordReq は/auth/forgot-passwordエンドポイントのリクエストボディを表します。
type ForgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordReq は/auth/reset-passwordエンドポイントのリクエストボディを表します。
type ResetPasswordReq struct {
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangePasswordReq は/auth/change-passwordエンドポイントのリクエストボディを表します。
// 新パスワードは確認のため2回要求されます。
type ChangePasswordReq struct {
	OldPassword  string `json:"old_password" binding:"required,min=6"`
	NewPassword  string `json:"new_password" binding:"required,min=6"`
	NewPassword2 string `json:"new_password2" binding:"required,min=6"`
}

// ProfileUpdateReq はPUT /users/meエンドポイントのリクエストボディを表します。
type ProfileUpdateReq struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}
