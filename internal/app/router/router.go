package router

import (
	"github.com/gin-gonic/gin"

	authhandler "docsummary_backend/internal/feature/auth/transport/handler"
	dochandler "docsummary_backend/internal/feature/documents/transport/handler"
	folderhandler "docsummary_backend/internal/feature/folders/transport/handler"
	summaryhandler "docsummary_backend/internal/feature/summaries/transport/handler"
	platformhandler "docsummary_backend/internal/platform/http/handler"
	jwtmw "docsummary_backend/internal/platform/jwt"
)

func NewRouter(
	auth *authhandler.AuthHandler,
	users *authhandler.UserHandler,
	docs *dochandler.DocumentHandler,
	summaries *summaryhandler.SummaryHandler,
	folders *folderhandler.FolderHandler,
	resolver jwtmw.SubjectResolver,
) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 登録は「コード送付→検証で確定」の二段階
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/verify", auth.Verify)
	// ログイン（JWT 発行）
	r.POST("/auth/login", auth.Login)
	// パスワードリセット（コード送付→コードで再設定）
	r.POST("/auth/forgot-password", auth.ForgotPassword)
	r.POST("/auth/reset-password", auth.ResetPassword)

	// 認証必須のルート
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired(resolver))
	{
		protected.POST("/auth/logout", auth.Logout)
		protected.POST("/auth/change-password", auth.ChangePassword)

		protected.GET("/users/me", users.Me)
		protected.PUT("/users/me", users.UpdateMe)

		protected.POST("/documents", docs.Upload)
		protected.GET("/documents", docs.List)
		protected.GET("/documents/:id/content", docs.Content)
		protected.GET("/documents/:id/summaries", summaries.ListForDocument)
		protected.DELETE("/documents/:id", docs.Delete)

		protected.POST("/ai/summarize", summaries.Summarize)
		protected.GET("/summaries", summaries.ListAll)
		protected.GET("/summaries/:id", summaries.Get)
		protected.DELETE("/summaries/:id", summaries.Delete)
		protected.PUT("/summaries/:id/folder", summaries.ReassignFolder)
		protected.PUT("/summaries/:id/note", summaries.UpdateNote)

		protected.POST("/folders", folders.Create)
		protected.GET("/folders", folders.List)
		protected.PUT("/folders/:id", folders.Rename)
		protected.DELETE("/folders/:id", folders.Delete)
		protected.GET("/folders/:id/summaries", summaries.ListForFolder)
		protected.DELETE("/folders/:id/summaries/:summaryID", summaries.RemoveFromFolder)
	}

	return r
}
