package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"docsummary_backend/internal/app/di"
	"docsummary_backend/internal/app/router"
	authadapters "docsummary_backend/internal/feature/auth/adapters"
	authhandler "docsummary_backend/internal/feature/auth/transport/handler"
	authusecase "docsummary_backend/internal/feature/auth/usecase"
	docadapters "docsummary_backend/internal/feature/documents/adapters"
	dochandler "docsummary_backend/internal/feature/documents/transport/handler"
	docusecase "docsummary_backend/internal/feature/documents/usecase"
	folderadapters "docsummary_backend/internal/feature/folders/adapters"
	folderhandler "docsummary_backend/internal/feature/folders/transport/handler"
	folderusecase "docsummary_backend/internal/feature/folders/usecase"
	summaryadapters "docsummary_backend/internal/feature/summaries/adapters"
	summaryhandler "docsummary_backend/internal/feature/summaries/transport/handler"
	summaryusecase "docsummary_backend/internal/feature/summaries/usecase"
	platformdb "docsummary_backend/internal/platform/db"
	jwtmw "docsummary_backend/internal/platform/jwt"
	"docsummary_backend/internal/platform/mail"
	platformredis "docsummary_backend/internal/platform/redis"
	"docsummary_backend/internal/platform/storage"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	ctx := context.Background()

	// db
	db := platformdb.OpenDB()

	// Redis（任意: 未設定ならコード台帳はMySQLフォールバック）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Using MySQL for verification codes.")
		rdb = nil
	} else if tmp != nil {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// ファイルストレージ
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	files, err := storage.NewDiskStore(uploadDir)
	if err != nil {
		log.Fatalf("failed to create upload dir: %v", err)
	}

	// JWT
	expireMinutes := 60
	if raw := os.Getenv("JWT_EXPIRE_MINUTES"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			expireMinutes = v
		}
	}
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), time.Duration(expireMinutes)*time.Minute)

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	codeRepo := di.NewCodeRepository(rdb, db)
	docRepo := docadapters.NewDocumentMySQL(db)
	summaryRepo := summaryadapters.NewSummaryMySQL(db)
	folderRepo := folderadapters.NewFolderMySQL(db)

	// 外部サービス
	mailer := mail.NewSenderFromEnv()
	summarizer := di.NewSummarizer(ctx)
	extractor := di.NewTextExtractor(ctx)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, codeRepo, mailer, jwtGen)
	docsUC := docusecase.NewDocumentsUsecase(docRepo, files, summaryRepo)
	summariesUC := summaryusecase.NewSummariesUsecase(summaryRepo, docRepo, folderRepo, extractor, summarizer)
	foldersUC := folderusecase.NewFoldersUsecase(folderRepo, summaryRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	userH := authhandler.NewUserHandler(authUC)
	docH := dochandler.NewDocumentHandler(docsUC)
	summaryH := summaryhandler.NewSummaryHandler(summariesUC)
	folderH := folderhandler.NewFolderHandler(foldersUC)

	// ルータ生成
	router := router.NewRouter(authH, userH, docH, summaryH, folderH, userRepo)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
