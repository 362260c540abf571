package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"NightOwl-App/internal/database"
	"NightOwl-App/internal/domain/model"
	domainrepo "NightOwl-App/internal/domain/repository"
	"NightOwl-App/internal/domain/service"
	"NightOwl-App/internal/handler"
	pgdatabase "NightOwl-App/internal/infrastructure/database"
	fsclient "NightOwl-App/internal/infrastructure/firestore"
	"NightOwl-App/internal/infrastructure/overpass"
	"NightOwl-App/internal/repository"
	"NightOwl-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	ctx := context.Background()

	// キャッシュストアの初期化（CACHE_BACKENDで切り替え、既定はFirestore）
	cacheRepo, cleanup, err := buildCacheRepository(ctx)
	if err != nil {
		log.Fatalf("キャッシュストアの初期化失敗: %v", err)
	}
	defer cleanup()

	// 上流データプロバイダ（Overpass API）の初期化
	provider := overpass.NewOverpassProvider(os.Getenv("OVERPASS_URL"), os.Getenv("USER_AGENT"))

	// 営業判定用の固定タイムゾーンクロック
	clock, err := service.NewFixedZoneClock()
	if err != nil {
		log.Fatalf("ローカルクロックの初期化失敗: %v", err)
	}

	ttlSeconds := int64(model.DefaultCacheTTLSeconds)
	if raw := os.Getenv("CACHE_TTL_SECONDS"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			ttlSeconds = parsed
		}
	}

	nearbyUseCase := usecase.NewNearbyUseCase(cacheRepo, provider, clock, ttlSeconds)
	nearbyHandler := handler.NewNearbyHandler(nearbyUseCase)
	placesHandler := handler.NewCuratedPlacesHandler()

	r := gin.Default()
	r.Use(corsMiddleware())
	r.Use(requestIDMiddleware())

	r.GET("/api/closing", nearbyHandler.GetNearby)
	r.GET("/api/places", placesHandler.GetPlaces)
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "NightOwl-App"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("NightOwl-App server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}

// buildCacheRepository 環境変数CACHE_BACKENDに応じたキャッシュリポジトリを構築する
func buildCacheRepository(ctx context.Context) (domainrepo.PlaceCacheRepository, func(), error) {
	backend := os.Getenv("CACHE_BACKEND")
	if backend == "" {
		backend = "firestore"
	}

	switch backend {
	case "firestore":
		projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
		if projectID == "" {
			return nil, nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT環境変数が設定されていません")
		}
		client, err := fsclient.NewFirestoreClient(ctx, projectID)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { client.Close() }
		return repository.NewFirestorePlaceCacheRepository(client.GetClient()), cleanup, nil

	case "postgres":
		client, err := pgdatabase.NewPostgreSQLClient()
		if err != nil {
			return nil, nil, err
		}
		if err := client.EnsurePlaceCacheSchema(); err != nil {
			client.Close()
			return nil, nil, err
		}
		cleanup := func() { client.Close() }
		return repository.NewPostgresPlaceCacheRepository(client), cleanup, nil

	case "supabase":
		client, err := database.NewSupabaseClient()
		if err != nil {
			return nil, nil, err
		}
		if err := client.HealthCheck(); err != nil {
			return nil, nil, err
		}
		return repository.NewSupabasePlaceCacheRepository(client), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("不明なCACHE_BACKEND: %s", backend)
	}
}

// corsMiddleware フロントエンドからの呼び出しを許可する
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// requestIDMiddleware リクエストごとに追跡用IDを付与する
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}
