package repository

import (
	"context"

	"NightOwl-App/internal/domain/model"
)

// PlaceCacheRepository ジオハッシュセルでパーティションされた店舗キャッシュストア
// 物理ストア（Firestore / PostgreSQL / Supabase）の違いはこのインターフェースの裏に隠す
type PlaceCacheRepository interface {
	// QueryCell セルキー配下の全レコード（メタ含む）を取得する
	// ストア側のページネーションは実装が透過的に処理する
	QueryCell(ctx context.Context, cellKey string) ([]model.CacheRecord, error)

	// BatchPut 複数レコードを一括アップサートする
	// 物理的なチャンク分割は実装の都合であり呼び出し側には見せない
	BatchPut(ctx context.Context, records []model.CacheRecord) error

	// PutMeta セルのメタレコードを書き込む（上書き）
	PutMeta(ctx context.Context, meta model.CacheRecord) error
}
