package repository

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"NightOwl-App/internal/domain/model"
	"NightOwl-App/internal/domain/repository"
)

// placeCacheCollection セルごとのキャッシュを格納するトップレベルコレクション
// 各セルが1ドキュメントを持ち、その配下の"records"サブコレクションにレコードを置く
const placeCacheCollection = "placeCache"

// FirestorePlaceCacheRepository Firestoreを使用した店舗キャッシュリポジトリ
type FirestorePlaceCacheRepository struct {
	client *firestore.Client
}

// NewFirestorePlaceCacheRepository 新しいFirestorePlaceCacheRepositoryインスタンスを作成
func NewFirestorePlaceCacheRepository(client *firestore.Client) repository.PlaceCacheRepository {
	return &FirestorePlaceCacheRepository{
		client: client,
	}
}

// QueryCell セルキー配下の全レコードを取得する（イテレータがページネーションを透過処理）
func (r *FirestorePlaceCacheRepository) QueryCell(ctx context.Context, cellKey string) ([]model.CacheRecord, error) {
	var records []model.CacheRecord

	iter := r.recordsRef(cellKey).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("セル %s のキャッシュ取得失敗: %w", cellKey, err)
		}

		var record model.CacheRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, fmt.Errorf("キャッシュレコードの変換失敗: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// BatchPut 複数レコードをBulkWriterで一括アップサートする
func (r *FirestorePlaceCacheRepository) BatchPut(ctx context.Context, records []model.CacheRecord) error {
	if len(records) == 0 {
		return nil
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(records))
	for _, record := range records {
		ref := r.recordsRef(record.PK).Doc(recordDocID(record.SK))
		job, err := bw.Set(ref, record)
		if err != nil {
			bw.End()
			return fmt.Errorf("キャッシュレコードの一括書き込み失敗: %w", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	// End()はフラッシュのみでエラーを返さないため、各ジョブの結果を確認する
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("キャッシュレコードの一括書き込み失敗: %w", err)
		}
	}

	return nil
}

// PutMeta セルのメタレコードを書き込む
func (r *FirestorePlaceCacheRepository) PutMeta(ctx context.Context, meta model.CacheRecord) error {
	ref := r.recordsRef(meta.PK).Doc(recordDocID(meta.SK))
	if _, err := ref.Set(ctx, meta); err != nil {
		return fmt.Errorf("セル %s のメタレコード書き込み失敗: %w", meta.PK, err)
	}
	return nil
}

// recordsRef セルキーに対応するレコードサブコレクションの参照を返す
func (r *FirestorePlaceCacheRepository) recordsRef(cellKey string) *firestore.CollectionRef {
	return r.client.Collection(placeCacheCollection).Doc(cellKey).Collection("records")
}

// recordDocID ソートキーをFirestoreドキュメントIDに変換する
// SKに含まれる"/"（例: "place#node/123"）はドキュメントパス区切りと衝突するため置換する
func recordDocID(sk string) string {
	return strings.ReplaceAll(sk, "/", "_")
}
