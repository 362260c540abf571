package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"NightOwl-App/internal/domain/model"
	"NightOwl-App/internal/domain/repository"
	"NightOwl-App/internal/infrastructure/database"
)

// batchPutChunkSize 1回のINSERT文に含める最大レコード数
const batchPutChunkSize = 100

// PostgresPlaceCacheRepository PostgreSQL直接接続を使用した店舗キャッシュリポジトリ
type PostgresPlaceCacheRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresPlaceCacheRepository 新しいPostgresPlaceCacheRepositoryインスタンスを作成
func NewPostgresPlaceCacheRepository(client *database.PostgreSQLClient) repository.PlaceCacheRepository {
	return &PostgresPlaceCacheRepository{
		client: client,
	}
}

// QueryCell セルキー配下の全レコードを取得する
func (r *PostgresPlaceCacheRepository) QueryCell(ctx context.Context, cellKey string) ([]model.CacheRecord, error) {
	query := `
		SELECT pk, sk, osm_id, name, lat, lng, category, opening_hours_raw, fetched_at, ttl
		FROM place_cache
		WHERE pk = $1
		ORDER BY sk`

	rows, err := r.client.DB.QueryContext(ctx, query, cellKey)
	if err != nil {
		return nil, fmt.Errorf("セル %s のキャッシュ取得失敗: %w", cellKey, err)
	}
	defer rows.Close()

	var records []model.CacheRecord
	for rows.Next() {
		var record model.CacheRecord
		var osmID, name, category, hoursRaw sql.NullString

		if err := rows.Scan(&record.PK, &record.SK, &osmID, &name,
			&record.Lat, &record.Lng, &category, &hoursRaw,
			&record.FetchedAt, &record.TTL); err != nil {
			return nil, fmt.Errorf("キャッシュレコードの読み取り失敗: %w", err)
		}

		record.OsmID = osmID.String
		if name.Valid {
			record.Name = &name.String
		}
		if category.Valid {
			record.Category = &category.String
		}
		if hoursRaw.Valid {
			record.OpeningHoursRaw = &hoursRaw.String
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("キャッシュレコードの走査失敗: %w", err)
	}

	return records, nil
}

// BatchPut 複数レコードをチャンク分割してアップサートする
func (r *PostgresPlaceCacheRepository) BatchPut(ctx context.Context, records []model.CacheRecord) error {
	for start := 0; start < len(records); start += batchPutChunkSize {
		end := start + batchPutChunkSize
		if end > len(records) {
			end = len(records)
		}
		if err := r.upsertChunk(ctx, records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// PutMeta セルのメタレコードを書き込む
func (r *PostgresPlaceCacheRepository) PutMeta(ctx context.Context, meta model.CacheRecord) error {
	return r.upsertChunk(ctx, []model.CacheRecord{meta})
}

// upsertChunk 1チャンク分のレコードをマルチ行VALUESでアップサートする
func (r *PostgresPlaceCacheRepository) upsertChunk(ctx context.Context, records []model.CacheRecord) error {
	if len(records) == 0 {
		return nil
	}

	valueClauses := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*10)
	for i, record := range records {
		base := i * 10
		valueClauses = append(valueClauses, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10,
		))
		args = append(args,
			record.PK, record.SK, record.OsmID, record.Name,
			record.Lat, record.Lng, record.Category, record.OpeningHoursRaw,
			record.FetchedAt, record.TTL,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO place_cache (pk, sk, osm_id, name, lat, lng, category, opening_hours_raw, fetched_at, ttl)
		VALUES %s
		ON CONFLICT (pk, sk) DO UPDATE SET
			osm_id = EXCLUDED.osm_id,
			name = EXCLUDED.name,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			category = EXCLUDED.category,
			opening_hours_raw = EXCLUDED.opening_hours_raw,
			fetched_at = EXCLUDED.fetched_at,
			ttl = EXCLUDED.ttl`,
		strings.Join(valueClauses, ", "))

	if _, err := r.client.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("キャッシュレコードのアップサート失敗: %w", err)
	}

	return nil
}
