package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"NightOwl-App/internal/database"
	"NightOwl-App/internal/domain/model"
	"NightOwl-App/internal/domain/repository"
)

// placeCacheRow place_cacheテーブルの1行（PostGIS location列はGeoJSONで表現）
type placeCacheRow struct {
	PK              string    `json:"pk"`
	SK              string    `json:"sk"`
	OsmID           string    `json:"osm_id"`
	Name            *string   `json:"name"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	Location        *GeoPoint `json:"location,omitempty"`
	Category        *string   `json:"category"`
	OpeningHoursRaw *string   `json:"opening_hours_raw"`
	FetchedAt       int64     `json:"fetched_at"`
	TTL             int64     `json:"ttl"`
}

// SupabasePlaceCacheRepository Supabase (PostgREST) を使用した店舗キャッシュリポジトリ
type SupabasePlaceCacheRepository struct {
	client *database.SupabaseClient
}

// NewSupabasePlaceCacheRepository 新しいSupabasePlaceCacheRepositoryインスタンスを作成
func NewSupabasePlaceCacheRepository(client *database.SupabaseClient) repository.PlaceCacheRepository {
	return &SupabasePlaceCacheRepository{
		client: client,
	}
}

// QueryCell セルキー配下の全レコードを取得する
func (r *SupabasePlaceCacheRepository) QueryCell(ctx context.Context, cellKey string) ([]model.CacheRecord, error) {
	data, count, err := r.client.GetClient().From("place_cache").
		Select("*", "exact", false).
		Eq("pk", cellKey).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("セル %s のキャッシュ取得失敗: %w", cellKey, err)
	}
	_ = count

	var rows []placeCacheRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("キャッシュレコードのJSONアンマーシャル失敗: %w", err)
	}

	records := make([]model.CacheRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// BatchPut 複数レコードを一括アップサートする（PostgRESTのバルクインサートを使用）
func (r *SupabasePlaceCacheRepository) BatchPut(ctx context.Context, records []model.CacheRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]placeCacheRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, toRow(record))
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("キャッシュレコードのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("place_cache").
		Insert(string(data), true, "pk,sk", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("キャッシュレコードの一括書き込み失敗: %w", err)
	}

	return nil
}

// PutMeta セルのメタレコードを書き込む
func (r *SupabasePlaceCacheRepository) PutMeta(ctx context.Context, meta model.CacheRecord) error {
	data, err := json.Marshal(toRow(meta))
	if err != nil {
		return fmt.Errorf("メタレコードのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("place_cache").
		Insert(string(data), true, "pk,sk", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("セル %s のメタレコード書き込み失敗: %w", meta.PK, err)
	}

	return nil
}

// toRow CacheRecordをDB行に変換する（地理検索用にlocation列も埋める）
func toRow(record model.CacheRecord) placeCacheRow {
	row := placeCacheRow{
		PK:              record.PK,
		SK:              record.SK,
		OsmID:           record.OsmID,
		Name:            record.Name,
		Lat:             record.Lat,
		Lng:             record.Lng,
		Category:        record.Category,
		OpeningHoursRaw: record.OpeningHoursRaw,
		FetchedAt:       record.FetchedAt,
		TTL:             record.TTL,
	}
	if record.IsPlace() {
		row.Location = LatLngToGeoPoint(record.Lat, record.Lng)
	}
	return row
}

// toRecord DB行をCacheRecordに変換する（lat/lng列が欠けていればlocation列から復元）
func (row placeCacheRow) toRecord() model.CacheRecord {
	record := model.CacheRecord{
		PK:              row.PK,
		SK:              row.SK,
		OsmID:           row.OsmID,
		Name:            row.Name,
		Lat:             row.Lat,
		Lng:             row.Lng,
		Category:        row.Category,
		OpeningHoursRaw: row.OpeningHoursRaw,
		FetchedAt:       row.FetchedAt,
		TTL:             row.TTL,
	}
	if record.Lat == 0 && record.Lng == 0 {
		if latLng := GeoPointToLatLng(row.Location); latLng != nil {
			record.Lat = latLng.Lat
			record.Lng = latLng.Lng
		}
	}
	return record
}
