package model

import "strings"

// LatLng 緯度経度を表す基本的な型（距離計算などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CacheRecord ジオハッシュセル配下にキャッシュされる1レコード
// SKが"meta"のレコードはセルのメタデータ、"place#<type>/<id>"のレコードは店舗を表す
type CacheRecord struct {
	PK              string  `json:"pk" firestore:"pk"`
	SK              string  `json:"sk" firestore:"sk"`
	OsmID           string  `json:"osm_id,omitempty" firestore:"osmId,omitempty"`
	Name            *string `json:"name,omitempty" firestore:"name,omitempty"`
	Lat             float64 `json:"lat" firestore:"lat"`
	Lng             float64 `json:"lng" firestore:"lng"`
	Category        *string `json:"category,omitempty" firestore:"category,omitempty"`
	OpeningHoursRaw *string `json:"opening_hours_raw,omitempty" firestore:"openingHoursRaw,omitempty"`
	FetchedAt       int64   `json:"fetched_at" firestore:"fetchedAt"`
	TTL             int64   `json:"ttl" firestore:"ttl"`
}

// IsMeta レコードがセルのメタデータかどうか
func (r *CacheRecord) IsMeta() bool {
	return r.SK == MetaSortKey
}

// IsPlace レコードが店舗データかどうか
func (r *CacheRecord) IsPlace() bool {
	return strings.HasPrefix(r.SK, PlaceSortKeyPrefix)
}

// ToLatLng レコードの位置情報をLatLng型に変換
func (r *CacheRecord) ToLatLng() LatLng {
	return LatLng{Lat: r.Lat, Lng: r.Lng}
}

// DisplayName 表示名を返す（名前→カテゴリ→汎用ラベルの順でフォールバック）
func (r *CacheRecord) DisplayName() string {
	if r.Name != nil && *r.Name != "" {
		return *r.Name
	}
	if r.Category != nil && *r.Category != "" {
		return *r.Category
	}
	return FallbackPlaceName
}

// OverpassElement Overpass APIから返される生のPOI要素
// nodeはlat/lonを直接持ち、way/relationはcenterに座標を持つ
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *OverpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// OverpassCenter way/relation要素の代表座標
type OverpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coordinate 要素の座標を取得する（node優先、なければcenter）
func (e *OverpassElement) Coordinate() (lat, lon float64, ok bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

// NearbyRequest 周辺検索リクエスト（バリデーション・クランプ済みの値を保持）
type NearbyRequest struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
	Limit    int     `json:"limit"`
}

// NearbyItem レスポンスに含まれる1件の営業中店舗
type NearbyItem struct {
	OsmID          string  `json:"osmId"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DistanceKm     float64 `json:"distanceKm"`
	MinutesToClose int     `json:"minutesToClose"`
	ClosesAtLocal  *string `json:"closesAtLocal"`
}

// NearbyMeta レスポンスのメタデータ
type NearbyMeta struct {
	Cell     string  `json:"cell"`
	RadiusKm float64 `json:"radiusKm"`
	Count    *int    `json:"count,omitempty"`
	Note     string  `json:"note,omitempty"`
}

// NearbyResponse 周辺検索レスポンス
type NearbyResponse struct {
	OK    bool         `json:"ok"`
	Items []NearbyItem `json:"items"`
	Meta  NearbyMeta   `json:"meta"`
}

// CuratedPlace キュレーション済みの深夜営業スポット（/api/places用の静的データ）
type CuratedPlace struct {
	PlaceID      string  `json:"placeId"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	HoursSummary string  `json:"hoursSummary"`
}
