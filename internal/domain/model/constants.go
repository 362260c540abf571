package model

// CacheKeyConstants キャッシュストアのキー構成に使用する定数
const (
	CellKeyPrefix      = "cell#"
	MetaSortKey        = "meta"
	PlaceSortKeyPrefix = "place#"
)

// GeohashPrecision キャッシュパーティションに使用するジオハッシュ精度（6文字 ≈ 1.2kmセル）
const GeohashPrecision = 6

// RequestConstants リクエストパラメータのデフォルト値とクランプ範囲
const (
	DefaultRadiusKm = 1.0
	MinRadiusKm     = 0.3
	MaxRadiusKm     = 3.0

	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 50
)

// DefaultCacheTTLSeconds キャッシュの鮮度TTLのデフォルト（24時間）
const DefaultCacheTTLSeconds = 86400

// FallbackPlaceName 名前もカテゴリもない店舗の汎用表示名
const FallbackPlaceName = "Place"

// NoteOverpassUnavailable コールドセルでプロバイダ障害時にレスポンスへ付与するノート
const NoteOverpassUnavailable = "overpass_unavailable"

// FoodAmenityCategories 検索対象とする飲食系amenityカテゴリ
var FoodAmenityCategories = []string{"restaurant", "fast_food", "cafe"}
