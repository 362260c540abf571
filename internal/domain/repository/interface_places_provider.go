package repository

import (
	"context"

	"NightOwl-App/internal/domain/model"
)

// PlacesProvider 上流オープンデータソースから周辺POIを取得するゲートウェイ
type PlacesProvider interface {
	// FetchNearby 指定座標から半径radiusMeters以内の飲食系POIを取得する
	// 通信エラー・非2xxはエラーとして返し、0件の正常応答とは区別する
	FetchNearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.OverpassElement, error)
}
