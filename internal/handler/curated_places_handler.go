package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"

	"NightOwl-App/internal/domain/model"
)

// curatedPlaces マップ初期表示用にキュレーションした深夜営業スポット
var curatedPlaces = []model.CuratedPlace{
	{PlaceID: "titos", Name: "Tito's Tacos", Lat: 34.0229, Lon: -118.4058, HoursSummary: "Open late Fri–Sat"},
	{PlaceID: "sunset", Name: "Sunset Diner", Lat: 34.0983, Lon: -118.3267, HoursSummary: "24/7"},
	{PlaceID: "ramen", Name: "Midnight Ramen", Lat: 34.0639, Lon: -118.3020, HoursSummary: "Open till 2am"},
	{PlaceID: "boba", Name: "Night Owl Boba", Lat: 34.0421, Lon: -118.2680, HoursSummary: "Open till 1am"},
}

// CuratedPlacesHandler はキュレーション済みスポット一覧APIのハンドラー
type CuratedPlacesHandler struct{}

// NewCuratedPlacesHandler は新しいCuratedPlacesHandlerインスタンスを作成
func NewCuratedPlacesHandler() *CuratedPlacesHandler {
	return &CuratedPlacesHandler{}
}

// GetPlaces はキュレーション済みスポットを返すエンドポイント
// GET /api/places?bbox=minLon,minLat,maxLon,maxLat （bbox省略・不正時は全件）
func (h *CuratedPlacesHandler) GetPlaces(c *gin.Context) {
	items := curatedPlaces

	if bound, ok := parseBBox(c.Query("bbox")); ok {
		filtered := make([]model.CuratedPlace, 0, len(curatedPlaces))
		for _, p := range curatedPlaces {
			if bound.Contains(orb.Point{p.Lon, p.Lat}) {
				filtered = append(filtered, p)
			}
		}
		items = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"items": items,
	})
}

// parseBBox は"minLon,minLat,maxLon,maxLat"形式の境界ボックスをパースする
func parseBBox(bbox string) (orb.Bound, bool) {
	parts := strings.Split(bbox, ",")
	if len(parts) != 4 {
		return orb.Bound{}, false
	}

	coords := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, false
		}
		coords[i] = v
	}

	return orb.Bound{
		Min: orb.Point{coords[0], coords[1]},
		Max: orb.Point{coords[2], coords[3]},
	}, true
}
