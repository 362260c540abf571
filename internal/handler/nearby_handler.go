package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"NightOwl-App/internal/domain/model"
	"NightOwl-App/internal/usecase"
)

// NearbyHandler は周辺営業中店舗検索APIのハンドラー
type NearbyHandler struct {
	nearbyUseCase usecase.NearbyUseCase
}

// NewNearbyHandler は新しいNearbyHandlerインスタンスを作成
func NewNearbyHandler(nearbyUseCase usecase.NearbyUseCase) *NearbyHandler {
	return &NearbyHandler{
		nearbyUseCase: nearbyUseCase,
	}
}

// GetNearby は営業中の周辺店舗を閉店が近い順に返すエンドポイント
// GET /api/closing?lat=..&lon=..&radiusKm=..&limit=..
func (h *NearbyHandler) GetNearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)

	// 座標バリデーション: 不正ならキャッシュ・プロバイダ層に到達する前に弾く
	if latErr != nil || lonErr != nil ||
		math.IsNaN(lat) || math.IsInf(lat, 0) || math.Abs(lat) > 90 ||
		math.IsNaN(lon) || math.IsInf(lon, 0) || math.Abs(lon) > 180 {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": "invalid_lat_lon",
		})
		return
	}

	radiusKm, err := strconv.ParseFloat(c.Query("radiusKm"), 64)
	if err != nil || math.IsNaN(radiusKm) {
		radiusKm = model.DefaultRadiusKm
	}
	radiusKm = math.Min(math.Max(radiusKm, model.MinRadiusKm), model.MaxRadiusKm)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(model.DefaultLimit)))
	if err != nil {
		limit = model.DefaultLimit
	}
	if limit < model.MinLimit {
		limit = model.MinLimit
	}
	if limit > model.MaxLimit {
		limit = model.MaxLimit
	}

	req := &model.NearbyRequest{
		Lat:      lat,
		Lng:      lon,
		RadiusKm: radiusKm,
		Limit:    limit,
	}

	response, err := h.nearbyUseCase.FindOpenNearby(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":    false,
			"error": "server_error",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
