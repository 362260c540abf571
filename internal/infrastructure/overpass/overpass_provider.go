package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NightOwl-App/internal/domain/model"
)

const (
	defaultEndpoint  = "https://overpass-api.de/api/interpreter"
	defaultUserAgent = "NightOwlFinder/1.0"

	// Overpassのサーバ側timeoutと揃えたクライアントタイムアウト
	requestTimeout = 25 * time.Second
)

// OverpassProvider はOverpass API (OpenStreetMap) を使用した周辺POI取得の実装
type OverpassProvider struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// NewOverpassProvider は新しいプロバイダを生成する（空文字はデフォルト値を使用）
func NewOverpassProvider(endpoint, userAgent string) *OverpassProvider {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &OverpassProvider{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// FetchNearby はOverpass APIを呼び出して指定半径内の飲食系POIを取得する
func (o *OverpassProvider) FetchNearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.OverpassElement, error) {
	query := o.buildQuery(lat, lng, radiusMeters)

	req, err := http.NewRequestWithContext(ctx, "POST", o.endpoint, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", o.userAgent)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Overpass APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 180))
		return nil, fmt.Errorf("Overpass HTTP %d: %s", resp.StatusCode, string(body))
	}

	var apiResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	return apiResp.Elements, nil
}

// buildQuery はamenityが飲食系のnode/way/relationを対象とするOverpass QLを構築する
func (o *OverpassProvider) buildQuery(lat, lng float64, radiusMeters int) string {
	amenities := strings.Join(model.FoodAmenityCategories, "|")
	around := fmt.Sprintf("(around:%d,%f,%f)", radiusMeters, lat, lng)
	return strings.TrimSpace(fmt.Sprintf(`
[out:json][timeout:25];
(
  node["amenity"~"%[1]s"]%[2]s;
  way["amenity"~"%[1]s"]%[2]s;
  relation["amenity"~"%[1]s"]%[2]s;
);
out center tags;
`, amenities, around))
}

// overpassResponse Overpass APIのレスポンスをパースするための構造体
type overpassResponse struct {
	Elements []model.OverpassElement `json:"elements"`
}
