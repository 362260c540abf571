package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"NightOwl-App/internal/domain/helper"
	"NightOwl-App/internal/domain/model"
	"NightOwl-App/internal/domain/repository"
	"NightOwl-App/internal/domain/service"
)

type NearbyUseCase interface {
	// FindOpenNearby は座標と半径から「今営業中の店」を閉店が近い順に返す
	FindOpenNearby(ctx context.Context, req *model.NearbyRequest) (*model.NearbyResponse, error)
}

// nearbyUseCaseImpl はNearbyUseCaseの実装
// セル解決 → キャッシュ鮮度判定 → 必要ならプロバイダから再取得・バックフィル →
// 半径フィルタ → 営業判定 → ソート・件数制限、の順に処理する
type nearbyUseCaseImpl struct {
	cacheRepo  repository.PlaceCacheRepository
	provider   repository.PlacesProvider
	clock      service.LocalClock
	ttlSeconds int64
}

// NewNearbyUseCase は新しいNearbyUseCaseインスタンスを作成
func NewNearbyUseCase(
	cacheRepo repository.PlaceCacheRepository,
	provider repository.PlacesProvider,
	clock service.LocalClock,
	ttlSeconds int64,
) NearbyUseCase {
	if ttlSeconds <= 0 {
		ttlSeconds = model.DefaultCacheTTLSeconds
	}
	return &nearbyUseCaseImpl{
		cacheRepo:  cacheRepo,
		provider:   provider,
		clock:      clock,
		ttlSeconds: ttlSeconds,
	}
}

// FindOpenNearby は周辺検索を実行する
func (u *nearbyUseCaseImpl) FindOpenNearby(ctx context.Context, req *model.NearbyRequest) (*model.NearbyResponse, error) {
	cell := helper.GeohashEncode(req.Lat, req.Lng, model.GeohashPrecision)
	cellKey := model.CellKeyPrefix + cell
	nowMs := time.Now().UnixMilli()

	log.Printf("🔍 周辺検索開始 (lat: %.5f, lng: %.5f, radius: %.1fkm, cell: %s)", req.Lat, req.Lng, req.RadiusKm, cell)

	// 1) キャッシュ読み取り
	existing, err := u.cacheRepo.QueryCell(ctx, cellKey)
	if err != nil {
		return nil, fmt.Errorf("キャッシュの読み取りに失敗: %w", err)
	}

	var meta *model.CacheRecord
	var cachedPlaces []model.CacheRecord
	for i := range existing {
		if existing[i].IsMeta() {
			meta = &existing[i]
		} else if existing[i].IsPlace() {
			cachedPlaces = append(cachedPlaces, existing[i])
		}
	}

	stale := meta == nil || meta.FetchedAt == 0 || nowMs-meta.FetchedAt > u.ttlSeconds*1000
	fetchedCount := 0

	// 2) 古ければプロバイダから再取得してバックフィル
	if stale {
		radiusMeters := int(math.Max(1000, math.Round(req.RadiusKm*1000)))

		elements, fetchErr := u.provider.FetchNearby(ctx, req.Lat, req.Lng, radiusMeters)
		if fetchErr != nil {
			log.Printf("❌ Overpassエラー: %v", fetchErr)
			if len(cachedPlaces) == 0 {
				// 初回アクセスのセルでプロバイダが落ちている場合は空で応答する
				return &model.NearbyResponse{
					OK:    true,
					Items: []model.NearbyItem{},
					Meta: model.NearbyMeta{
						Cell:     cell,
						RadiusKm: req.RadiusKm,
						Note:     model.NoteOverpassUnavailable,
					},
				}, nil
			}
			// 既存キャッシュがあれば古いまま提供する（stale-serve）
			elements = nil
		}

		toPut := u.buildCacheRecords(elements, cellKey, nowMs)
		if len(toPut) > 0 {
			fetchedCount = len(toPut)
			if err := u.cacheRepo.BatchPut(ctx, toPut); err != nil {
				return nil, fmt.Errorf("キャッシュのバックフィルに失敗: %w", err)
			}
		}

		// 取得結果が0件でもメタは必ず更新する（疎なセルへの再取得ストームを防ぐ）
		metaRecord := model.CacheRecord{
			PK:        cellKey,
			SK:        model.MetaSortKey,
			FetchedAt: nowMs,
			TTL:       nowMs/1000 + u.ttlSeconds,
		}
		if err := u.cacheRepo.PutMeta(ctx, metaRecord); err != nil {
			return nil, fmt.Errorf("キャッシュメタの書き込みに失敗: %w", err)
		}
	}

	// 3) 最終候補セット（再取得した場合は書き込み直後のデータを読み直す）
	places := cachedPlaces
	if stale {
		refreshed, err := u.cacheRepo.QueryCell(ctx, cellKey)
		if err != nil {
			return nil, fmt.Errorf("キャッシュの再読み取りに失敗: %w", err)
		}
		places = places[:0]
		for i := range refreshed {
			if refreshed[i].IsPlace() {
				places = append(places, refreshed[i])
			}
		}
	}

	// 4) 半径フィルタ + 営業判定
	origin := model.LatLng{Lat: req.Lat, Lng: req.Lng}
	dayIndex, minuteOfDay := u.clock.Now()

	var out []model.NearbyItem
	for i := range places {
		p := &places[i]
		dist := helper.HaversineDistance(origin, p.ToLatLng())
		if dist > req.RadiusKm {
			continue
		}

		openStatus := model.OpenStatus{Open: false}
		if p.OpeningHoursRaw != nil && *p.OpeningHoursRaw != "" {
			schedule, _ := service.ParseOpeningHours(*p.OpeningHoursRaw)
			openStatus = service.EvaluateOpenNow(schedule, dayIndex, minuteOfDay)
		}
		if !openStatus.Open {
			continue
		}

		minutesToClose := openStatus.MinutesToClose
		if minutesToClose < 1 {
			minutesToClose = 1
		}
		var closesAt *string
		if openStatus.ClosesAtLocal != "" {
			label := openStatus.ClosesAtLocal
			closesAt = &label
		}

		out = append(out, model.NearbyItem{
			OsmID:          p.OsmID,
			Name:           p.DisplayName(),
			Lat:            p.Lat,
			Lon:            p.Lng,
			DistanceKm:     helper.RoundDistanceKm(dist),
			MinutesToClose: minutesToClose,
			ClosesAtLocal:  closesAt,
		})
	}

	// 5) 閉店が近い順に安定ソートして件数を制限
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinutesToClose < out[j].MinutesToClose
	})
	if len(out) > req.Limit {
		out = out[:req.Limit]
	}
	if out == nil {
		out = []model.NearbyItem{}
	}

	count := len(out)
	log.Printf("✅ 周辺検索完了 (cell: %s, cache: %d件, fetched: %d件, returned: %d件)",
		cell, len(places), fetchedCount, count)

	return &model.NearbyResponse{
		OK:    true,
		Items: out,
		Meta: model.NearbyMeta{
			Cell:     cell,
			RadiusKm: req.RadiusKm,
			Count:    &count,
		},
	}, nil
}

// buildCacheRecords はプロバイダの生要素をキャッシュレコードに正規化する
// 座標が取れない要素は捨てる。名前はname → name:enの順で拾い、なければnilのまま保存する
func (u *nearbyUseCaseImpl) buildCacheRecords(elements []model.OverpassElement, cellKey string, nowMs int64) []model.CacheRecord {
	var records []model.CacheRecord
	for i := range elements {
		el := &elements[i]
		lat, lon, ok := el.Coordinate()
		if !ok || math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
			continue
		}

		osmID := fmt.Sprintf("%s/%d", el.Type, el.ID)
		record := model.CacheRecord{
			PK:        cellKey,
			SK:        model.PlaceSortKeyPrefix + osmID,
			OsmID:     osmID,
			Lat:       lat,
			Lng:       lon,
			FetchedAt: nowMs,
			TTL:       nowMs/1000 + u.ttlSeconds,
		}

		if name, ok := el.Tags["name"]; ok && name != "" {
			record.Name = &name
		} else if nameEn, ok := el.Tags["name:en"]; ok && nameEn != "" {
			record.Name = &nameEn
		}
		if category, ok := el.Tags["amenity"]; ok && category != "" {
			record.Category = &category
		}
		if hours, ok := el.Tags["opening_hours"]; ok && hours != "" {
			record.OpeningHoursRaw = &hours
		}

		records = append(records, record)
	}
	return records
}
