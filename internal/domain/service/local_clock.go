package service

import (
	"fmt"
	"time"
)

// LocalClock 営業判定に使うローカル現在時刻を提供する能力
// 将来的に店舗ごとのタイムゾーンへ一般化できるよう、評価器からは分離している
type LocalClock interface {
	// Now 現在のローカル曜日インデックス（日曜=0）と0時からの経過分を返す
	Now() (dayIndex int, minuteOfDay int)
}

// serviceTimezone 営業判定に使用する固定タイムゾーン
// MVPでは単一タイムゾーンに固定する（意図的な簡略化であり将来の一般化ポイント）
const serviceTimezone = "America/Los_Angeles"

// FixedZoneClock 固定タイムゾーンで現在時刻を返すLocalClock実装
type FixedZoneClock struct {
	location *time.Location
}

// NewFixedZoneClock サービス標準タイムゾーンのクロックを作成
func NewFixedZoneClock() (*FixedZoneClock, error) {
	loc, err := time.LoadLocation(serviceTimezone)
	if err != nil {
		return nil, fmt.Errorf("タイムゾーン %s の読み込みに失敗: %w", serviceTimezone, err)
	}
	return &FixedZoneClock{location: loc}, nil
}

// Now 現在のローカル曜日と経過分を返す
func (c *FixedZoneClock) Now() (int, int) {
	t := time.Now().In(c.location)
	return int(t.Weekday()), t.Hour()*60 + t.Minute()
}
