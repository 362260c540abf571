package model

// TimeRange 1日の中の営業時間帯（0時からの分単位）
// End <= Start の場合は日をまたいで翌日に閉店する深夜営業帯を表す
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsOvernight 日をまたぐ深夜営業帯かどうか
func (t TimeRange) IsOvernight() bool {
	return t.End <= t.Start
}

// DaySchedule 1日分の営業時間帯リスト（開始分で昇順ソート済み）
type DaySchedule struct {
	Ranges []TimeRange `json:"ranges"`
}

// WeeklySchedule 週間営業スケジュール（日曜=0 〜 土曜=6）
type WeeklySchedule struct {
	Days [7]DaySchedule `json:"days"`
}

// OpenStatus ある時点での営業判定結果
type OpenStatus struct {
	Open           bool   `json:"open"`
	MinutesToClose int    `json:"minutes_to_close,omitempty"`
	ClosesAtLocal  string `json:"closes_at_local,omitempty"`
}
