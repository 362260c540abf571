package service

import (
	"fmt"

	"NightOwl-App/internal/domain/model"
)

// EvaluateOpenNow は週間スケジュールに対して指定時点の営業状態を判定する
// dayIndexは日曜=0〜土曜=6、minuteOfDayは0時からの経過分
//
// 判定は2段階:
//  1. 今日の時間帯のうち同日内に閉まるもの（End > Start）で現在時刻を含む最初の一致
//  2. 昨日の時間帯のうち深夜帯（End <= Start）で今日の現在時刻がまだ閉店前のもの
//
// いずれもソート済みリストの先頭一致を採用する（重複時間帯の最遅閉店は探さない）
func EvaluateOpenNow(schedule *model.WeeklySchedule, dayIndex, minuteOfDay int) model.OpenStatus {
	if schedule == nil || dayIndex < 0 || dayIndex > 6 {
		return model.OpenStatus{Open: false}
	}

	prevDay := (dayIndex + 6) % 7

	for _, r := range schedule.Days[dayIndex].Ranges {
		if r.End > r.Start && minuteOfDay >= r.Start && minuteOfDay < r.End {
			return model.OpenStatus{
				Open:           true,
				MinutesToClose: r.End - minuteOfDay,
				ClosesAtLocal:  Format12Hour(r.End),
			}
		}
	}

	// 昨日開始の深夜帯は今日の分スケールで継続しているとみなす
	for _, r := range schedule.Days[prevDay].Ranges {
		if r.IsOvernight() && minuteOfDay < r.End {
			return model.OpenStatus{
				Open:           true,
				MinutesToClose: r.End - minuteOfDay,
				ClosesAtLocal:  Format12Hour(r.End),
			}
		}
	}

	return model.OpenStatus{Open: false}
}

// Format12Hour は分単位の時刻を12時間表記（"H:MM AM/PM"）に整形する
func Format12Hour(minutes int) string {
	h := (minutes / 60) % 24
	m := minutes % 60
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := (h+11)%12 + 1
	return fmt.Sprintf("%d:%02d %s", h12, m, ampm)
}
