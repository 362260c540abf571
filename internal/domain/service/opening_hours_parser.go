package service

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"NightOwl-App/internal/domain/model"
)

// dayTokenIndex OSM opening_hours形式の2文字曜日略称 → 曜日インデックス（日曜=0）
var dayTokenIndex = map[string]int{
	"Su": 0, "Mo": 1, "Tu": 2, "We": 3, "Th": 4, "Fr": 5, "Sa": 6,
}

var (
	dayTokenPattern  = regexp.MustCompile(`^([A-Z][a-z])(?:-([A-Z][a-z]))?$`)
	timeRangePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})$`)
	offTokenPattern  = regexp.MustCompile(`(?i)(^|[\s,])off($|[\s,])`)
)

// ParseOpeningHours はopening_hours文字列を週間スケジュールに変換する
// 文法は最小サブセット: "24/7"、";"区切りのルール、"Mo-Fr 09:00-17:00"形式の
// 曜日リスト＋時間帯リスト、"off"によるルール単位のスキップのみを扱う。
// 不正なトークンはエラーにせず黙って落とし、diagnosticsに記録して返す。
func ParseOpeningHours(raw string) (*model.WeeklySchedule, []string) {
	schedule := &model.WeeklySchedule{}
	var diagnostics []string

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return schedule, diagnostics
	}

	// 終日営業の特別表記
	if strings.EqualFold(raw, "24/7") {
		for d := 0; d < 7; d++ {
			schedule.Days[d].Ranges = []model.TimeRange{{Start: 0, End: 1440}}
		}
		return schedule, diagnostics
	}

	for _, rule := range strings.Split(raw, ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		parts := strings.Fields(rule)
		if len(parts) < 2 {
			diagnostics = append(diagnostics, fmt.Sprintf("rule:%s", rule))
			continue
		}
		daysPart := parts[0]
		timesJoined := strings.Join(parts[1:], " ")

		// "off"を含むルールは明示的な休業指定としてスキップする
		// （他のルールが同じ曜日に積んだ時間帯は取り消さない）
		if offTokenPattern.MatchString(timesJoined) {
			continue
		}

		days := expandDaySelectors(daysPart, &diagnostics)
		timeRanges := parseTimeSelectors(timesJoined, &diagnostics)

		for _, d := range days {
			schedule.Days[d].Ranges = append(schedule.Days[d].Ranges, timeRanges...)
		}
	}

	// 各曜日の時間帯を開始分で昇順ソート（深夜帯の終了分は順序に関与しない）
	for d := 0; d < 7; d++ {
		ranges := schedule.Days[d].Ranges
		sort.SliceStable(ranges, func(i, j int) bool {
			return ranges[i].Start < ranges[j].Start
		})
	}

	return schedule, diagnostics
}

// expandDaySelectors はカンマ区切りの曜日セレクタを曜日インデックス列に展開する
// 範囲指定は開始曜日から終了曜日まで循環的に前進する（土曜→日曜のラップを許容）
func expandDaySelectors(daysPart string, diagnostics *[]string) []int {
	var days []int
	for _, seg := range strings.Split(daysPart, ",") {
		m := dayTokenPattern.FindStringSubmatch(seg)
		if m == nil {
			*diagnostics = append(*diagnostics, fmt.Sprintf("day:%s", seg))
			continue
		}
		start, ok := dayTokenIndex[m[1]]
		if !ok {
			*diagnostics = append(*diagnostics, fmt.Sprintf("day:%s", seg))
			continue
		}
		if m[2] == "" {
			days = append(days, start)
			continue
		}
		end, ok := dayTokenIndex[m[2]]
		if !ok {
			*diagnostics = append(*diagnostics, fmt.Sprintf("day:%s", seg))
			continue
		}
		for i := start; ; i = (i + 1) % 7 {
			days = append(days, i)
			if i == end {
				break
			}
		}
	}
	return days
}

// parseTimeSelectors はカンマ区切りの"HH:MM-HH:MM"トークン列を分単位の時間帯に変換する
func parseTimeSelectors(timesJoined string, diagnostics *[]string) []model.TimeRange {
	var ranges []model.TimeRange
	for _, token := range strings.Split(timesJoined, ",") {
		token = strings.TrimSpace(token)
		m := timeRangePattern.FindStringSubmatch(token)
		if m == nil {
			*diagnostics = append(*diagnostics, fmt.Sprintf("time:%s", token))
			continue
		}
		sh, _ := strconv.Atoi(m[1])
		sm, _ := strconv.Atoi(m[2])
		eh, _ := strconv.Atoi(m[3])
		em, _ := strconv.Atoi(m[4])
		ranges = append(ranges, model.TimeRange{
			Start: sh*60 + sm,
			End:   eh*60 + em,
		})
	}
	return ranges
}
