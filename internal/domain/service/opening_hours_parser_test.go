package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"NightOwl-App/internal/domain/model"
)

func TestParseOpeningHours(t *testing.T) {
	t.Run("空文字列は全曜日が空のスケジュールになる", func(t *testing.T) {
		schedule, diags := ParseOpeningHours("")
		for d := 0; d < 7; d++ {
			assert.Empty(t, schedule.Days[d].Ranges)
		}
		assert.Empty(t, diags)
	})

	t.Run("24/7は全曜日が終日営業になる", func(t *testing.T) {
		schedule, _ := ParseOpeningHours("24/7")
		for d := 0; d < 7; d++ {
			assert.Equal(t, []model.TimeRange{{Start: 0, End: 1440}}, schedule.Days[d].Ranges)
		}
	})

	t.Run("大文字小文字や前後の空白を無視して24/7を認識する", func(t *testing.T) {
		schedule, _ := ParseOpeningHours("  24/7  ")
		assert.Equal(t, []model.TimeRange{{Start: 0, End: 1440}}, schedule.Days[0].Ranges)
	})

	t.Run("平日の営業時間が月〜金にだけ入る", func(t *testing.T) {
		schedule, diags := ParseOpeningHours("Mo-Fr 09:00-17:00")
		expected := []model.TimeRange{{Start: 540, End: 1020}}
		for d := 1; d <= 5; d++ {
			assert.Equal(t, expected, schedule.Days[d].Ranges, "day %d", d)
		}
		assert.Empty(t, schedule.Days[0].Ranges)
		assert.Empty(t, schedule.Days[6].Ranges)
		assert.Empty(t, diags)
	})

	t.Run("offルールは自ルールのみスキップし他ルールの時間帯は残る", func(t *testing.T) {
		// offは時間帯を持たないため、先行ルールが土日に積んだ範囲は取り消されない
		schedule, _ := ParseOpeningHours("Mo-Su 10:00-22:00; Sa-Su off")
		expected := []model.TimeRange{{Start: 600, End: 1320}}
		assert.Equal(t, expected, schedule.Days[0].Ranges) // 日曜
		assert.Equal(t, expected, schedule.Days[6].Ranges) // 土曜
	})

	t.Run("曜日範囲は土曜から日曜へ循環的にラップする", func(t *testing.T) {
		schedule, _ := ParseOpeningHours("Fr-Mo 20:00-23:00")
		expected := []model.TimeRange{{Start: 1200, End: 1380}}
		for _, d := range []int{5, 6, 0, 1} {
			assert.Equal(t, expected, schedule.Days[d].Ranges, "day %d", d)
		}
		for _, d := range []int{2, 3, 4} {
			assert.Empty(t, schedule.Days[d].Ranges, "day %d", d)
		}
	})

	t.Run("カンマ区切りの曜日と複数時間帯を展開する", func(t *testing.T) {
		schedule, _ := ParseOpeningHours("Mo,We 09:00-12:00,13:00-17:00")
		expected := []model.TimeRange{
			{Start: 540, End: 720},
			{Start: 780, End: 1020},
		}
		assert.Equal(t, expected, schedule.Days[1].Ranges)
		assert.Equal(t, expected, schedule.Days[3].Ranges)
		assert.Empty(t, schedule.Days[2].Ranges)
	})

	t.Run("深夜帯はEndがStart以下のまま保持される", func(t *testing.T) {
		schedule, _ := ParseOpeningHours("Fr 22:00-02:00")
		assert.Equal(t, []model.TimeRange{{Start: 1320, End: 120}}, schedule.Days[5].Ranges)
		assert.True(t, schedule.Days[5].Ranges[0].IsOvernight())
	})

	t.Run("不正な曜日トークンは黙って捨てられdiagnosticsに残る", func(t *testing.T) {
		schedule, diags := ParseOpeningHours("Xx,Mo 10:00-12:00")
		assert.Equal(t, []model.TimeRange{{Start: 600, End: 720}}, schedule.Days[1].Ranges)
		assert.Contains(t, diags, "day:Xx")
	})

	t.Run("不正な時間トークンは黙って捨てられdiagnosticsに残る", func(t *testing.T) {
		schedule, diags := ParseOpeningHours("Mo 0900-1700,10:00-12:00")
		assert.Equal(t, []model.TimeRange{{Start: 600, End: 720}}, schedule.Days[1].Ranges)
		assert.Contains(t, diags, "time:0900-1700")
	})

	t.Run("各曜日の時間帯は開始分で昇順ソートされる", func(t *testing.T) {
		schedule, _ := ParseOpeningHours("Sa 16:00-20:00; Sa 08:00-11:00")
		expected := []model.TimeRange{
			{Start: 480, End: 660},
			{Start: 960, End: 1200},
		}
		assert.Equal(t, expected, schedule.Days[6].Ranges)
	})

	t.Run("曜日だけのルールはスキップされる", func(t *testing.T) {
		schedule, diags := ParseOpeningHours("Mo")
		assert.Empty(t, schedule.Days[1].Ranges)
		assert.NotEmpty(t, diags)
	})

	t.Run("重複するルールは両方保持される", func(t *testing.T) {
		schedule, _ := ParseOpeningHours("Mo 09:00-17:00; Mo 10:00-18:00")
		assert.Len(t, schedule.Days[1].Ranges, 2)
	})
}
