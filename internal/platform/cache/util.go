package cache

import (
	"time"
)

// TimeUntilNext7PM は次の午後7時（インド時間）までの期間を返します。
// NSEのEODデータはその頃までに確定するため、キャッシュの上限TTLとして使います。
func TimeUntilNext7PM() time.Duration {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	now := time.Now().In(loc)

	// 次の午後7時を計算
	next7pm := time.Date(now.Year(), now.Month(), now.Day(), 19, 0, 0, 0, loc)

	// 今日の午後7時が既に過ぎている場合は明日の午後7時を使用
	if now.After(next7pm) {
		next7pm = next7pm.Add(24 * time.Hour)
	}

	return next7pm.Sub(now)
}
