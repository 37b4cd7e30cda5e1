// Package forex は複数プロバイダからの為替レート照合を提供する。
package forex

import "time"

// PreviousBusinessDay は指定日時から見た直前の営業日（週末を除く暦日）を返す。
// 前日が日曜の場合はさらに2日、土曜の場合はさらに1日さかのぼる。
// この補正は1回だけ適用する（反復しない）。
// タイムゾーンのずれによるオフバイワンを避けるため、呼び出し側はUTCの時刻を渡すこと。
func PreviousBusinessDay(t time.Time) time.Time {
	prev := t.AddDate(0, 0, -1)
	switch prev.Weekday() {
	case time.Sunday:
		prev = prev.AddDate(0, 0, -2)
	case time.Saturday:
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}
