package services

import "time"

// SetEntryClock テスト用にエントリーサービスの時計を差し替える
func SetEntryClock(s EntryService, now func() time.Time) {
	s.(*entryService).now = now
}
