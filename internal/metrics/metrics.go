package metrics

import "sync/atomic"

var (
	jobsSucceeded  int64
	jobsFailed     int64
	speechesScored int64
	recordsSkipped int64
)

func IncJobsSucceeded()  { atomic.AddInt64(&jobsSucceeded, 1) }
func IncJobsFailed()     { atomic.AddInt64(&jobsFailed, 1) }
func IncSpeechesScored() { atomic.AddInt64(&speechesScored, 1) }

func AddRecordsSkipped(n int) { atomic.AddInt64(&recordsSkipped, int64(n)) }

func Snapshot() map[string]int64 {
	return map[string]int64{
		"jobs_succeeded":  atomic.LoadInt64(&jobsSucceeded),
		"jobs_failed":     atomic.LoadInt64(&jobsFailed),
		"speeches_scored": atomic.LoadInt64(&speechesScored),
		"records_skipped": atomic.LoadInt64(&recordsSkipped),
	}
}
