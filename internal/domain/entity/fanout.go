// internal/domain/entity/fanout.go
package entity

import (
	"time"
)

// FanoutJob carries a snapshot of an updated flight through the dispatch
// queue. The snapshot is taken after the update is applied so workers never
// re-read a document that may have changed again.
type FanoutJob struct {
	Flight     *Flight
	EnqueuedAt time.Time
}
