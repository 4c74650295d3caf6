package worker

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ameyarj/chima-ads/models"
)

// staleAfter bounds how long a job may sit in processing. A render takes at
// most five minutes, so anything older was orphaned by a crash or restart.
const staleAfter = 30 * time.Minute

// SweepStaleJobs fails jobs stranded in processing past the deadline. The
// terminal-status guard in the update keeps it from touching jobs that
// finished between the query and the write.
func (p *Processor) SweepStaleJobs() {
	cutoff := time.Now().UTC().Add(-staleAfter)

	res := p.DB.Model(&models.Video{}).
		Where("status = ? AND created_at < ?", models.StatusProcessing, cutoff).
		Updates(map[string]interface{}{
			"status": models.StatusFailed,
			"error":  "job abandoned: no render result within 30 minutes",
		})
	if res.Error != nil {
		log.Errorf("Stale job sweep failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Warnf("Stale job sweep failed %d abandoned jobs", res.RowsAffected)
	}
}
