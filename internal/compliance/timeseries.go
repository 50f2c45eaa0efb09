package compliance

import (
	"fmt"
	"sort"
	"time"

	"qara/internal/compliance/models"
)

// DefaultWindowMonths is the trailing window applied when no period is requested.
const DefaultWindowMonths = 12

// DefaultWindow returns the trailing twelve-month period ending at now.
func DefaultWindow(now time.Time) models.Period {
	return models.Period{Start: now.AddDate(0, -DefaultWindowMonths, 0), End: now}
}

// BucketKey returns the bucket an instant falls into.
//
// Week keys number weeks within the month, "YYYY-W{ceil(day/7)}", so they
// only sort correctly within one year. Consumers depend on this exact format.
func BucketKey(t time.Time, g models.Granularity) string {
	if g == models.GranularityWeek {
		return fmt.Sprintf("%d-W%d", t.Year(), (t.Day()+6)/7)
	}
	return t.Format("2006-01")
}

type bucketAcc struct {
	bucket models.TimeseriesBucket
	scores []*float64
	rates  []*float64
}

// Timeseries groups audits by start date into buckets and rolls up their
// findings and actions. Audits without a start date are left out. Buckets are
// sorted by ascending key.
func (e *Engine) Timeseries(d Dataset, g models.Granularity) models.Timeseries {
	if !g.IsValid() {
		g = models.GranularityMonth
	}

	buckets := make(map[string]*bucketAcc)
	bucketOfAudit := make(map[int64]*bucketAcc, len(d.Audits))
	for _, a := range d.Audits {
		if a.StartDate == nil {
			continue
		}
		key := BucketKey(*a.StartDate, g)
		acc, ok := buckets[key]
		if !ok {
			acc = &bucketAcc{bucket: models.TimeseriesBucket{Period: key}}
			buckets[key] = acc
		}
		acc.bucket.AuditsCount++
		acc.scores = append(acc.scores, a.Score)
		acc.rates = append(acc.rates, a.ConformityRate)
		bucketOfAudit[a.ID] = acc
	}

	bucketOfFinding := make(map[int64]*bucketAcc, len(d.Findings))
	for _, f := range d.Findings {
		acc, ok := bucketOfAudit[f.AuditID]
		if !ok {
			continue
		}
		bucketOfFinding[f.ID] = acc
		acc.bucket.FindingsCount++
		switch f.FindingType {
		case models.FindingNCMajor:
			acc.bucket.NCMajorCount++
		case models.FindingNCMinor:
			acc.bucket.NCMinorCount++
		}
	}

	for _, a := range d.Actions {
		acc, ok := bucketOfFinding[a.FindingID]
		if !ok {
			continue
		}
		acc.bucket.ActionsCreated++
		if a.Status.IsDone() {
			acc.bucket.ActionsCompleted++
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := models.Timeseries{Granularity: g, Buckets: make([]models.TimeseriesBucket, 0, len(keys))}
	for _, k := range keys {
		acc := buckets[k]
		avg, _ := meanOf(acc.scores)
		acc.bucket.AverageScore = round1(avg)
		avg, _ = meanOf(acc.rates)
		acc.bucket.ConformityRate = round1(avg)
		out.Buckets = append(out.Buckets, acc.bucket)
	}
	return out
}
