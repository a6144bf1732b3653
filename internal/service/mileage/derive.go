// Package mileage turns a day's sequence of branch check-ins into trips with
// mileage taken from the reference chart.
package mileage

import (
	"fmt"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
)

// Directory resolves branch display names to chart codes.
type Directory interface {
	Code(name string) (string, error)
}

// Chart returns the distance between two branch codes.
type Chart interface {
	Distance(from, to string) (float64, error)
}

// Deriver builds trips from normalized records. It holds only read-only
// reference data and is safe for concurrent use.
type Deriver struct {
	directory Directory
	chart     Chart
}

func NewDeriver(directory Directory, chart Chart) *Deriver {
	return &Deriver{
		directory: directory,
		chart:     chart,
	}
}

// Derive expects records sorted by check-in time. Dates are processed in the
// order they first appear; within a date each record is paired with the one
// before it. Pairs at the same branch and pairs with a zero chart distance are
// left out. The first unmapped branch or chart miss aborts the derivation.
func (d *Deriver) Derive(records []models.Record) ([]models.Trip, error) {
	trips := make([]models.Trip, 0)

	for _, date := range distinctDates(records) {
		day := recordsOn(records, date)
		if len(day) < 2 {
			continue
		}

		prev := day[0].Branch
		for _, rec := range day[1:] {
			from, to := prev, rec.Branch
			prev = to

			if from == to {
				continue
			}

			distance, err := d.distance(from, to)
			if err != nil {
				return nil, fmt.Errorf("%s %s -> %s: %w", date, from, to, err)
			}
			if distance == 0 {
				continue
			}

			trips = append(trips, models.Trip{
				Date:     date,
				From:     from,
				To:       to,
				Distance: distance,
			})
		}
	}

	return trips, nil
}

func (d *Deriver) distance(fromBranch, toBranch string) (float64, error) {
	from, err := d.directory.Code(fromBranch)
	if err != nil {
		return 0, err
	}
	to, err := d.directory.Code(toBranch)
	if err != nil {
		return 0, err
	}
	return d.chart.Distance(from, to)
}

// distinctDates returns check-in dates in order of first appearance.
func distinctDates(records []models.Record) []string {
	seen := make(map[string]struct{})
	dates := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.DateIn]; ok {
			continue
		}
		seen[r.DateIn] = struct{}{}
		dates = append(dates, r.DateIn)
	}
	return dates
}

func recordsOn(records []models.Record, date string) []models.Record {
	day := make([]models.Record, 0)
	for _, r := range records {
		if r.DateIn == date {
			day = append(day, r)
		}
	}
	return day
}
