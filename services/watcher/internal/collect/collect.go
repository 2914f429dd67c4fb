// Package collect gathers live current conditions for every supported region.
package collect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/internal/region"
	"github.com/smartkisan/kisan-advisor/internal/weather"
)

// Fetcher returns a live forecast. Implementations must not substitute mock
// data.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lng float64, days int) (models.WeatherReport, error)
}

// maxParallel bounds concurrent provider requests.
const maxParallel = 4

// Snapshots fetches current conditions for every region, stamped with ts.
// Regions that fail are skipped and reported through the joined error; the
// error is nil only when every region succeeded.
func Snapshots(ctx context.Context, f Fetcher, regions []region.Info, ts time.Time) ([]models.WeatherSnapshot, error) {
	results := make([]*models.WeatherSnapshot, len(regions))
	errs := make([]error, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, info := range regions {
		g.Go(func() error {
			report, err := f.Fetch(gctx, info.Coordinates.Lat, info.Coordinates.Lng, 1)
			if err != nil {
				errs[i] = fmt.Errorf("fetch %s: %w", info.Key, err)
				return nil
			}
			snap := models.SnapshotFromCurrent(info.Key, ts, weather.SourceOpenMeteo, report.Current)
			results[i] = &snap
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.WeatherSnapshot, 0, len(regions))
	for _, snap := range results {
		if snap != nil {
			out = append(out, *snap)
		}
	}
	return out, errors.Join(errs...)
}
