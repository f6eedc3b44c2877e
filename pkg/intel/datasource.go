package intel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikelestevenzamora-tech/football-intel/internal/logger"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/transport"
)

// Datasource fetches the roster table from an external stats page and
// keeps a local cache of the raw HTML so repeated imports are offline
type Datasource struct {
	RosterURL string
	CachePath string
}

var (
	datasourceInstance *Datasource
	datasourceOnce     sync.Once
)

// GetDatasourceInstance returns the singleton instance of Datasource
func GetDatasourceInstance() *Datasource {
	datasourceOnce.Do(func() {
		datasourceInstance = &Datasource{
			RosterURL: Config.RosterURL,
			CachePath: filepath.Join(filepath.Dir(Config.RosterPath), "roster-cache.html"),
		}
	})
	return datasourceInstance
}

// get performs an HTTP GET request to the specified URL
func (f *Datasource) get(url string) ([]byte, error) {
	logger.Inform("HTTP get called for ", url)
	ret, err := transport.GetHtml(url)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// FetchRoster downloads the stats page and parses its player table into
// a dataset. The raw page is cached beside the roster file; delete the
// cache to force a refresh.
func (f *Datasource) FetchRoster() (*Dataset, error) {
	if f.RosterURL == "" {
		return nil, fmt.Errorf("no roster URL configured")
	}

	var body []byte
	if cached, err := os.ReadFile(f.CachePath); err == nil {
		logger.Debug("Returning roster page from cache", f.CachePath)
		body = cached
	} else {
		fetched, err := f.get(f.RosterURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch roster page: %w", err)
		}
		body = fetched
		if err := os.WriteFile(f.CachePath, body, 0644); err != nil {
			logger.Warn("Failed to write roster cache", f.CachePath, err)
			// Continue processing even if caching fails
		}
	}

	header, rows, err := parseStatsTable(string(body))
	if err != nil {
		return nil, err
	}

	dataset, err := buildPlayers(header, rows)
	if err != nil {
		return nil, err
	}

	logger.Info("Fetched roster", f.RosterURL, dataset.Len(), "players")
	return dataset, nil
}

// parseStatsTable extracts the first table containing a Player column
// from an HTML page. Stats sites render one header row (sometimes under
// a grouping row, which data-stat attributes disambiguate) followed by
// one row per player.
func parseStatsTable(html string) ([]string, [][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	var header []string
	var rows [][]string

	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		var candidate []string
		table.Find("thead tr").Last().Find("th").Each(func(j int, th *goquery.Selection) {
			candidate = append(candidate, strings.TrimSpace(th.Text()))
		})

		if !containsHeader(candidate, "Player") {
			return true // keep looking
		}

		header = candidate
		table.Find("tbody tr").Each(func(j int, tr *goquery.Selection) {
			// Repeated header rows are interleaved on long tables
			if tr.HasClass("thead") {
				return
			}
			var row []string
			tr.Find("th, td").Each(func(k int, cell *goquery.Selection) {
				row = append(row, strings.TrimSpace(cell.Text()))
			})
			if len(row) > 0 {
				rows = append(rows, row)
			}
		})
		return false
	})

	if header == nil {
		return nil, nil, fmt.Errorf("could not find a player stats table in page")
	}
	return header, rows, nil
}

func containsHeader(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}
