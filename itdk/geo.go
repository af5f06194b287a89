package itdk

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Coordinate is a node location from the .nodes.geo file.
type Coordinate struct {
	Lat float64
	Lng float64
}

// LoadGeo parses a .nodes.geo file into a node-id → coordinate map.
// Entries are tab-separated:
//
//	node.geo N<id>:\t<continent>\t<country>\t<region>\t<city>\t<lat>\t<long>\t...
func LoadGeo(log *slog.Logger, path string) (map[string]Coordinate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geo file: %w", err)
	}
	defer f.Close()

	log.Info("loading ITDK node geo entries", "file", path)
	geo := make(map[string]Coordinate)
	var badLines int64

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 7 || !strings.HasPrefix(fields[0], "node.geo ") {
			badLines++
			log.Warn("cannot process geo line", "line", line)
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(fields[0], "node.geo "), ":")
		lat, errLat := strconv.ParseFloat(fields[5], 64)
		lng, errLng := strconv.ParseFloat(fields[6], 64)
		if errLat != nil || errLng != nil {
			badLines++
			continue
		}
		geo[id] = Coordinate{Lat: lat, Lng: lng}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read geo file: %w", err)
	}

	log.Info("loaded ITDK node geo entries",
		"entries", humanize.Comma(int64(len(geo))), "badLines", badLines)
	return geo, nil
}

// FilterGeo drops every node that has no geo coordinates and returns
// the number removed. Nodes without a location cannot be attributed to
// a city, so the original pipeline excludes them before graph
// construction.
func (n Nodes) FilterGeo(log *slog.Logger, geo map[string]Coordinate) int {
	removed := 0
	for id := range n {
		if _, ok := geo[id]; !ok {
			delete(n, id)
			removed++
		}
	}
	log.Info("removed nodes without geo coordinates",
		"removed", humanize.Comma(int64(removed)),
		"remaining", humanize.Comma(int64(len(n))))
	return removed
}
