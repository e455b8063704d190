package collector

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ShillerData holds the latest readings from a local Shiller dataset export.
// Either field may be nil when the column is empty for the newest row.
type ShillerData struct {
	CAPE     *float64
	Earnings *float64 // trailing 12-month real earnings
}

// LoadShiller reads a CSV export of the Shiller monthly dataset and returns
// the newest row's CAPE and earnings. Expected header columns (case
// insensitive): date, cape, earnings. Rows are assumed oldest to newest.
func LoadShiller(path string) (*ShillerData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shiller open: %w", err)
	}
	defer f.Close()
	return parseShiller(f)
}

func parseShiller(r io.Reader) (*ShillerData, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("shiller header: %w", err)
	}
	capeCol, earnCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "cape":
			capeCol = i
		case "earnings":
			earnCol = i
		}
	}
	if capeCol < 0 && earnCol < 0 {
		return nil, fmt.Errorf("shiller: no cape or earnings column in header %v", header)
	}

	var last []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("shiller read: %w", err)
		}
		last = row
	}
	if last == nil {
		return nil, fmt.Errorf("shiller: no data rows")
	}

	d := &ShillerData{}
	if capeCol >= 0 && capeCol < len(last) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(last[capeCol]), 64); err == nil {
			d.CAPE = &v
		}
	}
	if earnCol >= 0 && earnCol < len(last) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(last[earnCol]), 64); err == nil {
			d.Earnings = &v
		}
	}
	return d, nil
}
