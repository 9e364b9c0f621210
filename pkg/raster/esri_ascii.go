package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/Terrainx/pkg"
	"github.com/lintang-b-s/Terrainx/pkg/datastructure"
)

// Esri ASCII grid codec. The format is a short key/value header (ncols,
// nrows, xllcorner|xllcenter, yllcorner|yllcenter, cellsize, optional
// NODATA_value) followed by nrows lines of ncols samples, north to south.
// Grid row 0 holds the first (northernmost) data line.

// Georeference anchors a grid to world coordinates: the lower-left corner
// (or cell center, when the source header was center-registered).
type Georeference struct {
	Xll              float64
	Yll              float64
	CenterRegistered bool
}

func ReadEsriASCIIFile(path string) (*datastructure.Grid[float64], Georeference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Georeference{}, err
	}
	defer f.Close()
	return ReadEsriASCII(f)
}

func ReadEsriASCII(r io.Reader) (*datastructure.Grid[float64], Georeference, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)

	var (
		ncols, nrows   = -1, -1
		cellSize       = -1.0
		noData         = pkg.DEM_NODATA
		georef         Georeference
		pendingSamples []string
	)

	// header keys may appear in any order; the first non-header token starts
	// the sample block.
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])

		// a bare header keyword has no value to parse; only sample rows may
		// carry a single token
		switch key {
		case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter",
			"cellsize", "nodata_value":
			if len(fields) < 2 {
				return nil, georef, fmt.Errorf("esri ascii: header line %q is missing its value", line)
			}
		}

		isHeader := true
		var err error
		switch key {
		case "ncols":
			ncols, err = strconv.Atoi(fields[1])
		case "nrows":
			nrows, err = strconv.Atoi(fields[1])
		case "xllcorner":
			georef.Xll, err = strconv.ParseFloat(fields[1], 64)
		case "yllcorner":
			georef.Yll, err = strconv.ParseFloat(fields[1], 64)
		case "xllcenter":
			georef.Xll, err = strconv.ParseFloat(fields[1], 64)
			georef.CenterRegistered = true
		case "yllcenter":
			georef.Yll, err = strconv.ParseFloat(fields[1], 64)
			georef.CenterRegistered = true
		case "cellsize":
			cellSize, err = strconv.ParseFloat(fields[1], 64)
		case "nodata_value":
			noData, err = strconv.ParseFloat(fields[1], 64)
		default:
			isHeader = false
		}
		if err != nil {
			return nil, georef, fmt.Errorf("esri ascii: bad header value %q: %w", line, err)
		}
		if !isHeader {
			pendingSamples = fields
			break
		}
	}

	if ncols <= 0 || nrows <= 0 {
		return nil, georef, fmt.Errorf("esri ascii: missing or invalid ncols/nrows (%d/%d)", ncols, nrows)
	}
	if cellSize <= 0 {
		return nil, georef, fmt.Errorf("esri ascii: missing or non-positive cellsize")
	}

	g := datastructure.NewGrid[float64](ncols, nrows, cellSize, noData)

	i := 0
	store := func(fields []string) error {
		for _, field := range fields {
			if i >= ncols*nrows {
				return fmt.Errorf("esri ascii: more than %d samples", ncols*nrows)
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return fmt.Errorf("esri ascii: bad sample %q: %w", field, err)
			}
			g.Set(i%ncols, i/ncols, v)
			i++
		}
		return nil
	}

	if err := store(pendingSamples); err != nil {
		return nil, georef, err
	}
	for scanner.Scan() {
		if err := store(strings.Fields(scanner.Text())); err != nil {
			return nil, georef, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, georef, err
	}
	if i != ncols*nrows {
		return nil, georef, fmt.Errorf("esri ascii: got %d samples, want %d", i, ncols*nrows)
	}

	return g, georef, nil
}

func WriteEsriASCIIFile(path string, g *datastructure.Grid[float64], georef Georeference) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteEsriASCII(f, g, georef)
}

func WriteEsriASCII(w io.Writer, g *datastructure.Grid[float64], georef Georeference) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "ncols %d\n", g.Width())
	fmt.Fprintf(bw, "nrows %d\n", g.Height())
	xKey, yKey := "xllcorner", "yllcorner"
	if georef.CenterRegistered {
		xKey, yKey = "xllcenter", "yllcenter"
	}
	fmt.Fprintf(bw, "%s %s\n", xKey, strconv.FormatFloat(georef.Xll, 'f', -1, 64))
	fmt.Fprintf(bw, "%s %s\n", yKey, strconv.FormatFloat(georef.Yll, 'f', -1, 64))
	fmt.Fprintf(bw, "cellsize %s\n", strconv.FormatFloat(g.CellSize(), 'f', -1, 64))
	fmt.Fprintf(bw, "NODATA_value %s\n", strconv.FormatFloat(g.NoData(), 'f', -1, 64))

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				fmt.Fprint(bw, " ")
			}
			fmt.Fprint(bw, strconv.FormatFloat(g.At(x, y), 'f', -1, 64))
		}
		fmt.Fprint(bw, "\n")
	}

	return bw.Flush()
}
