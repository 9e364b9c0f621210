package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// Grid files are bzip2-compressed text: a version tag, a header line with
// width, height, cellsize and the no-data sentinel, then one line per row.

const gridFileVersion = 1

func WriteFloatGrid(filename string, g *Grid[float64]) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "TERRAINX GRID %d\n", gridFileVersion)
	noDataF := strconv.FormatFloat(g.NoData(), 'f', -1, 64)
	cellSizeF := strconv.FormatFloat(g.CellSize(), 'f', -1, 64)
	fmt.Fprintf(w, "%d %d %s %s\n", g.Width(), g.Height(), cellSizeF, noDataF)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, strconv.FormatFloat(g.At(x, y), 'f', -1, 64))
		}
		fmt.Fprint(w, "\n")
	}

	return w.Flush()
}

func ReadFloatGrid(filename string) (*Grid[float64], error) {
	header, scanner, closeFn, err := openGridFile(filename)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	noData, err := strconv.ParseFloat(header[3], 64)
	if err != nil {
		return nil, fmt.Errorf("grid file %s: bad no-data value: %w", filename, err)
	}

	g := NewGrid[float64](header.width(), header.height(), header.cellSize(), noData)
	for y := 0; y < g.Height(); y++ {
		fields, err := scanRow(scanner, g.Width(), filename, y)
		if err != nil {
			return nil, err
		}
		for x, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("grid file %s: row %d: %w", filename, y, err)
			}
			g.Set(x, y, v)
		}
	}
	return g, nil
}

func WriteLabelGrid(filename string, g *Grid[int32]) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "TERRAINX GRID %d\n", gridFileVersion)
	cellSizeF := strconv.FormatFloat(g.CellSize(), 'f', -1, 64)
	fmt.Fprintf(w, "%d %d %s %d\n", g.Width(), g.Height(), cellSizeF, g.NoData())

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, strconv.FormatInt(int64(g.At(x, y)), 10))
		}
		fmt.Fprint(w, "\n")
	}

	return w.Flush()
}

func ReadLabelGrid(filename string) (*Grid[int32], error) {
	header, scanner, closeFn, err := openGridFile(filename)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	noData, err := strconv.ParseInt(header[3], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("grid file %s: bad no-data value: %w", filename, err)
	}

	g := NewGrid[int32](header.width(), header.height(), header.cellSize(), int32(noData))
	for y := 0; y < g.Height(); y++ {
		fields, err := scanRow(scanner, g.Width(), filename, y)
		if err != nil {
			return nil, err
		}
		for x, field := range fields {
			v, err := strconv.ParseInt(field, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("grid file %s: row %d: %w", filename, y, err)
			}
			g.Set(x, y, int32(v))
		}
	}
	return g, nil
}

type gridHeader []string

func (h gridHeader) width() int {
	w, _ := strconv.Atoi(h[0])
	return w
}

func (h gridHeader) height() int {
	v, _ := strconv.Atoi(h[1])
	return v
}

func (h gridHeader) cellSize() float64 {
	v, _ := strconv.ParseFloat(h[2], 64)
	return v
}

func openGridFile(filename string) (gridHeader, *bufio.Scanner, func(), error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, nil, err
	}

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		f.Close()
		return nil, nil, nil, err
	}

	scanner := bufio.NewScanner(bz)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)

	if !scanner.Scan() {
		f.Close()
		return nil, nil, nil, fmt.Errorf("grid file %s: missing version line", filename)
	}
	var version int
	if _, err := fmt.Sscanf(scanner.Text(), "TERRAINX GRID %d", &version); err != nil {
		f.Close()
		return nil, nil, nil, fmt.Errorf("grid file %s: bad version line: %w", filename, err)
	}
	if version != gridFileVersion {
		f.Close()
		return nil, nil, nil, fmt.Errorf("grid file %s: unsupported version %d", filename, version)
	}

	if !scanner.Scan() {
		f.Close()
		return nil, nil, nil, fmt.Errorf("grid file %s: missing header line", filename)
	}
	header := gridHeader(strings.Fields(scanner.Text()))
	if len(header) != 4 {
		f.Close()
		return nil, nil, nil, fmt.Errorf("grid file %s: header must have 4 fields, got %d", filename, len(header))
	}

	closeFn := func() {
		bz.Close()
		f.Close()
	}
	return header, scanner, closeFn, nil
}

func scanRow(scanner *bufio.Scanner, width int, filename string, y int) ([]string, error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("grid file %s: unexpected EOF at row %d", filename, y)
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) != width {
		return nil, fmt.Errorf("grid file %s: row %d has %d values, want %d", filename, y, len(fields), width)
	}
	return fields, nil
}
