package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/lintang-b-s/Terrainx/pkg"
	"github.com/lintang-b-s/Terrainx/pkg/datastructure"
	"github.com/lintang-b-s/Terrainx/pkg/hydrology"
	"github.com/lintang-b-s/Terrainx/pkg/logger"
	"github.com/lintang-b-s/Terrainx/pkg/raster"
	"github.com/lintang-b-s/Terrainx/pkg/terrain"
	"go.uber.org/zap"
)

var (
	demPath    = flag.String("dem", "", "input DEM (Esri ASCII grid, or bzip2 grid when the path ends in .bz2)")
	op         = flag.String("op", "slope_percent", "operation: a terrain attribute name, watersheds, fill, spi or cti")
	outPath    = flag.String("out", "out.asc", "output raster path (Esri ASCII grid)")
	gridOut    = flag.String("grid_out", "", "optional bzip2 grid output path for the result raster")
	labelsOut  = flag.String("labels_out", "", "optional bzip2 label grid output path (watersheds only)")
	fill       = flag.Bool("fill", false, "also fill depressions while labeling watersheds")
	unitFactor = flag.Float64("unit_factor", 1.0, "elevation unit factor (0.3048 for DEMs in feet)")
	flowPath   = flag.String("flow", "", "flow accumulation raster (spi/cti)")
	slopePath  = flag.String("slope", "", "percent slope raster (spi/cti)")
	workers    = flag.Int("workers", 0, "worker count for per-cell attributes (0 = NumCPU)")
)

func main() {
	flag.Parse()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	switch *op {
	case "watersheds":
		runWatersheds(log)
	case "fill":
		runFill(log)
	case "spi", "cti":
		runDerivedIndex(log, *op)
	default:
		runAttribute(log)
	}
}

func readDEM(log *zap.Logger) (*datastructure.Grid[float64], raster.Georeference) {
	if *demPath == "" {
		panic("-dem is required")
	}

	var (
		dem    *datastructure.Grid[float64]
		georef raster.Georeference
		err    error
	)
	if strings.HasSuffix(*demPath, ".bz2") {
		dem, err = datastructure.ReadFloatGrid(*demPath)
	} else {
		dem, georef, err = raster.ReadEsriASCIIFile(*demPath)
	}
	if err != nil {
		panic(err)
	}

	log.Info("DEM loaded",
		zap.String("path", *demPath),
		zap.Int("width", dem.Width()),
		zap.Int("height", dem.Height()),
		zap.Float64("cellsize", dem.CellSize()))
	return dem, georef
}

// writeResult writes the result raster to -out and, when -grid_out is set,
// also as a bzip2 grid.
func writeResult(log *zap.Logger, g *datastructure.Grid[float64], georef raster.Georeference, what string) {
	if err := raster.WriteEsriASCIIFile(*outPath, g, georef); err != nil {
		panic(err)
	}
	log.Info(what+" written", zap.String("path", *outPath))

	if *gridOut != "" {
		if err := datastructure.WriteFloatGrid(*gridOut, g); err != nil {
			panic(err)
		}
		log.Info("compressed grid written", zap.String("path", *gridOut))
	}
}

func runAttribute(log *zap.Logger) {
	attrib := pkg.GetTerrainAttribute(*op)
	if attrib == pkg.UNKNOWN_ATTRIBUTE {
		panic(fmt.Sprintf("unknown operation %q", *op))
	}

	dem, georef := readDEM(log)
	engine := terrain.NewAttributeEngine(*unitFactor, *workers, log)
	attribs := engine.Compute(dem, attrib)

	writeResult(log, attribs, georef, "attribute raster")
}

func runWatersheds(log *zap.Logger) {
	dem, georef := readDEM(log)

	labels := hydrology.FindWatersheds(dem, *fill, log)

	for _, area := range hydrology.WatershedAreas(labels) {
		fmt.Printf("Watershed %d has area %d\n", area.Label, area.Cells)
	}

	if *labelsOut != "" {
		if err := datastructure.WriteLabelGrid(*labelsOut, labels); err != nil {
			panic(err)
		}
		log.Info("label grid written", zap.String("path", *labelsOut))
	}
	if *fill {
		writeResult(log, dem, georef, "filled DEM")
	}
}

func runFill(log *zap.Logger) {
	dem, georef := readDEM(log)

	hydrology.FillDepressions(dem, log)

	writeResult(log, dem, georef, "filled DEM")
}

func runDerivedIndex(log *zap.Logger, name string) {
	if *flowPath == "" || *slopePath == "" {
		panic("-flow and -slope are required for spi/cti")
	}
	flow, georef, err := raster.ReadEsriASCIIFile(*flowPath)
	if err != nil {
		panic(err)
	}
	slope, _, err := raster.ReadEsriASCIIFile(*slopePath)
	if err != nil {
		panic(err)
	}

	indexFunc := terrain.SPI
	if name == "cti" {
		indexFunc = terrain.CTI
	}
	result, err := indexFunc(flow, slope)
	if err != nil {
		panic(err)
	}

	writeResult(log, result, georef, name+" raster")
}
