package usecases

import (
	"errors"
	"strings"

	"github.com/lintang-b-s/Terrainx/pkg"
	"github.com/lintang-b-s/Terrainx/pkg/datastructure"
	"github.com/lintang-b-s/Terrainx/pkg/hydrology"
	"github.com/lintang-b-s/Terrainx/pkg/raster"
	"github.com/lintang-b-s/Terrainx/pkg/spatialindex"
	"github.com/lintang-b-s/Terrainx/pkg/terrain"
	"github.com/lintang-b-s/Terrainx/pkg/util"
	"go.uber.org/zap"
)

// TerrainService runs the terrain engines over Esri ASCII raster payloads.
type TerrainService struct {
	log *zap.Logger
}

func NewTerrainService(log *zap.Logger) *TerrainService {
	return &TerrainService{log: log}
}

func (s *TerrainService) parseRaster(name, asciiGrid string) (*datastructure.Grid[float64], raster.Georeference, error) {
	g, georef, err := raster.ReadEsriASCII(strings.NewReader(asciiGrid))
	if err != nil {
		return nil, georef, util.WrapErrorf(err, util.ErrBadParamInput, "parsing %s raster: %v", name, err)
	}
	return g, georef, nil
}

func writeRaster(g *datastructure.Grid[float64], georef raster.Georeference) (string, error) {
	var sb strings.Builder
	if err := raster.WriteEsriASCII(&sb, g, georef); err != nil {
		return "", util.WrapErrorf(err, util.ErrInternalServerError, "writing raster: %v", err)
	}
	return sb.String(), nil
}

func (s *TerrainService) TerrainAttribute(demASCII string, attribute pkg.TerrainAttribute, unitFactor float64) (string, error) {
	dem, georef, err := s.parseRaster("dem", demASCII)
	if err != nil {
		return "", err
	}

	engine := terrain.NewAttributeEngine(unitFactor, 0, s.log)
	attribs := engine.Compute(dem, attribute)

	return writeRaster(attribs, georef)
}

func (s *TerrainService) Watersheds(demASCII string, fill bool) (string, string,
	[]hydrology.WatershedArea, []spatialindex.WatershedExtent, error) {

	dem, georef, err := s.parseRaster("dem", demASCII)
	if err != nil {
		return "", "", nil, nil, err
	}

	labels := hydrology.FindWatersheds(dem, fill, s.log)
	areas := hydrology.WatershedAreas(labels)

	rt := spatialindex.NewRtree()
	rt.Build(labels, s.log)
	extents := rt.SearchWindow(0, 0, labels.Width()-1, labels.Height()-1)

	labelsF := datastructure.NewGrid[float64](0, 0, 0, float64(pkg.LABEL_NODATA))
	labelsF.CopyProps(labels)
	for y := 0; y < labels.Height(); y++ {
		for x := 0; x < labels.Width(); x++ {
			labelsF.Set(x, y, float64(labels.At(x, y)))
		}
	}
	labelsASCII, err := writeRaster(labelsF, georef)
	if err != nil {
		return "", "", nil, nil, err
	}

	filledASCII := ""
	if fill {
		// FindWatersheds altered dem in place
		filledASCII, err = writeRaster(dem, georef)
		if err != nil {
			return "", "", nil, nil, err
		}
	}

	return labelsASCII, filledASCII, areas, extents, nil
}

func (s *TerrainService) SPI(flowASCII, slopeASCII string) (string, error) {
	return s.derivedIndex("spi", flowASCII, slopeASCII, terrain.SPI)
}

func (s *TerrainService) CTI(flowASCII, slopeASCII string) (string, error) {
	return s.derivedIndex("cti", flowASCII, slopeASCII, terrain.CTI)
}

func (s *TerrainService) derivedIndex(name, flowASCII, slopeASCII string,
	indexFunc func(flow, slope *datastructure.Grid[float64]) (*datastructure.Grid[float64], error)) (string, error) {

	flow, georef, err := s.parseRaster("flow accumulation", flowASCII)
	if err != nil {
		return "", err
	}
	slope, _, err := s.parseRaster("percent slope", slopeASCII)
	if err != nil {
		return "", err
	}

	result, err := indexFunc(flow, slope)
	if err != nil {
		if errors.Is(err, terrain.ErrDimensionMismatch) {
			return "", util.WrapErrorf(err, util.ErrBadParamInput, "computing %s: %v", name, err)
		}
		return "", err
	}

	return writeRaster(result, georef)
}
