package controllers

import (
	"github.com/lintang-b-s/Terrainx/pkg"
	"github.com/lintang-b-s/Terrainx/pkg/hydrology"
	"github.com/lintang-b-s/Terrainx/pkg/spatialindex"
)

type TerrainService interface {
	TerrainAttribute(demASCII string, attribute pkg.TerrainAttribute, unitFactor float64) (string, error)
	Watersheds(demASCII string, fill bool) (labelsASCII, filledASCII string,
		areas []hydrology.WatershedArea, extents []spatialindex.WatershedExtent, err error)
	SPI(flowASCII, slopeASCII string) (string, error)
	CTI(flowASCII, slopeASCII string) (string, error)
}
