package controllers

import (
	"github.com/lintang-b-s/Terrainx/pkg/hydrology"
	"github.com/lintang-b-s/Terrainx/pkg/spatialindex"
)

// rasters travel as Esri ASCII grid payloads inside the JSON envelope

type terrainAttributeRequest struct {
	Dem        string  `json:"dem" validate:"required"`
	Attribute  string  `json:"attribute" validate:"required"`
	UnitFactor float64 `json:"unit_factor" validate:"omitempty,gt=0"`
}

type terrainAttributeResponse struct {
	Attribute string `json:"attribute"`
	Grid      string `json:"grid"`
}

func NewTerrainAttributeResponse(attribute, grid string) terrainAttributeResponse {
	return terrainAttributeResponse{
		Attribute: attribute,
		Grid:      grid,
	}
}

type watershedsRequest struct {
	Dem  string `json:"dem" validate:"required"`
	Fill bool   `json:"fill"`
}

type watershedAreaResponse struct {
	Label int32 `json:"label"`
	Cells int   `json:"cells"`
}

type watershedExtentResponse struct {
	Label int32 `json:"label"`
	MinX  int   `json:"min_x"`
	MinY  int   `json:"min_y"`
	MaxX  int   `json:"max_x"`
	MaxY  int   `json:"max_y"`
}

type watershedsResponse struct {
	Labels  string                    `json:"labels"`
	Filled  string                    `json:"filled,omitempty"`
	Areas   []watershedAreaResponse   `json:"areas"`
	Extents []watershedExtentResponse `json:"extents"`
}

func NewWatershedsResponse(labels, filled string, areas []hydrology.WatershedArea,
	extents []spatialindex.WatershedExtent) watershedsResponse {

	areaDTOs := make([]watershedAreaResponse, 0, len(areas))
	for _, a := range areas {
		areaDTOs = append(areaDTOs, watershedAreaResponse{Label: a.Label, Cells: a.Cells})
	}
	extentDTOs := make([]watershedExtentResponse, 0, len(extents))
	for _, e := range extents {
		minX, minY, maxX, maxY := e.GetBounds()
		extentDTOs = append(extentDTOs, watershedExtentResponse{
			Label: e.GetLabel(),
			MinX:  minX, MinY: minY, MaxX: maxX, MaxY: maxY,
		})
	}
	return watershedsResponse{
		Labels:  labels,
		Filled:  filled,
		Areas:   areaDTOs,
		Extents: extentDTOs,
	}
}

type derivedIndexRequest struct {
	FlowAccumulation string `json:"flow_accumulation" validate:"required"`
	PercentSlope     string `json:"percent_slope" validate:"required"`
}

type derivedIndexResponse struct {
	Index string `json:"index"`
	Grid  string `json:"grid"`
}

func NewDerivedIndexResponse(index, grid string) derivedIndexResponse {
	return derivedIndexResponse{
		Index: index,
		Grid:  grid,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
