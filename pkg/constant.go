package pkg

// enum of terrain attributes derivable from a DEM
type TerrainAttribute uint8

const (
	CURVATURE TerrainAttribute = iota
	PLANFORM_CURVATURE
	PROFILE_CURVATURE
	ASPECT
	SLOPE_RISERUN
	SLOPE_PERCENT
	SLOPE_RADIAN
	SLOPE_DEGREE
	UNKNOWN_ATTRIBUTE
)

const (
	// no-data sentinel of terrain attribute grids. attribute values are
	// real-valued, so the sentinel must sit far outside any legitimate result.
	ATTRIBUTE_NODATA float64 = -99999

	// no-data sentinel of SPI/CTI grids. the log formulas carry +0.001
	// offsets, so they can never produce exactly -1.
	INDEX_NODATA float64 = -1

	// no-data sentinel of watershed label grids. labels start at 1.
	LABEL_NODATA int32 = -1

	// default no-data sentinel of elevation rasters
	DEM_NODATA float64 = -9999

	// elevation unit factor for foot-denominated DEMs
	METERS_PER_FOOT = 0.3048

	// aspect sentinel for flat cells (no defined downslope direction)
	FLAT_ASPECT float64 = -1
)

const (
	DEBUG = false
)

func GetTerrainAttribute(name string) TerrainAttribute {
	switch name {
	case "curvature":
		return CURVATURE
	case "planform_curvature":
		return PLANFORM_CURVATURE
	case "profile_curvature":
		return PROFILE_CURVATURE
	case "aspect":
		return ASPECT
	case "slope_riserun":
		return SLOPE_RISERUN
	case "slope_percent":
		return SLOPE_PERCENT
	case "slope_radian":
		return SLOPE_RADIAN
	case "slope_degree":
		return SLOPE_DEGREE
	default:
		return UNKNOWN_ATTRIBUTE
	}
}

func (a TerrainAttribute) String() string {
	switch a {
	case CURVATURE:
		return "curvature"
	case PLANFORM_CURVATURE:
		return "planform_curvature"
	case PROFILE_CURVATURE:
		return "profile_curvature"
	case ASPECT:
		return "aspect"
	case SLOPE_RISERUN:
		return "slope_riserun"
	case SLOPE_PERCENT:
		return "slope_percent"
	case SLOPE_RADIAN:
		return "slope_radian"
	case SLOPE_DEGREE:
		return "slope_degree"
	default:
		return "unknown"
	}
}
