package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/Terrainx/pkg"
	helper "github.com/lintang-b-s/Terrainx/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type terrainAPI struct {
	terrainService TerrainService
	log            *zap.Logger
}

func New(terrainService TerrainService, log *zap.Logger) *terrainAPI {
	return &terrainAPI{
		terrainService: terrainService,
		log:            log,
	}
}

func (api *terrainAPI) Routes(group *helper.RouteGroup) {
	group.POST("/terrainAttribute", api.terrainAttribute)
	group.POST("/watersheds", api.watersheds)
	group.POST("/spi", api.spi)
	group.POST("/cti", api.cti)
}

func (api *terrainAPI) validateRequest(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

func (api *terrainAPI) terrainAttribute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request terrainAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, errors.New("request body must be valid JSON"))
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	attrib := pkg.GetTerrainAttribute(request.Attribute)
	if attrib == pkg.UNKNOWN_ATTRIBUTE {
		api.BadRequestResponse(w, r, fmt.Errorf("unknown terrain attribute %q", request.Attribute))
		return
	}

	grid, err := api.terrainService.TerrainAttribute(request.Dem, attrib, request.UnitFactor)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewTerrainAttributeResponse(attrib.String(), grid)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *terrainAPI) watersheds(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request watershedsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, errors.New("request body must be valid JSON"))
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	labels, filled, areas, extents, err := api.terrainService.Watersheds(request.Dem, request.Fill)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewWatershedsResponse(labels, filled, areas, extents)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *terrainAPI) spi(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.derivedIndex(w, r, "spi", api.terrainService.SPI)
}

func (api *terrainAPI) cti(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.derivedIndex(w, r, "cti", api.terrainService.CTI)
}

func (api *terrainAPI) derivedIndex(w http.ResponseWriter, r *http.Request, name string,
	indexFunc func(flowASCII, slopeASCII string) (string, error)) {

	var request derivedIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, errors.New("request body must be valid JSON"))
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	grid, err := indexFunc(request.FlowAccumulation, request.PercentSlope)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewDerivedIndexResponse(name, grid)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
