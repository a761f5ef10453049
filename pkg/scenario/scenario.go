package scenario

import (
	"fmt"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	da "github.com/lintang-b-s/Carbonetx/pkg/datastructure"
	"github.com/lintang-b-s/Carbonetx/pkg/spatialindex"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type VertexDTO struct {
	Cell int64    `yaml:"cell" json:"cell" validate:"gte=0"`
	Lat  *float64 `yaml:"lat,omitempty" json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lon  *float64 `yaml:"lon,omitempty" json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
}

// SourceDTO. a negative cell means the source is snapped to the nearest vertex by its coordinates.
type SourceDTO struct {
	Label          string   `yaml:"label" json:"label"`
	Cell           int64    `yaml:"cell" json:"cell"`
	Lat            *float64 `yaml:"lat,omitempty" json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lon            *float64 `yaml:"lon,omitempty" json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
	ProductionRate float64  `yaml:"production_rate" json:"production_rate" validate:"gte=0"`
	CaptureCost    float64  `yaml:"capture_cost" json:"capture_cost" validate:"gte=0"`
	OpeningCost    float64  `yaml:"opening_cost" json:"opening_cost" validate:"gte=0"`
}

type SinkDTO struct {
	Label           string   `yaml:"label" json:"label"`
	Cell            int64    `yaml:"cell" json:"cell"`
	Lat             *float64 `yaml:"lat,omitempty" json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lon             *float64 `yaml:"lon,omitempty" json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
	Capacity        float64  `yaml:"capacity" json:"capacity" validate:"gte=0"`
	InjectionCost   float64  `yaml:"injection_cost" json:"injection_cost" validate:"gte=0"`
	OpeningCost     float64  `yaml:"opening_cost" json:"opening_cost" validate:"gte=0"`
	WellCapacity    float64  `yaml:"well_capacity" json:"well_capacity" validate:"gte=0"`
	WellOpeningCost float64  `yaml:"well_opening_cost" json:"well_opening_cost" validate:"gte=0"`
}

type EdgeDTO struct {
	V1               int64   `yaml:"v1" json:"v1" validate:"gte=0"`
	V2               int64   `yaml:"v2" json:"v2" validate:"gte=0,nefield=V1"`
	ConstructionCost float64 `yaml:"construction_cost" json:"construction_cost" validate:"gte=0"`
	RightOfWayCost   float64 `yaml:"right_of_way_cost" json:"right_of_way_cost" validate:"gte=0"`
}

type LinearComponentDTO struct {
	ConAlpha float64 `yaml:"con_alpha" json:"con_alpha"`
	ConBeta  float64 `yaml:"con_beta" json:"con_beta"`
	RowAlpha float64 `yaml:"row_alpha" json:"row_alpha"`
	RowBeta  float64 `yaml:"row_beta" json:"row_beta"`
}

// Scenario. one problem instance as stored in a scenario file or sent to the api.
// crf, project_length and target_capture_amount fall back to the configured defaults when omitted.
type Scenario struct {
	Name                string               `yaml:"name" json:"name"`
	Crf                 *float64             `yaml:"crf,omitempty" json:"crf,omitempty" validate:"omitempty,gte=0"`
	ProjectLength       *float64             `yaml:"project_length,omitempty" json:"project_length,omitempty" validate:"omitempty,gt=0"`
	TargetCaptureAmount *float64             `yaml:"target_capture_amount,omitempty" json:"target_capture_amount,omitempty" validate:"omitempty,gte=0"`
	Vertices            []VertexDTO          `yaml:"vertices" json:"vertices" validate:"dive"`
	Sources             []SourceDTO          `yaml:"sources" json:"sources" validate:"dive"`
	Sinks               []SinkDTO            `yaml:"sinks" json:"sinks" validate:"dive"`
	Edges               []EdgeDTO            `yaml:"edges" json:"edges" validate:"dive"`
	LinearComponents    []LinearComponentDTO `yaml:"linear_components" json:"linear_components" validate:"required,min=1,dive"`
}

type Defaults struct {
	Crf                 float64
	ProjectLength       float64
	TargetCaptureAmount float64
	SnapRadiusKm        float64
}

func DefaultsFromConfig() Defaults {
	return Defaults{
		Crf:                 viper.GetFloat64("CRF"),
		ProjectLength:       viper.GetFloat64("PROJECT_LENGTH"),
		TargetCaptureAmount: viper.GetFloat64("TARGET_CAPTURE_AMOUNT"),
		SnapRadiusKm:        viper.GetFloat64("SNAP_RADIUS_KM"),
	}
}

// Parse. yaml scenario, json documents are accepted too.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid scenario document")
	}
	return s, nil
}

func Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (s *Scenario) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		return util.WrapErrorf(nil, util.ErrBadParamInput, "validation error: %v", TranslateError(err, trans))
	}
	return nil
}

// TranslateError. english messages of validator errors
func TranslateError(err error, trans ut.Translator) []string {
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		msgs = append(msgs, e.Translate(trans))
	}
	return msgs
}

// Build. validates the scenario and turns it into a solver dataset. sources and sinks without a cell
// are snapped to the nearest vertex within defaults.SnapRadiusKm.
func (s *Scenario) Build(defaults Defaults, log *zap.Logger) (*da.Dataset, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	vertices := make([]da.Vertex, len(s.Vertices))
	for i, v := range s.Vertices {
		if v.Lat != nil && v.Lon != nil {
			vertices[i] = da.NewVertexWithCoordinates(v.Cell, *v.Lat, *v.Lon)
		} else {
			vertices[i] = da.NewVertex(v.Cell)
		}
	}

	sources := make([]*da.Source, len(s.Sources))
	needSnapping := false
	for i, src := range s.Sources {
		sources[i] = da.NewSource(src.Label, src.Cell, src.ProductionRate, src.CaptureCost, src.OpeningCost)
		if src.Lat != nil && src.Lon != nil {
			sources[i].SetCoordinates(*src.Lat, *src.Lon)
		}
		needSnapping = needSnapping || src.Cell < 0
	}

	sinks := make([]*da.Sink, len(s.Sinks))
	for i, snk := range s.Sinks {
		sinks[i] = da.NewSink(snk.Label, snk.Cell, snk.Capacity, snk.InjectionCost, snk.OpeningCost,
			snk.WellCapacity, snk.WellOpeningCost)
		if snk.Lat != nil && snk.Lon != nil {
			sinks[i].SetCoordinates(*snk.Lat, *snk.Lon)
		}
		needSnapping = needSnapping || snk.Cell < 0
	}

	if needSnapping {
		if err := s.snap(vertices, sources, sinks, defaults.SnapRadiusKm, log); err != nil {
			return nil, err
		}
	}

	edges := make([]*da.CandidateEdge, len(s.Edges))
	for i, e := range s.Edges {
		edges[i] = da.NewCandidateEdge(e.V1, e.V2, e.ConstructionCost, e.RightOfWayCost)
	}

	lcs := make([]da.LinearComponent, len(s.LinearComponents))
	for i, lc := range s.LinearComponents {
		lcs[i] = da.NewLinearComponent(lc.ConAlpha, lc.ConBeta, lc.RowAlpha, lc.RowBeta)
	}

	dataset := da.NewDataset(vertices, sources, sinks, edges, lcs,
		valueOr(s.Crf, defaults.Crf),
		valueOr(s.ProjectLength, defaults.ProjectLength),
		valueOr(s.TargetCaptureAmount, defaults.TargetCaptureAmount))
	if err := dataset.Validate(); err != nil {
		return nil, err
	}

	log.Info("scenario loaded", zap.String("name", s.Name), zap.Int("vertices", len(vertices)),
		zap.Int("sources", len(sources)), zap.Int("sinks", len(sinks)), zap.Int("edges", len(edges)))
	return dataset, nil
}

type locatable interface {
	GetLat() float64
	GetLon() float64
	SetCellNum(cellNum int64)
}

func (s *Scenario) snap(vertices []da.Vertex, sources []*da.Source, sinks []*da.Sink, radius float64,
	log *zap.Logger) error {
	rt := spatialindex.NewRtree()
	rt.Build(vertices, log)

	snapAll := func(kind string, cells []int64, hasCoords []bool, sites []locatable) error {
		for i, site := range sites {
			if cells[i] >= 0 {
				continue
			}
			if !hasCoords[i] {
				return util.WrapErrorf(nil, util.ErrBadParamInput, "%s %d has neither a cell nor coordinates", kind, i)
			}
			v, dist, ok := rt.NearestVertex(site.GetLat(), site.GetLon(), radius)
			if !ok {
				return util.WrapErrorf(nil, util.ErrBadParamInput, "no vertex within %.2f km of %s %d", radius, kind, i)
			}
			site.SetCellNum(v.GetCellNum())
			log.Debug("snapped site", zap.String("kind", kind), zap.Int("index", i),
				zap.Int64("cell", v.GetCellNum()), zap.Float64("distance_km", dist))
		}
		return nil
	}

	g := errgroup.Group{}
	g.Go(func() error {
		cells := make([]int64, len(sources))
		hasCoords := make([]bool, len(sources))
		sites := make([]locatable, len(sources))
		for i, src := range s.Sources {
			cells[i] = src.Cell
			hasCoords[i] = src.Lat != nil && src.Lon != nil
			sites[i] = sources[i]
		}
		return snapAll("source", cells, hasCoords, sites)
	})
	g.Go(func() error {
		cells := make([]int64, len(sinks))
		hasCoords := make([]bool, len(sinks))
		sites := make([]locatable, len(sinks))
		for i, snk := range s.Sinks {
			cells[i] = snk.Cell
			hasCoords[i] = snk.Lat != nil && snk.Lon != nil
			sites[i] = sinks[i]
		}
		return snapAll("sink", cells, hasCoords, sites)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (s *Scenario) String() string {
	return fmt.Sprintf("%s: %d sources, %d sinks, %d edges", s.Name, len(s.Sources), len(s.Sinks), len(s.Edges))
}
