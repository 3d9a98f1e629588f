package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"jobad-insights/internal/dataset"
	"jobad-insights/internal/domain/jobad"
	"jobad-insights/internal/extract"
)

// ErrMissingInput aborts a run whose raw snapshot is absent.
var ErrMissingInput = errors.New("needed data was not found in directory")

// Stage names reported to observers.
const (
	StageLoad         = "load"
	StageContracts    = "contract_filter"
	StageTitles       = "title_classification"
	StageSalary       = "salary_normalization"
	StageCompany      = "company_normalization"
	StageLocations    = "location_decomposition"
	StageGeocoding    = "geocoding"
	StageLocationFeat = "location_features"
	StageRequirements = "requirement_extraction"
	StageExperience   = "experience_extraction"
	StageDedup        = "deduplication"
	StageWrite        = "write_outputs"
	StageSinks        = "sinks"
)

// Geocoder resolves canonical locations for the geocoding join.
type Geocoder interface {
	Geocode(ctx context.Context, locations []string) ([]jobad.GeoRecord, error)
}

// Params configure one run.
type Params struct {
	Directory string
	GeoData   bool
	// RunID is generated when empty.
	RunID string
}

// Summary reports what a run produced.
type Summary struct {
	RunID        string        `json:"run_id"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	RawRows      int           `json:"raw_rows"`
	KeptRows     int           `json:"kept_rows"`
	LongRows     int           `json:"long_rows"`
	WideRows     int           `json:"wide_rows"`
	Duplicates   int           `json:"duplicates"`
	GeoJoined    bool          `json:"geo_joined"`
	GeoLocations int           `json:"geo_locations"`
}

// Preprocessor turns data_raw.csv into data_long.csv and data_wide.csv.
// Extraction itself is single-threaded and pure; only the optional
// geocoding step touches the network.
type Preprocessor struct {
	extractor *extract.Extractor
	geocoder  Geocoder
	sinks     []Sink
	observer  Observer
	log       *log.Logger
}

func NewPreprocessor(extractor *extract.Extractor, geocoder Geocoder, observer Observer, logger *log.Logger, sinks ...Sink) *Preprocessor {
	if logger == nil {
		logger = log.Default()
	}
	if extractor == nil {
		extractor = extract.DefaultExtractor()
	}
	if observer == nil {
		observer = LogObserver{Logger: logger}
	}
	return &Preprocessor{
		extractor: extractor,
		geocoder:  geocoder,
		sinks:     sinks,
		observer:  observer,
		log:       logger,
	}
}

type run struct {
	p       *Preprocessor
	ctx     context.Context
	id      string
	dir     dataset.Dir
	summary Summary
}

func (r *run) emit(stage, status string, rows int, d time.Duration, err error) {
	e := Event{RunID: r.id, Stage: stage, Status: status, Rows: rows, Duration: d, At: time.Now().UTC()}
	if err != nil {
		e.Err = err.Error()
	}
	r.p.observer.OnEvent(e)
}

// step times fn and reports it. fn returns the number of rows it produced.
func (r *run) step(stage string, fn func() (int, error)) error {
	start := time.Now()
	r.emit(stage, StatusStarted, 0, 0, nil)
	n, err := fn()
	if err != nil {
		r.emit(stage, StatusError, n, time.Since(start), err)
		return fmt.Errorf("%s: %w", stage, err)
	}
	r.emit(stage, StatusFinished, n, time.Since(start), nil)
	return nil
}

// Run executes one full pass. A missing raw file returns ErrMissingInput and
// leaves every output untouched.
func (p *Preprocessor) Run(ctx context.Context, params Params) (Summary, error) {
	if p == nil {
		return Summary{}, nil
	}
	id := params.RunID
	if id == "" {
		id = uuid.NewString()
	}
	r := &run{
		p:   p,
		ctx: ctx,
		id:  id,
		dir: dataset.Dir(params.Directory),
	}
	r.summary = Summary{RunID: r.id, StartedAt: time.Now().UTC()}
	defer func() { r.summary.Duration = time.Since(r.summary.StartedAt) }()

	p.log.Printf("pipeline=preprocess run_id=%s status=started directory=%s geo_data=%t", r.id, params.Directory, params.GeoData)

	if err := ctx.Err(); err != nil {
		return r.summary, err
	}

	var raws []jobad.Raw
	if err := r.step(StageLoad, func() (int, error) {
		if !dataset.Exists(r.dir.RawPath()) {
			return 0, fmt.Errorf("%w: %s", ErrMissingInput, r.dir.RawPath())
		}
		var err error
		raws, err = dataset.ReadFile(r.dir.RawPath(), dataset.ReadRaw)
		return len(raws), err
	}); err != nil {
		return r.summary, err
	}
	r.summary.RawRows = len(raws)

	var ads []jobad.Ad
	_ = r.step(StageContracts, func() (int, error) {
		ads = extract.FilterContracts(raws)
		return len(ads), nil
	})
	r.summary.KeptRows = len(ads)

	// kept mirrors ads row for row; company and location columns are read
	// from it. keptAt holds each kept row's index in raws.
	kept := make([]jobad.Raw, 0, len(ads))
	keptAt := make([]int, 0, len(ads))
	for i, raw := range raws {
		if permanent, trainee := extract.ContractFlags(raw.ContractType); permanent || trainee {
			kept = append(kept, raw)
			keptAt = append(keptAt, i)
		}
	}

	_ = r.step(StageTitles, func() (int, error) {
		for i := range ads {
			ads[i].TitleCategory = extract.ClassifyTitle(ads[i].Title)
			ads[i].ExperienceLevel = extract.ExperienceLevel(ads[i].Title)
		}
		return len(ads), nil
	})

	// The column type is decided on the whole raw column, dropped rows
	// included.
	_ = r.step(StageSalary, func() (int, error) {
		values := make([]string, len(raws))
		for i, raw := range raws {
			values[i] = raw.Salary
		}
		salaries := extract.NormalizeSalaries(values)
		n := 0
		for i := range ads {
			ads[i].AverageSalary = salaries[keptAt[i]]
			if ads[i].AverageSalary != nil {
				n++
			}
		}
		return n, nil
	})

	_ = r.step(StageCompany, func() (int, error) {
		for i, raw := range kept {
			ads[i].MainIndustry = extract.MainIndustry(raw.Industry)
			ads[i].CompanySize = extract.NormalizeCompanySize(raw.CompanySize)
		}
		return len(ads), nil
	})

	var long []jobad.LongRow
	if err := r.step(StageLocations, func() (int, error) {
		for i, raw := range kept {
			ads[i].Locations = extract.Locations(raw.Location)
			long = append(long, ads[i].LongRows()...)
		}
		return len(long), r.writeLong(long, false)
	}); err != nil {
		return r.summary, err
	}

	var geo []jobad.GeoRecord
	if params.GeoData {
		if err := r.step(StageGeocoding, func() (int, error) {
			var err error
			geo, err = r.loadGeo(ads)
			if err != nil {
				return 0, err
			}
			long = joinGeo(long, geo)
			r.summary.GeoJoined = true
			r.summary.GeoLocations = len(geo)
			return len(long), r.writeLong(long, true)
		}); err != nil {
			if ctx.Err() != nil {
				return r.summary, err
			}
			p.log.Printf("pipeline=preprocess run_id=%s step=%s status=skipped err=%v", r.id, StageGeocoding, err)
		}
	}
	r.summary.LongRows = len(long)

	_ = r.step(StageLocationFeat, func() (int, error) {
		regions := regionIndex(geo)
		n := 0
		for i := range ads {
			ads[i].MainLocation, ads[i].MultipleLocations = extract.LocationFeatures(ads[i].Locations)
			if r.summary.GeoJoined && ads[i].MainLocation != nil {
				if region, ok := regions[*ads[i].MainLocation]; ok {
					ads[i].MainRegion = &region
					n++
				}
			}
		}
		return n, nil
	})

	_ = r.step(StageRequirements, func() (int, error) {
		for i := range ads {
			ads[i].Requirements = p.extractor.Extract(ads[i].Content)
		}
		return len(ads), nil
	})

	_ = r.step(StageExperience, func() (int, error) {
		resolved := 0
		for i := range ads {
			v := extract.ResolveExperience(extract.ExperienceInput{
				Content:         ads[i].Content,
				ExperienceLevel: ads[i].ExperienceLevel,
				Trainee:         ads[i].Trainee,
			})
			ads[i].ExperienceBin = extract.ExperienceBin(v)
			if v != "" {
				resolved++
			}
		}
		return resolved, nil
	})

	_ = r.step(StageDedup, func() (int, error) {
		before := len(ads)
		ads = extract.Deduplicate(ads)
		r.summary.Duplicates = before - len(ads)
		return len(ads), nil
	})
	r.summary.WideRows = len(ads)

	if err := ctx.Err(); err != nil {
		return r.summary, err
	}

	out := Output{
		RunID:        r.id,
		Wide:         ads,
		Long:         long,
		Requirements: p.extractor.Names(),
		WithGeo:      r.summary.GeoJoined,
	}
	if err := r.step(StageWrite, func() (int, error) {
		return len(ads), dataset.WriteFileAtomic(r.dir.WidePath(), func(w io.Writer) error {
			return dataset.WriteWide(w, dataset.WideTable{Ads: ads, Requirements: out.Requirements})
		})
	}); err != nil {
		return r.summary, err
	}

	if len(p.sinks) > 0 {
		_ = r.step(StageSinks, func() (int, error) {
			saved := 0
			for _, s := range p.sinks {
				if err := s.Save(ctx, out); err != nil {
					p.log.Printf("pipeline=preprocess run_id=%s sink=%s status=error err=%v", r.id, s.Name(), err)
					continue
				}
				saved++
			}
			return saved, nil
		})
	}

	p.log.Printf("pipeline=preprocess run_id=%s status=finished raw=%d kept=%d long=%d wide=%d duplicates=%d duration=%s",
		r.id, r.summary.RawRows, r.summary.KeptRows, r.summary.LongRows, r.summary.WideRows, r.summary.Duplicates, time.Since(r.summary.StartedAt))
	return r.summary, nil
}

func (r *run) writeLong(rows []jobad.LongRow, withGeo bool) error {
	return dataset.WriteFileAtomic(r.dir.LongPath(), func(w io.Writer) error {
		return dataset.WriteLong(w, rows, withGeo)
	})
}

func (r *run) loadGeo(ads []jobad.Ad) ([]jobad.GeoRecord, error) {
	var locations []string
	for _, ad := range ads {
		locations = append(locations, ad.Locations...)
	}
	known, pending, err := UpdateGeoData(r.ctx, r.dir, r.p.geocoder, locations)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		r.p.log.Printf("pipeline=preprocess run_id=%s step=%s status=info ungeocoded=%d reason=no_geocoder", r.id, StageGeocoding, pending)
	}
	return known, nil
}
