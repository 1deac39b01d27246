package tables

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// CSV file names as distributed with the reference data (Pt-BR format:
// semicolon separator, decimal comma).
const (
	ConductorsFile = "tabela_cabos_br.csv"
	AreasFile      = "tabela_areas_cabos_br.csv"
	ConduitsFile   = "tabela_eletrodutos_br.csv"
)

// ErrUnavailable marks a missing or unusable reference catalog. Calculators
// report it instead of crashing so the service can keep serving the
// endpoints that do not need tables.
var ErrUnavailable = errors.New("reference tables unavailable")

type ConductorSpec struct {
	GaugeMM2     float64 `json:"gauge_mm2"`
	ROhmKm       float64 `json:"r_ohm_km"`
	XOhmKm       float64 `json:"x_ohm_km"`
	AmpacityA    float64 `json:"ampacity_a"`
	CostPerMeter float64 `json:"cost_per_meter"`
}

type ConduitSpec struct {
	DiameterMM      float64 `json:"diameter_mm"`
	DiameterPol     string  `json:"diameter_pol"`
	Display         string  `json:"display"`
	InternalAreaMM2 float64 `json:"internal_area_mm2"`
	Area40PctMM2    float64 `json:"area_40pct_mm2"`
}

// Catalog is the read-only reference data every calculator works from.
// It is built once at startup and must not be mutated afterwards; concurrent
// readers need no locking.
type Catalog struct {
	Conductors     []ConductorSpec     // ascending by gauge
	InsulatedAreas map[float64]float64 // gauge -> real section incl. insulation, mm2
	Conduits       []ConduitSpec       // ascending by diameter

	scale []float64
}

// New builds a catalog from already-parsed rows, sorting conductors and
// conduits and deriving the nominal gauge scale from the insulated-area keys.
func New(conductors []ConductorSpec, areas map[float64]float64, conduits []ConduitSpec) *Catalog {
	sort.Slice(conductors, func(i, j int) bool { return conductors[i].GaugeMM2 < conductors[j].GaugeMM2 })
	sort.Slice(conduits, func(i, j int) bool { return conduits[i].DiameterMM < conduits[j].DiameterMM })

	scale := make([]float64, 0, len(areas))
	for g := range areas {
		scale = append(scale, g)
	}
	sort.Float64s(scale)

	return &Catalog{
		Conductors:     conductors,
		InsulatedAreas: areas,
		Conduits:       conduits,
		scale:          scale,
	}
}

// Scale returns the full ordered nominal gauge scale.
func (c *Catalog) Scale() []float64 {
	return c.scale
}

// Conductor looks up a conductor by exact nominal gauge.
func (c *Catalog) Conductor(gaugeMM2 float64) (ConductorSpec, bool) {
	for _, s := range c.Conductors {
		if s.GaugeMM2 == gaugeMM2 {
			return s, true
		}
	}
	return ConductorSpec{}, false
}

// Load reads the three reference CSVs from dir.
func Load(dir string) (*Catalog, error) {
	conductors, err := loadConductors(filepath.Join(dir, ConductorsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	areas, err := loadAreas(filepath.Join(dir, AreasFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	conduits, err := loadConduits(filepath.Join(dir, ConduitsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return New(conductors, areas, conduits), nil
}

// Validate checks the invariants the calculators rely on: a strictly
// increasing gauge scale, cost monotone in gauge (the optimizer returns the
// first qualifying gauge and counts on it being the cheapest), and a sane
// conduit table.
func (c *Catalog) Validate() error {
	if len(c.Conductors) == 0 {
		return fmt.Errorf("conductor table is empty")
	}
	for i, s := range c.Conductors {
		if s.GaugeMM2 <= 0 || s.AmpacityA <= 0 || s.ROhmKm <= 0 || s.CostPerMeter <= 0 {
			return fmt.Errorf("conductor %g mm2: non-positive value", s.GaugeMM2)
		}
		if i == 0 {
			continue
		}
		prev := c.Conductors[i-1]
		if s.GaugeMM2 <= prev.GaugeMM2 {
			return fmt.Errorf("gauge scale not strictly increasing at %g mm2", s.GaugeMM2)
		}
		if s.CostPerMeter < prev.CostPerMeter {
			return fmt.Errorf("cost per meter decreases from %g to %g mm2", prev.GaugeMM2, s.GaugeMM2)
		}
	}
	for _, s := range c.Conductors {
		if _, ok := c.InsulatedAreas[s.GaugeMM2]; !ok {
			return fmt.Errorf("gauge %g mm2 missing from insulated-area table", s.GaugeMM2)
		}
	}
	if len(c.Conduits) == 0 {
		return fmt.Errorf("conduit table is empty")
	}
	for i, e := range c.Conduits {
		if e.InternalAreaMM2 <= 0 || e.Area40PctMM2 <= 0 {
			return fmt.Errorf("conduit %g mm: non-positive area", e.DiameterMM)
		}
		ratio := e.Area40PctMM2 / e.InternalAreaMM2
		if ratio < 0.39 || ratio > 0.41 {
			return fmt.Errorf("conduit %g mm: 40%% area inconsistent with internal area", e.DiameterMM)
		}
		if i > 0 && e.DiameterMM <= c.Conduits[i-1].DiameterMM {
			return fmt.Errorf("conduit diameters not strictly increasing at %g mm", e.DiameterMM)
		}
	}
	return nil
}

func loadConductors(path string) ([]ConductorSpec, error) {
	rows, err := readSemicolonCSV(path)
	if err != nil {
		return nil, err
	}
	out := make([]ConductorSpec, 0, len(rows))
	for i, row := range rows {
		if len(row) < 5 {
			return nil, fmt.Errorf("%s: row %d: expected 5 columns", path, i+2)
		}
		var s ConductorSpec
		if s.GaugeMM2, err = parseDecimal(row[0]); err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		if s.ROhmKm, err = parseDecimal(row[1]); err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		if s.XOhmKm, err = parseDecimal(row[2]); err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		if s.AmpacityA, err = parseDecimal(row[3]); err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		if s.CostPerMeter, err = parseDecimal(row[4]); err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func loadAreas(path string) (map[float64]float64, error) {
	rows, err := readSemicolonCSV(path)
	if err != nil {
		return nil, err
	}
	out := make(map[float64]float64, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%s: row %d: expected 2 columns", path, i+2)
		}
		gauge, err := parseDecimal(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		area, err := parseDecimal(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		out[gauge] = area
	}
	return out, nil
}

func loadConduits(path string) ([]ConduitSpec, error) {
	rows, err := readSemicolonCSV(path)
	if err != nil {
		return nil, err
	}
	out := make([]ConduitSpec, 0, len(rows))
	for i, row := range rows {
		if len(row) < 4 {
			return nil, fmt.Errorf("%s: row %d: expected 4 columns", path, i+2)
		}
		var e ConduitSpec
		if e.DiameterMM, err = parseDecimal(row[0]); err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		e.DiameterPol = strings.TrimSpace(row[1])
		if e.InternalAreaMM2, err = parseDecimal(row[2]); err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		if e.Area40PctMM2, err = parseDecimal(row[3]); err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", path, i+2, err)
		}
		e.Display = fmt.Sprintf("%gmm (%s)", e.DiameterMM, e.DiameterPol)
		out = append(out, e)
	}
	return out, nil
}

func readSemicolonCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true // imperial labels carry a bare inch quote (1/2")
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}
	return rows[1:], nil // drop header
}

// parseDecimal parses a Pt-BR number (decimal comma).
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return v, nil
}
