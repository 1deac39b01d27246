package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	conduit "Condutor/internal/calc/conduit"
	gauge "Condutor/internal/calc/gauge"
	shortcircuit "Condutor/internal/calc/shortcircuit"
	thermal "Condutor/internal/calc/thermal"
)

type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`

	Gauge        *gauge.Result        `json:"gauge,omitempty"`
	Conduit      *conduit.Result      `json:"conduit,omitempty"`
	ShortCircuit *shortcircuit.Result `json:"short_circuit,omitempty"`
	Thermal      *thermal.Result      `json:"thermal,omitempty"`
}

type Handler struct{}

// Generate renders a sizing memo PDF from previously computed results.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Cable and Conduit Sizing Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	if g := input.Gauge; g != nil && g.Found {
		section(pdf, "Conductor")
		line(pdf, fmt.Sprintf("Selected gauge: %g mm2", g.GaugeMM2))
		line(pdf, fmt.Sprintf("Voltage drop: %.2f %%", g.DropPct))
		line(pdf, fmt.Sprintf("Ampacity (uncorrected): %.1f A", g.AmpacityA))
		line(pdf, fmt.Sprintf("Estimated cable cost: R$ %.2f", g.TotalCost))
		pdf.Ln(4)
	}
	if c := input.Conduit; c != nil {
		section(pdf, "Conduit")
		line(pdf, fmt.Sprintf("Selected conduit: %s", c.Display))
		line(pdf, fmt.Sprintf("Occupied area: %.2f mm2", c.OccupiedAreaMM2))
		line(pdf, fmt.Sprintf("Fill ratio: %.2f %% (limit 40%%)", c.FillRatioPct))
		if c.FillRuleAdvisory {
			line(pdf, "Note: under 3 conductors the norm allows 53%/31%; 40% was applied.")
		}
		pdf.Ln(4)
	}
	if s := input.ShortCircuit; s != nil {
		section(pdf, "Short circuit")
		line(pdf, fmt.Sprintf("Z total: %.4f ohm (R %.4f, X %.4f)", s.ZTotalOhm, s.RTotalOhm, s.XTotalOhm))
		if s.Unbounded {
			line(pdf, "Icc max: unbounded (zero total impedance)")
		} else {
			line(pdf, fmt.Sprintf("Icc max: %.1f A", s.IccMaxA))
		}
		pdf.Ln(4)
	}
	if t := input.Thermal; t != nil {
		section(pdf, "Thermal withstand")
		line(pdf, fmt.Sprintf("k factor: %.0f", t.KFactor))
		line(pdf, fmt.Sprintf("Icc admissible: %.1f A", t.IccAdmissibleA))
		verdict := "NON-CONFORMING"
		if t.Conforming {
			verdict = "CONFORMING"
		}
		line(pdf, fmt.Sprintf("Verdict: %s", verdict))
		if t.FallbackApplied {
			line(pdf, "Note: unknown material/insulation, copper/PVC k factor applied.")
		}
		pdf.Ln(4)
	}

	if input.Notes != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sizing-report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func line(pdf *gofpdf.Fpdf, s string) {
	pdf.Cell(0, 6, s)
	pdf.Ln(6)
}
