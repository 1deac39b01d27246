package batch

import (
	"fmt"

	gauge "Condutor/internal/calc/gauge"
	"Condutor/internal/tables"
)

type GaugeBatchInput struct {
	Items []gauge.Input `json:"items"`
}

type GaugeBatchResult struct {
	Results []gauge.Result `json:"results"`
}

func OptimizeGauges(in GaugeBatchInput, cat *tables.Catalog) (GaugeBatchResult, error) {
	if len(in.Items) == 0 {
		return GaugeBatchResult{}, fmt.Errorf("no items")
	}
	out := GaugeBatchResult{Results: make([]gauge.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		res, err := gauge.Optimize(item, cat)
		if err != nil {
			return GaugeBatchResult{}, err
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
