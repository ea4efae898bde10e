package monitoring

import (
	"fmt"
	"io"
	"runtime/pprof"
	"sort"

	"github.com/google/pprof/profile"
)

// FunctionSamples is the flat sample count of one function.
type FunctionSamples struct {
	Name string `json:"name"`
	Flat int64  `json:"flat"`
}

// StartCPUProfile starts CPU profiling into w. The returned function stops it.
func StartCPUProfile(w io.Writer) (stop func(), err error) {
	if err := pprof.StartCPUProfile(w); err != nil {
		return nil, fmt.Errorf("monitoring: %w", err)
	}

	return pprof.StopCPUProfile, nil
}

// SummarizeProfile returns the n functions with the most flat samples in an
// encoded profile. A non-positive n returns all functions.
func SummarizeProfile(data []byte, n int) ([]FunctionSamples, error) {
	prof, err := profile.ParseData(data)
	if err != nil {
		return nil, fmt.Errorf("monitoring: %w", err)
	}

	valueIndex := sampleValueIndex(prof)
	flat := make(map[string]int64)

	for _, s := range prof.Sample {
		if len(s.Location) == 0 || len(s.Location[0].Line) == 0 {
			continue
		}

		fn := s.Location[0].Line[0].Function
		if fn == nil {
			continue
		}

		flat[fn.Name] += s.Value[valueIndex]
	}

	summary := make([]FunctionSamples, 0, len(flat))
	for name, v := range flat {
		summary = append(summary, FunctionSamples{Name: name, Flat: v})
	}

	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Flat != summary[j].Flat {
			return summary[i].Flat > summary[j].Flat
		}

		return summary[i].Name < summary[j].Name
	})

	if n > 0 && len(summary) > n {
		summary = summary[:n]
	}

	return summary, nil
}

func sampleValueIndex(prof *profile.Profile) int {
	for i, st := range prof.SampleType {
		if st.Type == "samples" {
			return i
		}
	}

	return 0
}
