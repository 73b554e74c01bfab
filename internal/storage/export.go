package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/popsim/internal/popdyn"
)

// ExportData is the JSON export shape for one run.
type ExportData struct {
	Metadata RunMetadata `json:"metadata"`
	Times    []float64   `json:"times"`
	Series   [][]float64 `json:"series"`
}

// BuildExport flattens a trajectory into column-major series keyed by the
// metadata's variable order.
func BuildExport(meta RunMetadata, traj popdyn.Trajectory) *ExportData {
	data := &ExportData{
		Metadata: meta,
		Times:    traj.Times(),
	}
	if len(traj) == 0 {
		return data
	}
	dim := len(traj[0].X)
	data.Series = make([][]float64, dim)
	for i := 0; i < dim; i++ {
		data.Series[i] = traj.Column(i)
	}
	return data
}

// WriteJSON serializes export data with indentation.
func (e *ExportData) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteCSV writes a trajectory as CSV with a time column followed by one
// column per variable.
func WriteCSV(w io.Writer, varNames []string, traj popdyn.Trajectory) error {
	cw := csv.NewWriter(w)
	header := append([]string{"time"}, varNames...)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, sample := range traj {
		row[0] = strconv.FormatFloat(sample.T, 'g', -1, 64)
		for i, v := range sample.X {
			row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes a run's JSON export to a file.
func (s *Store) ExportJSON(id, path string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	traj, err := s.LoadSamples(id)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return BuildExport(*meta, traj).WriteJSON(f)
}

// ExportCSV rewrites a run's samples to the given path.
func (s *Store) ExportCSV(id, path string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	traj, err := s.LoadSamples(id)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, meta.Variables, traj)
}
