package bench

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ManifestName is the file a sweep records its grid and progress in.
const ManifestName = "manifest.json"

// Status is the lifecycle state of a sweep.
type Status string

const (
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// Manifest describes a sweep directory: the grid it was asked to cover, the
// fixed matcher parameters and how far it got.
type Manifest struct {
	Status     Status
	Grid       Grid
	Params     map[string]float64
	Completed  int // cells written
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Proto converts the manifest to a protobuf Struct.
func (m *Manifest) Proto() (*structpb.Struct, error) {
	fields := map[string]any{
		"status": string(m.Status),
		"grid": map[string]any{
			"leaf":      toList(m.Grid.Leaf),
			"threshold": toList(m.Grid.Threshold),
		},
		"params":     lo.MapValues(m.Params, func(v float64, _ string) any { return v }),
		"completed":  m.Completed,
		"started_at": formatTime(m.StartedAt),
	}
	if !m.FinishedAt.IsZero() {
		fields["finished_at"] = formatTime(m.FinishedAt)
	}
	if m.Error != "" {
		fields["error"] = m.Error
	}
	return structpb.NewStruct(fields)
}

// WriteManifest writes m to dir/manifest.json, replacing any earlier
// version.
func WriteManifest(dir string, m *Manifest) error {
	data, err := m.marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// CreateManifest writes m to dir/manifest.json only if no manifest exists
// yet. An existing manifest is reported as an error wrapping fs.ErrExist.
func CreateManifest(dir string, m *Manifest) error {
	data, err := m.marshal()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, ManifestName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return errors.Join(fmt.Errorf("write manifest: %w", err), f.Close())
	}
	return f.Close()
}

func (m *Manifest) marshal() ([]byte, error) {
	st, err := m.Proto()
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// ReadManifest reads dir/manifest.json. A missing manifest is reported as an
// error wrapping fs.ErrNotExist.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var st structpb.Struct
	if err := protojson.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	f := st.GetFields()
	grid := f["grid"].GetStructValue().GetFields()
	m := &Manifest{
		Status: Status(f["status"].GetStringValue()),
		Grid: Grid{
			Leaf:      fromList(grid["leaf"].GetListValue()),
			Threshold: fromList(grid["threshold"].GetListValue()),
		},
		Params:    map[string]float64{},
		Completed: int(f["completed"].GetNumberValue()),
		Error:     f["error"].GetStringValue(),
	}
	for k, v := range f["params"].GetStructValue().GetFields() {
		m.Params[k] = v.GetNumberValue()
	}
	if m.StartedAt, err = parseTime(f["started_at"].GetStringValue()); err != nil {
		return nil, fmt.Errorf("parse manifest: started_at: %w", err)
	}
	if m.FinishedAt, err = parseTime(f["finished_at"].GetStringValue()); err != nil {
		return nil, fmt.Errorf("parse manifest: finished_at: %w", err)
	}

	switch m.Status {
	case StatusRunning, StatusComplete, StatusFailed:
	default:
		return nil, fmt.Errorf("parse manifest: unknown status %q", m.Status)
	}
	return m, nil
}

func toList(values []float64) []any {
	return lo.Map(values, func(v float64, _ int) any { return v })
}

func fromList(l *structpb.ListValue) []float64 {
	return lo.Map(l.GetValues(), func(v *structpb.Value, _ int) float64 { return v.GetNumberValue() })
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
