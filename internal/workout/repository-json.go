package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"time"
)

// JSONRepository stores the profile as an indented JSON document on disk.
type JSONRepository struct {
	path string
}

// NewJSONRepository returns a repository backed by the file at path. The file is created on first save.
func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

// Path returns the location of the JSON document.
func (r *JSONRepository) Path() string {
	return r.path
}

type profileDocument struct {
	Name         string                `json:"name"`
	Age          int                   `json:"age"`
	Gender       string                `json:"gender"`
	Goal         int                   `json:"goal"`
	TrainingDays int                   `json:"training_days"`
	ProgressLog  []logEntryDocument    `json:"progress_log"`
	WeightLog    []weightEntryDocument `json:"weight_log"`
}

type logEntryDocument struct {
	Date  string `json:"date"`
	Day   int    `json:"day"`
	Notes string `json:"notes"`
}

type weightEntryDocument struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
}

// Load reads and decodes the document. Log order is preserved as stored.
func (r *JSONRepository) Load(ctx context.Context) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err //nolint:wrapcheck // context errors are returned as-is.
	}
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("read %s: %w", r.path, err)
	}

	var doc profileDocument
	if err = json.Unmarshal(data, &doc); err != nil {
		return Profile{}, fmt.Errorf("%w: decode %s: %w", ErrCorruptData, r.path, err)
	}
	p, err := doc.profile()
	if err != nil {
		return Profile{}, fmt.Errorf("%w: decode %s: %w", ErrCorruptData, r.path, err)
	}
	return p, nil
}

// Save encodes the profile with two-space indentation and overwrites the file.
func (r *JSONRepository) Save(ctx context.Context, p Profile) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck // context errors are returned as-is.
	}
	data, err := r.encode(newProfileDocument(p))
	if err != nil {
		return err
	}
	if err = os.WriteFile(r.path, data, 0o600); err != nil { //nolint:mnd // owner read-write.
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

// encode marshals doc and carries over top-level keys of the stored document that doc does not model,
// such as custom_workouts, rest_days and workout_calendar.
func (r *JSONRepository) encode(doc profileDocument) ([]byte, error) {
	extra := r.unknownFields()
	if len(extra) == 0 {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode profile: %w", err)
		}
		return data, nil
	}

	known, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	fields := make(map[string]json.RawMessage, len(extra)+len(knownDocumentFields))
	if err = json.Unmarshal(known, &fields); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	maps.Copy(fields, extra)
	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}

//nolint:gochecknoglobals // keys owned by profileDocument.
var knownDocumentFields = map[string]struct{}{
	"name": {}, "age": {}, "gender": {}, "goal": {}, "training_days": {}, "progress_log": {}, "weight_log": {},
}

// unknownFields returns the top-level keys of the stored document outside knownDocumentFields.
// A missing or unreadable document has none.
func (r *JSONRepository) unknownFields() map[string]json.RawMessage {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}
	var fields map[string]json.RawMessage
	if err = json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	for key := range knownDocumentFields {
		delete(fields, key)
	}
	return fields
}

func newProfileDocument(p Profile) profileDocument {
	doc := profileDocument{
		Name:         p.Name,
		Age:          p.Age,
		Gender:       string(p.Gender),
		Goal:         p.Goal,
		TrainingDays: p.TrainingDays,
		ProgressLog:  make([]logEntryDocument, 0, len(p.ProgressLog)),
		WeightLog:    make([]weightEntryDocument, 0, len(p.WeightLog)),
	}
	for _, e := range p.ProgressLog {
		doc.ProgressLog = append(doc.ProgressLog, logEntryDocument{
			Date:  e.Date.Format(logDateLayout),
			Day:   e.Day,
			Notes: e.Notes,
		})
	}
	for _, e := range p.WeightLog {
		doc.WeightLog = append(doc.WeightLog, weightEntryDocument{
			Date:   e.Date.Format(weightDateLayout),
			Weight: e.Weight,
			Unit:   string(e.Unit),
		})
	}
	return doc
}

func (doc profileDocument) profile() (Profile, error) {
	p := Profile{
		Name:         doc.Name,
		Age:          doc.Age,
		Gender:       Gender(doc.Gender),
		Goal:         doc.Goal,
		TrainingDays: doc.TrainingDays,
		ProgressLog:  nil,
		WeightLog:    nil,
	}
	for i, e := range doc.ProgressLog {
		date, err := time.ParseInLocation(logDateLayout, e.Date, time.Local)
		if err != nil {
			return Profile{}, fmt.Errorf("progress_log[%d].date: %w", i, err)
		}
		p.ProgressLog = append(p.ProgressLog, LogEntry{Date: date, Day: e.Day, Notes: e.Notes})
	}
	for i, e := range doc.WeightLog {
		date, err := time.ParseInLocation(weightDateLayout, e.Date, time.Local)
		if err != nil {
			return Profile{}, fmt.Errorf("weight_log[%d].date: %w", i, err)
		}
		unit := Unit(e.Unit)
		if unit == "" {
			unit = UnitKg
		}
		p.WeightLog = append(p.WeightLog, WeightEntry{Date: date, Weight: e.Weight, Unit: unit})
	}
	return p, nil
}
