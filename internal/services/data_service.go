package services

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"statshell/internal/dataset"
	"statshell/internal/logger"
)

// DataService loads and saves datasets. Two formats are supported: a YAML
// column-oriented format and plain CSV with a header row.
type DataService struct {
	initialized bool
}

// NewDataService creates a data service.
func NewDataService() *DataService { return &DataService{} }

// Name returns the service name for registration.
func (d *DataService) Name() string { return "data" }

// Initialize marks the service ready.
func (d *DataService) Initialize() error {
	d.initialized = true
	return nil
}

// yamlDataset is the on-disk YAML shape.
type yamlDataset struct {
	Name    string       `yaml:"name"`
	Columns []yamlColumn `yaml:"columns"`
}

type yamlColumn struct {
	Name    string    `yaml:"name"`
	Label   string    `yaml:"label,omitempty"`
	Type    string    `yaml:"type"` // "numeric" or "string"
	Values  []float64 `yaml:"values,omitempty"`
	Strings []string  `yaml:"strings,omitempty"`
}

// Load reads a dataset from a .yaml/.yml or .csv file. The dataset name is
// the file's base name without extension.
func (d *DataService) Load(path string) (*dataset.Dataset, error) {
	if !d.initialized {
		return nil, fmt.Errorf("data service not initialized")
	}
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return d.loadYAML(path, name)
	case ".csv":
		return d.loadCSV(path, name)
	default:
		return nil, fmt.Errorf("unsupported file format %s; use .yaml or .csv", ext)
	}
}

// Save writes a dataset to a .yaml/.yml or .csv file.
func (d *DataService) Save(ds *dataset.Dataset, path string) error {
	if !d.initialized {
		return fmt.Errorf("data service not initialized")
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return d.saveYAML(ds, path)
	case ".csv":
		return d.saveCSV(ds, path)
	default:
		return fmt.Errorf("unsupported file format %s; use .yaml or .csv", ext)
	}
}

func (d *DataService) loadYAML(path, name string) (*dataset.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc yamlDataset
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Name != "" {
		name = doc.Name
	}
	ds := dataset.New(name)
	for _, col := range doc.Columns {
		switch col.Type {
		case "string":
			if err := ds.SetStrings(col.Name, col.Strings); err != nil {
				return nil, err
			}
		default:
			if err := ds.SetFloat(col.Name, col.Values); err != nil {
				return nil, err
			}
		}
		ds.SetLabel(col.Name, col.Label)
	}
	logger.Info("Loaded dataset", "name", name, "rows", ds.NumRows(), "cols", ds.NumCols())
	return ds, nil
}

func (d *DataService) saveYAML(ds *dataset.Dataset, path string) error {
	doc := yamlDataset{Name: ds.Name()}
	for _, name := range ds.ColumnNames() {
		col := yamlColumn{Name: name, Label: ds.Label(name)}
		if vals, err := ds.Float(name); err == nil {
			col.Type = "numeric"
			col.Values = vals
		} else {
			strs, err := ds.Strings(name)
			if err != nil {
				return err
			}
			col.Type = "string"
			col.Strings = strs
		}
		doc.Columns = append(doc.Columns, col)
	}
	raw, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

func (d *DataService) loadCSV(path, name string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	header := records[0]
	rows := records[1:]

	ds := dataset.New(name)
	for j, colName := range header {
		numeric := true
		vals := make([]float64, len(rows))
		strs := make([]string, len(rows))
		for i, row := range rows {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			strs[i] = cell
			if !numeric {
				continue
			}
			if cell == "" || cell == "." {
				vals[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				continue
			}
			vals[i] = v
		}
		if numeric {
			if err := ds.SetFloat(colName, vals); err != nil {
				return nil, err
			}
		} else {
			if err := ds.SetStrings(colName, strs); err != nil {
				return nil, err
			}
		}
	}
	logger.Info("Loaded dataset", "name", name, "rows", ds.NumRows(), "cols", ds.NumCols())
	return ds, nil
}

func (d *DataService) saveCSV(ds *dataset.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	names := ds.ColumnNames()
	if err := w.Write(names); err != nil {
		return err
	}
	for row := 0; row < ds.NumRows(); row++ {
		record := make([]string, len(names))
		for j, name := range names {
			record[j] = ds.CellString(name, row)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
