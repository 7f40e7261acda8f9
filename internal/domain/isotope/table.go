package isotope

// Table is an immutable, validated set of datasets. The zero value is not
// usable; construct with New or Builtin.
type Table struct {
	order    []string // dataset keys in declaration order
	datasets map[string]*indexedDataset
}

type indexedDataset struct {
	key     string
	ids     []string // source order
	records map[string]Record
}

// New validates datasets and builds a Table from a private copy of them.
// If any invariant fails it returns a *ValidationError listing every
// violation and no table.
func New(datasets []Dataset) (*Table, error) {
	if vs := Validate(datasets); len(vs) > 0 {
		return nil, &ValidationError{Violations: vs}
	}

	t := &Table{
		order:    make([]string, 0, len(datasets)),
		datasets: make(map[string]*indexedDataset, len(datasets)),
	}
	for _, ds := range datasets {
		ds = ds.clone()
		ix := &indexedDataset{
			key:     ds.Key,
			ids:     make([]string, 0, len(ds.Records)),
			records: make(map[string]Record, len(ds.Records)),
		}
		for _, r := range ds.Records {
			ix.ids = append(ix.ids, r.ID)
			ix.records[r.ID] = r
		}
		t.order = append(t.order, ds.Key)
		t.datasets[ds.Key] = ix
	}
	return t, nil
}

// Datasets returns the dataset keys in declaration order.
func (t *Table) Datasets() []string {
	return append([]string(nil), t.order...)
}

// Isotopes returns the isotope ids of a dataset in source order.
func (t *Table) Isotopes(dataset string) ([]string, error) {
	ix, err := t.dataset(dataset)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), ix.ids...), nil
}

// Record returns a copy of the record for id in dataset. The same id may
// appear in several datasets with different values; there is no fallback
// between datasets.
func (t *Table) Record(dataset, id string) (Record, error) {
	r, err := t.record(dataset, id)
	if err != nil {
		return Record{}, err
	}
	return r.clone(), nil
}

// HVL returns the half-value layer thickness in mm. A material the dataset
// gives no value for returns ErrUnknownMaterial, never zero.
func (t *Table) HVL(dataset, id string, material Material) (float64, error) {
	e, err := t.HVLEntry(dataset, id, material)
	if err != nil {
		return 0, err
	}
	return e.MM, nil
}

// HVLEntry is HVL with the value's provenance.
func (t *Table) HVLEntry(dataset, id string, material Material) (HVL, error) {
	r, err := t.record(dataset, id)
	if err != nil {
		return HVL{}, err
	}
	e, ok := r.HVL[material]
	if !ok {
		return HVL{}, &LookupError{Dataset: dataset, Isotope: id, Material: material, Err: ErrUnknownMaterial}
	}
	if e.Provenance == "" {
		e.Provenance = FromTable
	}
	return e, nil
}

// Materials lists the materials that have an HVL value for id, in canonical
// order.
func (t *Table) Materials(dataset, id string) ([]Material, error) {
	r, err := t.record(dataset, id)
	if err != nil {
		return nil, err
	}
	return r.Materials(), nil
}

// Dataset returns a deep copy of one dataset, records in source order.
func (t *Table) Dataset(key string) (Dataset, error) {
	ix, err := t.dataset(key)
	if err != nil {
		return Dataset{}, err
	}
	ds := Dataset{Key: ix.key, Records: make([]Record, 0, len(ix.ids))}
	for _, id := range ix.ids {
		ds.Records = append(ds.Records, ix.records[id].clone())
	}
	return ds, nil
}

// All returns deep copies of every dataset in declaration order.
func (t *Table) All() []Dataset {
	out := make([]Dataset, 0, len(t.order))
	for _, key := range t.order {
		ds, _ := t.Dataset(key)
		out = append(out, ds)
	}
	return out
}

// Validate re-runs the invariant checks over the table's contents. Tables
// built by New always return an empty slice.
func (t *Table) Validate() []Violation {
	return Validate(t.All())
}

func (t *Table) dataset(key string) (*indexedDataset, error) {
	ix, ok := t.datasets[key]
	if !ok {
		return nil, &LookupError{Dataset: key, Err: ErrUnknownDataset}
	}
	return ix, nil
}

func (t *Table) record(dataset, id string) (Record, error) {
	ix, err := t.dataset(dataset)
	if err != nil {
		return Record{}, err
	}
	r, ok := ix.records[id]
	if !ok {
		return Record{}, &LookupError{Dataset: dataset, Isotope: id, Err: ErrUnknownIsotope}
	}
	return r, nil
}
