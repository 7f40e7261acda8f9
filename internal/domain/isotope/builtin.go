package isotope

// Dataset keys shipped with the builtin table.
const (
	// QSA is QSA Global MAN-027 (revision Sep 2022). Gamma values come from
	// Table 6 (R/h/Ci at 1 m, ×10 to mSv), HVL from Table 7 (inches → mm).
	QSA = "QSA"
	// ICRP107 is ICRP Publication 107 as tabulated by Smith & Stabin (2012).
	// Only lead HVL values are published.
	ICRP107 = "ICRP107"
)

// Builtin builds a fresh table from the shipped reference data. Each call
// returns an independent *Table; the host application constructs one and
// passes it to whatever needs it.
func Builtin() (*Table, error) {
	return New(BuiltinDatasets())
}

// BuiltinDatasets returns a new copy of the shipped reference data.
func BuiltinDatasets() []Dataset {
	return []Dataset{
		{Key: QSA, Records: []Record{
			{
				ID:       "Ir-192",
				HalfLife: HalfLife{74, Days},
				Gamma:    4.80,
				HVL: map[Material]HVL{
					Lead:     {MM: 5.1},  // 0.200"
					Steel:    {MM: 13.0}, // 0.512"
					Concrete: {MM: 43.2}, // 1.700"
					Tungsten: {MM: 3.3},  // 0.130"
					DU:       {MM: 1.3},  // 0.050"
				},
			},
			{
				ID:       "Se-75",
				HalfLife: HalfLife{120, Days},
				Gamma:    2.03,
				HVL: map[Material]HVL{
					Lead:     {MM: 1.0},  // 0.039"
					Steel:    {MM: 8.0},  // 0.315"
					Concrete: {MM: 30.0}, // 1.180"
					Tungsten: {MM: 0.8},  // 0.032"
					// Not in the Table 7 DU row; scaled from density.
					DU: {MM: 0.6, Provenance: Approximated},
				},
			},
			{
				ID:       "Yb-169",
				HalfLife: HalfLife{32, Days},
				Gamma:    1.25,
				HVL: map[Material]HVL{
					Lead:     {MM: 0.8},  // 0.032"
					Steel:    {MM: 4.3},  // 0.170"
					Concrete: {MM: 29.0}, // 1.140"
					Tungsten: {MM: 0.25, Provenance: Approximated},
					DU:       {MM: 0.2, Provenance: Approximated},
				},
			},
			{
				ID:       "Co-60",
				HalfLife: HalfLife{5.27, Years},
				Gamma:    13.0,
				HVL: map[Material]HVL{
					Lead:     {MM: 12.7}, // 0.500"
					Steel:    {MM: 21.0}, // 0.827"
					Concrete: {MM: 61.0}, // 2.400"
					Tungsten: {MM: 7.9},  // 0.310"
					DU:       {MM: 6.8},  // 0.270"
				},
			},
			{
				ID:       "Cs-137",
				HalfLife: HalfLife{30.0, Years},
				Gamma:    3.20,
				HVL: map[Material]HVL{
					Lead:     {MM: 6.4},  // 0.250"
					Steel:    {MM: 22.9}, // 0.900"
					Concrete: {MM: 76.2}, // 3.00"
					Tungsten: {MM: 5.7},  // 0.225"
					DU:       {MM: 3.2},  // 0.125"
				},
			},
		}},

		// Ir-192 is the unfiltered source, hence the much thinner lead HVL
		// than QSA's.
		{Key: ICRP107, Records: []Record{
			lead("Ir-192", 73.83, Days, 4.60, 2.67),
			lead("Se-75", 119.8, Days, 2.03, 1.00),
			lead("Yb-169", 32.0, Days, 1.85, 0.60),
			lead("Co-60", 5.27, Years, 12.9, 15.6),
			lead("Cs-137", 30.17, Years, 3.43, 7.19),

			// medical / research
			lead("Tc-99m", 6.01, Hours, 0.76, 0.30),
			lead("I-131", 8.02, Days, 2.20, 2.74),
			lead("F-18", 109.7, Minutes, 5.68, 4.95),
			lead("I-123", 13.2, Hours, 1.78, 0.07),
			lead("Ga-67", 3.26, Days, 0.80, 0.86),
			lead("Lu-177", 6.65, Days, 0.18, 0.54),
			lead("Am-241", 432.2, Years, 0.15, 0.11),
			lead("Na-22", 2.6, Years, 11.8, 9.20),
		}},
	}
}

func lead(id string, hl float64, unit Unit, gamma, mm float64) Record {
	return Record{
		ID:       id,
		HalfLife: HalfLife{hl, unit},
		Gamma:    gamma,
		HVL:      map[Material]HVL{Lead: {MM: mm}},
	}
}
