package taxonomy

// Taxonomy domain identifiers accepted by the media ingestion endpoint.
const (
	DomainCivic = "civic"
	DomainWaste = "waste"
)

// civicEntries mirrors the category dropdown of the reporting frontend.
// Keyword order within each entry, and entry order overall, are the
// tie-break when a report mentions terms from more than one category
// (a road maintenance report mentioning "drain" still resolves to
// Pothole because the pothole table is declared first).
var civicEntries = []Entry{
	{
		Name:         "Pothole",
		HighPriority: true,
		Keywords: []string{
			"pothole", "hole", "sinkhole", "manhole", "roadway",
			"road maintenance", "asphalt", "pavement", "crack",
			"cracked", "deterioration", "depression",
		},
	},
	{
		Name: "Street Light",
		Keywords: []string{
			"street light", "streetlight", "lamp", "lamp post",
			"pole", "light not working", "bulb",
		},
	},
	{
		Name: "Garbage/Waste",
		Keywords: []string{
			"garbage", "trash", "waste", "dump", "rubbish", "dumping",
		},
	},
	{
		Name:         "Traffic Signal",
		HighPriority: true,
		Keywords: []string{
			"traffic signal", "signal", "traffic light",
			"signal not working", "lights stuck",
		},
	},
	{
		Name: "Sidewalk",
		Keywords: []string{
			"sidewalk", "footpath", "walkway", "pedestrian path",
		},
	},
	{
		Name: "Water Issue",
		Keywords: []string{
			"water", "sewage", "drain", "drainage", "flood",
			"leak", "water leak", "overflow",
		},
	},
	{Name: "Other", Fallback: true},
}

// wasteEntries covers the waste-report flow's sub-categories.
// Biomedical and hazardous material is flagged high priority.
var wasteEntries = []Entry{
	{
		Name:         "Biomedical",
		HighPriority: true,
		Keywords: []string{
			"biomedical", "medical waste", "syringe", "needle",
			"bandage", "hospital waste", "hazardous",
		},
	},
	{
		Name: "Plastic",
		Keywords: []string{
			"plastic", "bottle", "polythene", "wrapper", "packaging",
		},
	},
	{
		Name: "Organic",
		Keywords: []string{
			"organic", "food waste", "compost", "leaves", "garden waste",
		},
	},
	{
		Name: "E-Waste",
		Keywords: []string{
			"e-waste", "electronic", "battery", "circuit", "appliance",
		},
	},
	{
		Name: "Construction",
		Keywords: []string{
			"construction", "debris", "rubble", "concrete", "demolition",
		},
	},
	{Name: "Other", Fallback: true},
}

// Civic returns the civic-issue taxonomy.
func Civic() *Taxonomy {
	return &Taxonomy{Name: DomainCivic, Entries: civicEntries}
}

// Waste returns the waste sub-category taxonomy.
func Waste() *Taxonomy {
	return &Taxonomy{Name: DomainWaste, Entries: wasteEntries}
}

// ForDomain returns the taxonomy for a report domain, defaulting to civic.
func ForDomain(domain string) (*Taxonomy, bool) {
	switch domain {
	case DomainCivic, "":
		return Civic(), true
	case DomainWaste:
		return Waste(), true
	default:
		return nil, false
	}
}
