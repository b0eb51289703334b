package clinical

// Metadata is one blood analysis report header.
type Metadata struct {
	ID                  string `csv:"id"`
	Name                string `csv:"name"`
	SampleReceptionDate Date   `csv:"sample_reception_date"`
	BirthDate           Date   `csv:"birth_date"`
}

// LabResult is one haemogram or leucocyte count line.
type LabResult struct {
	ID        string `csv:"id"`
	Parameter string `csv:"parameter"`
	Value     string `csv:"value"`
	Unit      string `csv:"unit"`
}

type IgETotal struct {
	ID    string `csv:"id"`
	Value string `csv:"value"`
}

// IgESpecific is a specific allergen result within an allergy subgroup.
type IgESpecific struct {
	ID          string `csv:"id"`
	Subgroup    string `csv:"subgroup"`
	Allergen    string `csv:"allergen"`
	Value       string `csv:"value"`
	Unit        string `csv:"unit"`
	RefInterval string `csv:"ref_interval"`
}

type IgERecombinant struct {
	ID          string `csv:"id"`
	Allergen    string `csv:"allergen"`
	Value       string `csv:"value"`
	Unit        string `csv:"unit"`
	RefInterval string `csv:"ref_interval"`
}

// Spirometry phases and value types.
const (
	PhasePre           = "Pre"
	PhasePostBD        = "PostBD"
	PhaseNotApplicable = "Not applicable"

	ValueRaw       = "raw"
	ValueTheorical = "theorical"
	ValueLIN       = "lin"
	ValueChange    = "%change"
)

// SpirometryValue is a single measurement in long format.
type SpirometryValue struct {
	ID        string `csv:"id"`
	Date      string `csv:"date"`
	Parameter string `csv:"parameter"`
	Phase     string `csv:"phase"`
	ValueType string `csv:"value_type"`
	Value     string `csv:"value"`
}

type Medication struct {
	ID         string `csv:"id"`
	Medication string `csv:"medication"`
	Posology   string `csv:"posology"`
}

// CRFAnswer is one answered question of a case report form.
type CRFAnswer struct {
	ID       string `csv:"id"`
	Question string `csv:"question"`
	Value    string `csv:"value"`
	Status   string `csv:"status"`
}
