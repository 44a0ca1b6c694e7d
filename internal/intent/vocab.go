package intent

// Static domain vocabularies used by the extractor. These are fixed lookup
// tables, not configuration: the trigger phrases are matched against the
// lower-cased prompt and the canonical value is what lands in the field.

// vocabEntry pairs a lower-cased trigger phrase with its canonical value.
type vocabEntry struct {
	Phrase    string
	Canonical string
}

// knownCustomers is the customer roster the extractor recognizes by name.
var knownCustomers = []vocabEntry{
	{Phrase: "acme market", Canonical: "ACME Market"},
	{Phrase: "fresh foods", Canonical: "Fresh Foods"},
}

// knownCategories maps ticket category phrasing to canonical category names.
var knownCategories = []vocabEntry{
	{Phrase: "missed service", Canonical: "Missed Service"},
	{Phrase: "bin swap", Canonical: "Bin Swap"},
	{Phrase: "bin drop", Canonical: "Bin Drops"},
}

// knownPriorities is checked in order; the first phrase found wins.
var knownPriorities = []vocabEntry{
	{Phrase: "high", Canonical: "High"},
	{Phrase: "medium", Canonical: "Medium"},
	{Phrase: "low", Canonical: "Low"},
	{Phrase: "critical", Canonical: "Critical"},
}

// knownShiftDrivers is the roster subset recognized when scheduling shifts.
var knownShiftDrivers = []vocabEntry{
	{Phrase: "john smith", Canonical: "John Smith"},
}

// knownBackupDrivers is recognized for the backup slot.
var knownBackupDrivers = []vocabEntry{
	{Phrase: "maria", Canonical: "Maria"},
}

// knownVehicles is the vehicle vocabulary for shift scheduling.
var knownVehicles = []vocabEntry{
	{Phrase: "box truck", Canonical: "Box Truck"},
}

// knownLicenses is the license-requirement vocabulary.
var knownLicenses = []vocabEntry{
	{Phrase: "cdl-b", Canonical: "cdl-b"},
}

// findVocab returns the canonical value of the first entry whose phrase
// occurs in the lower-cased text.
func findVocab(lower string, entries []vocabEntry) (string, bool) {
	for _, e := range entries {
		if containsPhrase(lower, e.Phrase) {
			return e.Canonical, true
		}
	}
	return "", false
}
